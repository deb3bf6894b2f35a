package shell

import (
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name     string
		sysEnv   []string
		cmdEnv   []string
		inherit  bool
		expected []string
	}{
		{
			name:     "drops variables outside the allow-list",
			sysEnv:   []string{"HOME=/home/u", "PYTHONPATH=/leak", "VIRTUAL_ENV=/venv", "PATH=/usr/bin"},
			expected: []string{"HOME=/home/u", "PATH=/usr/bin"},
		},
		{
			name:     "keeps proxy and pip configuration",
			sysEnv:   []string{"HTTPS_PROXY=http://proxy:3128", "PIP_INDEX_URL=https://mirror/simple"},
			expected: []string{"HTTPS_PROXY=http://proxy:3128", "PIP_INDEX_URL=https://mirror/simple"},
		},
		{
			name:     "command env overrides system env",
			sysEnv:   []string{"HOME=/home/u", "LANG=C"},
			cmdEnv:   []string{"LANG=C.UTF-8", "PYTHONNOUSERSITE=1"},
			expected: []string{"HOME=/home/u", "LANG=C.UTF-8", "PYTHONNOUSERSITE=1"},
		},
		{
			name:     "command PATH is prepended",
			sysEnv:   []string{"PATH=/usr/bin"},
			cmdEnv:   []string{"PATH=/venv/bin"},
			expected: []string{"PATH=/venv/bin" + sep + "/usr/bin"},
		},
		{
			name:     "command PATH without system PATH",
			cmdEnv:   []string{"PATH=/venv/bin"},
			expected: []string{"PATH=/venv/bin"},
		},
		{
			name:     "inherited environment keeps everything",
			sysEnv:   []string{"PYTHONPATH=/site", "CFLAGS=-O2", "PATH=/usr/bin"},
			cmdEnv:   []string{"PYTHONDONTWRITEBYTECODE=1"},
			inherit:  true,
			expected: []string{"CFLAGS=-O2", "PATH=/usr/bin", "PYTHONDONTWRITEBYTECODE=1", "PYTHONPATH=/site"},
		},
		{
			name:     "malformed entries are ignored",
			sysEnv:   []string{"HOME", "USER=u"},
			cmdEnv:   []string{"BROKEN"},
			expected: []string{"USER=u"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.cmdEnv, !tt.inherit)
			sort.Strings(got)
			sort.Strings(tt.expected)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	exe := dir + "/tool"
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(dir+"/plain", []byte("data"), 0o600))

	got, err := lookPath("tool", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, exe, got)

	_, err = lookPath("plain", []string{"PATH=" + dir})
	require.Error(t, err)

	_, err = lookPath("tool", []string{"HOME=/"})
	require.Error(t, err)
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(msg string) { r.lines = append(r.lines, msg) }
func (r *recordingLogger) Info(string)       {}
func (r *recordingLogger) Warn(string)       {}
func (r *recordingLogger) Error(error)       {}

func TestLogWriter_SplitsLines(t *testing.T) {
	rec := &recordingLogger{}
	w := &logWriter{logger: rec}

	_, _ = w.Write([]byte("part1 "))
	_, _ = w.Write([]byte("part2\nsecond\r\nthi"))
	_, _ = w.Write([]byte("rd"))
	require.NoError(t, w.Close())

	assert.Equal(t, []string{"part1 part2", "second", "third"}, rec.lines)
}
