package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelwright/internal/adapters/config"
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()

	settings, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, settings.Root)
	assert.Equal(t, []string{"python3"}, settings.Interpreters)
	assert.True(t, settings.BuildIsolation)
	assert.False(t, settings.ReuseEnvironments)
	assert.Equal(t, filepath.Join(dir, ".wheelwright", "cache"), settings.CacheDir)
}

func TestLoader_Load_FullFile(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, `
version: "1"
python: ["python3.12", "python3.11", "python3.12"]
build_isolation: false
pip:
  index_url: https://mirror.example/simple
  extra_args: ["--prefer-binary"]
cache:
  dir: build/cache
  reuse_environments: true
`)

	settings, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, settings.Root)
	assert.Equal(t, []string{"python3.12", "python3.11"}, settings.Interpreters)
	assert.False(t, settings.BuildIsolation)
	assert.Equal(t, "https://mirror.example/simple", settings.PipIndexURL)
	assert.Equal(t, []string{"--prefer-binary"}, settings.PipExtraArgs)
	assert.True(t, settings.ReuseEnvironments)
	assert.Equal(t, filepath.Join(dir, "build", "cache"), settings.CacheDir)
}

func TestLoader_Load_DiscoversParent(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "version: \"1\"\npython: [python3.13]\n")

	nested := filepath.Join(root, "projects", "demo")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	settings, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, settings.Root)
	assert.Equal(t, []string{"python3.13"}, settings.Interpreters)
	assert.Equal(t, filepath.Join(root, ".wheelwright", "cache"), settings.CacheDir)
}

func TestLoader_Load_IsolationDefaultsOn(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, "version: \"1\"\n")

	settings, err := loader.Load(dir)
	require.NoError(t, err)
	assert.True(t, settings.BuildIsolation)
}

func TestLoader_Load_MissingVersionWarns(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, "python: [python3]\n")

	_, err := loader.Load(dir)
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "python: [python3\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "wrong type",
			content: "version: \"1\"\nbuild_isolation: maybe\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "empty interpreter",
			content: "version: \"1\"\npython: [\"\"]\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "unsupported version",
			content: "version: \"2\"\n",
			wantErr: domain.ErrUnsupportedConfigVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			dir := t.TempDir()
			createFile(t, dir, domain.ConfigFileName, tt.content)

			_, err := loader.Load(dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
