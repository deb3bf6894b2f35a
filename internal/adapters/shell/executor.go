// Package shell runs child processes with captured output.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
//
// Stdout and stderr are captured into separate buffers, since build backends
// report failures on stderr and the caller reproduces it verbatim. Every
// line is also forwarded to the logger at debug level.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs cmd to completion.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error) {
	if len(cmd.Args) == 0 {
		return domain.ProcessResult{}, zerr.Wrap(domain.ErrCommandStartFailed, "empty command")
	}

	name := cmd.Args[0]
	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env, cmd.FilterEnv)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		lp, err := lookPath(name, cmdEnv)
		if err != nil {
			err = zerr.With(zerr.Wrap(domain.ErrCommandStartFailed, err.Error()), "command", name)
			return domain.ProcessResult{ExitCode: -1}, err
		}
		executable = lp
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // arguments are built by the pipeline
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = cmdEnv

	var stdout, stderr bytes.Buffer
	stdoutLog := &logWriter{logger: e.logger}
	stderrLog := &logWriter{logger: e.logger}
	c.Stdout = io.MultiWriter(&stdout, stdoutLog)
	c.Stderr = io.MultiWriter(&stderr, stderrLog)

	if err := c.Start(); err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrCommandStartFailed, err.Error()), "command", name)
		return domain.ProcessResult{ExitCode: -1}, err
	}

	waitErr := c.Wait()
	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	res := domain.ProcessResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if waitErr != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
		err := zerr.Wrap(domain.ErrCommandFailed, name)
		err = zerr.With(err, "exit_code", res.ExitCode)
		return res, err
	}

	return res, nil
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	w.logger.Debug(strings.TrimSuffix(string(line), "\r"))
}

// allowListedEnvVars are the system environment variables inherited by
// filtered commands. Anything Python-specific (PYTHONPATH, VIRTUAL_ENV, ...)
// is dropped so the ambient shell cannot leak into an isolated build.
var allowListedEnvVars = map[string]struct{}{
	"HOME":                 {},
	"TERM":                 {},
	"USER":                 {},
	"PATH":                 {},
	"LANG":                 {},
	"LC_ALL":               {},
	"TMPDIR":               {},
	"SYSTEMROOT":           {},
	"HTTP_PROXY":           {},
	"HTTPS_PROXY":          {},
	"NO_PROXY":             {},
	"http_proxy":           {},
	"https_proxy":          {},
	"no_proxy":             {},
	"SSL_CERT_FILE":        {},
	"SSL_CERT_DIR":         {},
	"REQUESTS_CA_BUNDLE":   {},
	"PIP_CERT":             {},
	"PIP_INDEX_URL":        {},
	"PIP_EXTRA_INDEX_URL":  {},
	"PIP_FIND_LINKS":       {},
	"PIP_NO_INDEX":         {},
	"PIP_TRUSTED_HOST":     {},
}

// resolveEnvironment layers cmdEnv over the system environment, reduced to
// the allow-list when filter is set. A PATH in cmdEnv is prepended to the
// system PATH.
func resolveEnvironment(sysEnv, cmdEnv []string, filter bool) []string {
	envMap := systemEnv(sysEnv, filter)
	applyCommandEnv(envMap, cmdEnv)

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func systemEnv(sysEnv []string, filter bool) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed || !filter {
			envMap[k] = v
		}
	}
	return envMap
}

func applyCommandEnv(envMap map[string]string, cmdEnv []string) {
	for _, entry := range cmdEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}
}

// lookPath searches for an executable in the PATH of env rather than the
// current process's PATH.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
