package shell_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelwright/internal/adapters/shell"
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(log)
}

func TestExecutor_Execute_SeparatesStreams(t *testing.T) {
	executor := newExecutor(t)

	res, err := executor.Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "echo line1; echo oops >&2; echo line2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "line1\nline2\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	executor := newExecutor(t)

	res, err := executor.Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "echo 'raise BackendUnavailable(' >&2; exit 3"},
		Dir:  t.TempDir(),
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrCommandFailed)

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "raise BackendUnavailable(\n", res.Stderr)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_FilteredEnvironment(t *testing.T) {
	t.Setenv("PYTHONPATH", "/leaked")
	executor := newExecutor(t)

	res, err := executor.Execute(context.Background(), domain.Command{
		Args:      []string{"sh", "-c", `echo "$WHEELWRIGHT_TEST_VAR|$PYTHONPATH"`},
		Dir:       t.TempDir(),
		Env:       []string{"WHEELWRIGHT_TEST_VAR=hello"},
		FilterEnv: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello|\n", res.Stdout)
}

func TestExecutor_Execute_AmbientEnvironment(t *testing.T) {
	t.Setenv("PYTHONPATH", "/site/backends")
	t.Setenv("CFLAGS", "-O2")
	executor := newExecutor(t)

	res, err := executor.Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", `echo "$WHEELWRIGHT_TEST_VAR|$PYTHONPATH|$CFLAGS"`},
		Dir:  t.TempDir(),
		Env:  []string{"WHEELWRIGHT_TEST_VAR=hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello|/site/backends|-O2\n", res.Stdout)
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	executor := newExecutor(t)
	dir := t.TempDir()

	res, err := executor.Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "pwd -P"},
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, filepath.Base(dir))
}

func TestExecutor_Execute_CommandNotFound(t *testing.T) {
	executor := newExecutor(t)

	_, err := executor.Execute(context.Background(), domain.Command{
		Args: []string{"wheelwright-no-such-binary"},
		Dir:  t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommandStartFailed)
	assert.NotErrorIs(t, err, domain.ErrCommandFailed)
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := newExecutor(t)

	_, err := executor.Execute(context.Background(), domain.Command{})
	require.ErrorIs(t, err, domain.ErrCommandStartFailed)
}

func TestExecutor_Execute_ContextCancelled(t *testing.T) {
	executor := newExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executor.Execute(ctx, domain.Command{
		Args: []string{"sh", "-c", "sleep 5"},
		Dir:  t.TempDir(),
	})
	require.Error(t, err)
}
