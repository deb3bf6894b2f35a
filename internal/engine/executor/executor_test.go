package executor_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports/mocks"
	"go.trai.ch/wheelwright/internal/engine/executor"
	"go.uber.org/mock/gomock"
)

func projectConfig(dir string) domain.ProjectConfig {
	return domain.ProjectConfig{
		Path:                 dir,
		HasPEP517Declaration: true,
		BuildBackend:         "flit_core.buildapi",
		BuildRequirements:    []string{"flit_core"},
		RequirementsDeclared: true,
	}
}

func TestExecute_RejectedDoesNotTouchEnvironment(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	env := mocks.NewMockEnvironment(ctrl)

	ex := executor.New(t.TempDir())
	out := ex.Execute(context.Background(),
		domain.Rejected{Reason: domain.Pep517DisableInvalidForPep517OnlyProject},
		env, projectConfig(t.TempDir()))

	assert.False(t, out.Succeeded)
	assert.Equal(t, domain.FailureRejection, out.Failure)
	assert.Equal(t,
		"ERROR: Disabling PEP 517 processing is invalid: project does not have a setup.py\n",
		out.Diagnostic)
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	env := mocks.NewMockEnvironment(ctrl)
	project := t.TempDir()

	env.EXPECT().RunBackend(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.BackendInvocation) (domain.BackendResult, error) {
			assert.Equal(t, domain.HookPEP517BuildWheel, inv.Hook)
			assert.Equal(t, "flit_core.buildapi", inv.Backend)
			assert.Equal(t, project, inv.ProjectDir)
			wheel := filepath.Join(inv.OutputDir, "demo-0.1.0-py3-none-any.whl")
			require.NoError(t, os.WriteFile(wheel, []byte("PK"), domain.FilePerm))
			return domain.BackendResult{Stdout: "built\n"}, nil
		})

	ex := executor.New(t.TempDir())
	out := ex.Execute(context.Background(), domain.Pep517Isolated{}, env, projectConfig(project))

	require.True(t, out.Succeeded, out.Diagnostic)
	assert.Equal(t, "demo-0.1.0-py3-none-any.whl", filepath.Base(out.Wheel))
	assert.Equal(t, "built\n", out.Stdout)

	require.NoError(t, executor.Cleanup(out))
	_, err := os.Stat(filepath.Dir(out.Wheel))
	assert.True(t, os.IsNotExist(err))
}

func TestExecute_LegacyUsesSetupHook(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	env := mocks.NewMockEnvironment(ctrl)

	env.EXPECT().RunBackend(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.BackendInvocation) (domain.BackendResult, error) {
			assert.Equal(t, domain.HookLegacySetup, inv.Hook)
			wheel := filepath.Join(inv.OutputDir, "project-0.1.0-py3-none-any.whl")
			require.NoError(t, os.WriteFile(wheel, []byte("PK"), domain.FilePerm))
			return domain.BackendResult{}, nil
		})

	ex := executor.New(t.TempDir())
	out := ex.Execute(context.Background(), domain.LegacySetup{}, env, projectConfig(t.TempDir()))
	require.True(t, out.Succeeded)
	require.NoError(t, executor.Cleanup(out))
}

func TestExecute_FailureClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   domain.BackendResult
		wantKind domain.FailureKind
		wantErr  error
	}{
		{
			name: "backend unavailable",
			result: domain.BackendResult{
				ExitCode:    1,
				Stderr:      "Traceback (most recent call last):\n    raise BackendUnavailable(\n",
				Unavailable: true,
			},
			wantKind: domain.FailureBackendUnavailable,
			wantErr:  domain.ErrBackendUnavailable,
		},
		{
			name:     "backend error",
			result:   domain.BackendResult{ExitCode: 1, Stderr: "error: invalid command 'bdist_wheel'\n"},
			wantKind: domain.FailureBackendBuild,
			wantErr:  domain.ErrBackendBuildFailure,
		},
		{
			name:     "setup.py exiting with status 3",
			result:   domain.BackendResult{ExitCode: 3, Stderr: "error: compiler failed\n"},
			wantKind: domain.FailureBackendBuild,
			wantErr:  domain.ErrBackendBuildFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			env := mocks.NewMockEnvironment(ctrl)
			env.EXPECT().RunBackend(gomock.Any(), gomock.Any()).Return(tt.result, nil)

			ex := executor.New(t.TempDir())
			out := ex.Execute(context.Background(), domain.Pep517NonIsolated{}, env, projectConfig(t.TempDir()))

			assert.False(t, out.Succeeded)
			assert.Equal(t, tt.wantKind, out.Failure)
			assert.Equal(t, tt.result.Stderr, out.Diagnostic)
			assert.ErrorIs(t, out.Err(), tt.wantErr)
		})
	}
}

func TestExecute_NoWheelIsFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	env := mocks.NewMockEnvironment(ctrl)
	env.EXPECT().RunBackend(gomock.Any(), gomock.Any()).Return(domain.BackendResult{}, nil)

	ex := executor.New(t.TempDir())
	out := ex.Execute(context.Background(), domain.Pep517Isolated{}, env, projectConfig(t.TempDir()))

	assert.False(t, out.Succeeded)
	assert.Equal(t, domain.FailureBackendBuild, out.Failure)
	assert.Contains(t, out.Diagnostic, domain.ErrNoWheelProduced.Error())
}

func TestExecute_StartErrorIsFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	env := mocks.NewMockEnvironment(ctrl)
	env.EXPECT().RunBackend(gomock.Any(), gomock.Any()).
		Return(domain.BackendResult{}, errors.New("exec: \"python3\": executable file not found"))

	ex := executor.New(t.TempDir())
	out := ex.Execute(context.Background(), domain.Pep517Isolated{}, env, projectConfig(t.TempDir()))

	assert.Equal(t, domain.FailureBackendBuild, out.Failure)
	assert.Contains(t, out.Diagnostic, "executable file not found")
}
