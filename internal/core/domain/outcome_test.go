package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestBuildOutcome_Err(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome domain.BuildOutcome
		want    error
	}{
		{"rejection", domain.Reject(domain.IsolationRequirementsMissing), domain.ErrBuildRejected},
		{"conflicting flags", domain.Reject(domain.ConflictingFlags), domain.ErrConflictingFlags},
		{"manifest", domain.Fail(domain.FailureManifestUnreadable, ""), domain.ErrManifestUnreadable},
		{"provisioning", domain.Fail(domain.FailureEnvironmentProvisioning, ""), domain.ErrEnvironmentProvisioning},
		{"unavailable", domain.Fail(domain.FailureBackendUnavailable, ""), domain.ErrBackendUnavailable},
		{"backend", domain.Fail(domain.FailureBackendBuild, ""), domain.ErrBackendBuildFailure},
		{"packaging", domain.Fail(domain.FailurePackaging, ""), domain.ErrPackagingFailed},
		{"run", domain.Fail(domain.FailureRun, ""), domain.ErrRunFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.outcome.Err()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var zErr *zerr.Error
			require.True(t, errors.As(err, &zErr))
			assert.Equal(t, tt.outcome.Failure.String(), zErr.Metadata()["failure"])
		})
	}
}

func TestBuildOutcome_Err_ConflictingFlagsIsRejection(t *testing.T) {
	t.Parallel()
	err := domain.Reject(domain.ConflictingFlags).Err()
	assert.ErrorIs(t, err, domain.ErrBuildRejected)
	assert.NotErrorIs(t, domain.Reject(domain.IsolationRequirementsMissing).Err(), domain.ErrConflictingFlags)
}

func TestBuildOutcome_Err_Success(t *testing.T) {
	t.Parallel()
	assert.NoError(t, domain.Succeed("demo.whl", "").Err())
}
