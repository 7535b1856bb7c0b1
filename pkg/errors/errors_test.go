package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/pkgsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestAlreadyExistsError(t *testing.T) {
	err := pkgerrors.NewAlreadyExistsError("url", "https://curl.se (homepage)")
	assert.Contains(t, err.Error(), "already exists")
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	assert.False(t, pkgerrors.IsValidationError(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("dependency_types.runtime", "", "must be a UUID")
		assert.Equal(t, "validation failed for field dependency_types.runtime: must be a UUID", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing key")
	err := pkgerrors.NewConfigError("dependency_types", "runtime is not configured", base)
	assert.Equal(t, "configuration error in dependency_types: runtime is not configured", err.Error())
	assert.ErrorIs(t, err, base)

	bare := &pkgerrors.ConfigError{Message: "empty"}
	assert.Equal(t, "configuration error: empty", bare.Error())
}

func TestUnknownTypeError(t *testing.T) {
	tests := []struct {
		name    string
		err     *pkgerrors.UnknownTypeError
		target  error
		another error
	}{
		{
			name:    "dependency type",
			err:     pkgerrors.NewUnknownDependencyTypeError("runtime"),
			target:  pkgerrors.ErrUnknownDependencyType,
			another: pkgerrors.ErrUnknownURLType,
		},
		{
			name:    "url type",
			err:     pkgerrors.NewUnknownURLTypeError("homepage"),
			target:  pkgerrors.ErrUnknownURLType,
			another: pkgerrors.ErrUnknownDependencyType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
			assert.NotErrorIs(t, tt.err, tt.another)
			assert.True(t, pkgerrors.IsUnknownType(fmt.Errorf("wrapped: %w", tt.err)))
			assert.Contains(t, tt.err.Error(), tt.err.Value)
		})
	}
}

func TestCacheInconsistencyError(t *testing.T) {
	err := &pkgerrors.CacheInconsistencyError{
		PackageID:        "p-1",
		DependencyID:     "d-1",
		DependencyTypeID: "t-1",
		Cached:           []string{"d-2 / t-1", "d-3 / t-2"},
	}

	require.True(t, pkgerrors.IsCacheInconsistency(err))
	msg := err.Error()
	assert.Contains(t, msg, "removing d-1 / t-1 for p-1")
	assert.Contains(t, msg, "d-2 / t-1")
	assert.Contains(t, msg, "d-3 / t-2")
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected token")
	err := pkgerrors.WrapParse("yaml", "records.yaml", base)
	require.Error(t, err)
	assert.Equal(t, "parse error in yaml file records.yaml: unexpected token", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Nil(t, pkgerrors.WrapParse("yaml", "x", nil))
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("open", "/tmp/snapshot.json", base)
	assert.Equal(t, "IO error during open of /tmp/snapshot.json: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Nil(t, pkgerrors.WrapIO("open", "x", nil))
}

func TestResourceError(t *testing.T) {
	base := pkgerrors.NewUnknownDependencyTypeError("build")
	err := pkgerrors.WrapResource("reconcile", "package", "debian/curl", base)
	assert.Contains(t, err.Error(), "failed to reconcile package debian/curl")
	assert.True(t, pkgerrors.IsUnknownType(err))
	assert.Nil(t, pkgerrors.WrapResource("reconcile", "package", "", nil))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, pkgerrors.IsCanceled(fmt.Errorf("run: %w", pkgerrors.ErrCanceled)))
	assert.False(t, pkgerrors.IsCanceled(errors.New("other")))
}
