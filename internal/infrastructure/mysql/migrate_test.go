package mysql

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type versionFunc func() (uint, bool, error)

func (f versionFunc) Version() (uint, bool, error) {
	return f()
}

func TestAppliedVersion(t *testing.T) {
	version, err := appliedVersion(versionFunc(func() (uint, bool, error) { return 1, false, nil }))

	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestAppliedVersion_Dirty(t *testing.T) {
	version, err := appliedVersion(versionFunc(func() (uint, bool, error) { return 1, true, nil }))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version 1 is dirty")
	assert.Equal(t, uint(1), version)
}

func TestAppliedVersion_NoMigrationApplied(t *testing.T) {
	version, err := appliedVersion(versionFunc(func() (uint, bool, error) { return 0, false, migrate.ErrNilVersion }))

	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestAppliedVersion_ReadError(t *testing.T) {
	boom := errors.New("connection reset")

	_, err := appliedVersion(versionFunc(func() (uint, bool, error) { return 0, false, boom }))

	assert.ErrorIs(t, err, boom)
}
