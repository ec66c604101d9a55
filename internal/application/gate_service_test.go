package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	filestore "github.com/bnema/everydaymood/internal/adapters/secrets/file"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestGate(t *testing.T) *GateService {
	t.Helper()

	gate := NewGateService(filestore.NewStore(filepath.Join(t.TempDir(), "secrets")))
	gate.cost = bcrypt.MinCost
	return gate
}

func TestGateWithoutPasswordIsOpen(t *testing.T) {
	t.Parallel()

	gate := newTestGate(t)

	enabled, err := gate.Enabled(context.Background())
	require.NoError(t, err)
	assert.False(t, enabled)
	require.NoError(t, gate.Verify(context.Background(), ""))
}

func TestGateVerify(t *testing.T) {
	t.Parallel()

	gate := newTestGate(t)
	require.NoError(t, gate.SetPassword(context.Background(), "112323"))

	enabled, err := gate.Enabled(context.Background())
	require.NoError(t, err)
	assert.True(t, enabled)

	testCases := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "correct", password: "112323"},
		{name: "missing", password: "", wantErr: domain.ErrGateLocked},
		{name: "wrong", password: "123456", wantErr: domain.ErrWrongPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.Verify(context.Background(), tc.password)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGateClearReopens(t *testing.T) {
	t.Parallel()

	gate := newTestGate(t)
	require.NoError(t, gate.SetPassword(context.Background(), "secret"))
	require.NoError(t, gate.Clear(context.Background()))

	require.NoError(t, gate.Verify(context.Background(), ""))
}

func TestGateRejectsEmptyPassword(t *testing.T) {
	t.Parallel()

	err := newTestGate(t).SetPassword(context.Background(), "")
	require.Error(t, err)
}

func TestGateStoresHashNotPassword(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	var stored string
	store.EXPECT().Put(mockAnyContext(), GatePasswordKey, mock.AnythingOfType("string")).
		Run(func(_ context.Context, _ string, value string) { stored = value }).
		Return(nil).Once()

	gate := NewGateService(store)
	gate.cost = bcrypt.MinCost
	require.NoError(t, gate.SetPassword(context.Background(), "plain"))

	assert.NotEqual(t, "plain", stored)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("plain")))
}

func TestGateBrokenStoreIsNotTreatedAsOpen(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Get(mockAnyContext(), GatePasswordKey).Return("", errors.New("gpg failed")).Twice()

	gate := NewGateService(store)

	err := gate.Verify(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGateLocked)

	_, err = gate.Enabled(context.Background())
	require.Error(t, err)
}
