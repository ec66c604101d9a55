package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	passstore "github.com/bnema/everydaymood/internal/adapters/secrets/pass"
	"github.com/bnema/everydaymood/internal/domain"
	portmocks "github.com/bnema/everydaymood/internal/ports/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const gateKey = "everydaymood/gate/password_hash"

func newMockedStore(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	pass := portmocks.NewMockSecretStore(t)
	vault := portmocks.NewMockSecretStore(t)
	store, err := NewStore(zerolog.Nop(), Backend{Name: "pass", Store: pass}, Backend{Name: "vault", Store: vault})
	require.NoError(t, err)
	return store, pass, vault
}

func TestNewStoreValidatesBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(zerolog.Nop())
	require.Error(t, err)
	assert.ErrorContains(t, err, "at least one backend")

	_, err = NewStore(zerolog.Nop(), Backend{Name: "vault"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "secret backend 0 (vault) is nil")
}

func TestNewDefaultBuildsPassThenVault(t *testing.T) {
	t.Parallel()

	store, err := NewDefault(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, store.backends, 2)
	assert.Equal(t, "pass", store.backends[0].Name)
	assert.Equal(t, "vault", store.backends[1].Name)
}

func TestStoreGetStopsAtFirstHit(t *testing.T) {
	t.Parallel()

	store, pass, _ := newMockedStore(t)
	pass.EXPECT().Get(mock.Anything, gateKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), gateKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetWalksPastAbsentBackends(t *testing.T) {
	t.Parallel()

	store, pass, vault := newMockedStore(t)
	pass.EXPECT().Get(mock.Anything, gateKey).Return("", passstore.ErrUnavailable).Once()
	vault.EXPECT().Get(mock.Anything, gateKey).Return("from-vault", nil).Once()

	value, err := store.Get(context.Background(), gateKey)
	require.NoError(t, err)
	assert.Equal(t, "from-vault", value)
}

func TestStoreGetReportsNotFoundOnlyWhenEveryBackendLacksTheKey(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("lookup: %w", domain.ErrSecretNotFound)

	testCases := []struct {
		name         string
		passErr      error
		vaultErr     error
		wantNotFound bool
		wantContains []string
	}{
		{name: "both missing", passErr: notFound, vaultErr: notFound, wantNotFound: true},
		{name: "pass unavailable and vault missing", passErr: passstore.ErrUnavailable, vaultErr: notFound, wantNotFound: true},
		{name: "pass broken", passErr: errors.New("gpg failed"), vaultErr: notFound, wantContains: []string{"pass backend get", "gpg failed"}},
		{name: "vault broken", passErr: notFound, vaultErr: errors.New("permission denied"), wantContains: []string{"vault backend get", "permission denied"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store, pass, vault := newMockedStore(t)
			pass.EXPECT().Get(mock.Anything, gateKey).Return("", tc.passErr).Once()
			vault.EXPECT().Get(mock.Anything, gateKey).Return("", tc.vaultErr).Once()

			_, err := store.Get(context.Background(), gateKey)
			require.Error(t, err)
			assert.Equal(t, tc.wantNotFound, errors.Is(err, domain.ErrSecretNotFound))
			for _, want := range tc.wantContains {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}

func TestStorePutLandsInFirstAcceptingBackend(t *testing.T) {
	t.Parallel()

	store, pass, vault := newMockedStore(t)
	pass.EXPECT().Put(mock.Anything, gateKey, "hash").Return(errors.New("pass failed")).Once()
	vault.EXPECT().Put(mock.Anything, gateKey, "hash").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), gateKey, "hash"))
}

func TestStorePutSkipsLaterBackendsOnSuccess(t *testing.T) {
	t.Parallel()

	store, pass, _ := newMockedStore(t)
	pass.EXPECT().Put(mock.Anything, gateKey, "hash").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), gateKey, "hash"))
}

func TestStorePutJoinsEveryFailure(t *testing.T) {
	t.Parallel()

	store, pass, vault := newMockedStore(t)
	pass.EXPECT().Put(mock.Anything, gateKey, "hash").Return(passstore.ErrUnavailable).Once()
	vault.EXPECT().Put(mock.Anything, gateKey, "hash").Return(errors.New("disk full")).Once()

	err := store.Put(context.Background(), gateKey, "hash")
	require.Error(t, err)
	assert.ErrorIs(t, err, passstore.ErrUnavailable)
	assert.ErrorContains(t, err, "vault backend put: disk full")
}

func TestStoreDeleteClearsEveryBackend(t *testing.T) {
	t.Parallel()

	store, pass, vault := newMockedStore(t)
	pass.EXPECT().Delete(mock.Anything, gateKey).Return(passstore.ErrUnavailable).Once()
	vault.EXPECT().Delete(mock.Anything, gateKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), gateKey))
}

func TestStoreDeleteReportsBrokenBackend(t *testing.T) {
	t.Parallel()

	store, pass, vault := newMockedStore(t)
	pass.EXPECT().Delete(mock.Anything, gateKey).Return(nil).Once()
	vault.EXPECT().Delete(mock.Anything, gateKey).Return(errors.New("read-only")).Once()

	err := store.Delete(context.Background(), gateKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "vault backend delete: read-only")
}

func TestStoreStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	store, pass, _ := newMockedStore(t)
	pass.EXPECT().Get(mock.Anything, gateKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), gateKey)
	require.ErrorIs(t, err, context.Canceled)
}
