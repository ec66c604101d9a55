package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gateKey = "everydaymood/gate/password_hash"
	smtpKey = "everydaymood/notifier/smtp_password"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "newline", key: "gate\nhash", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreKeepsSecretsInOneOwnerOnlyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, gateKey, "$2a$10$hash"))
	require.NoError(t, store.Put(ctx, smtpKey, "app-password"))
	require.NoError(t, store.Put(ctx, gateKey, "$2a$10$newer"))

	got, err := store.Get(ctx, gateKey)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$newer", got)

	got, err = store.Get(ctx, smtpKey)
	require.NoError(t, err)
	assert.Equal(t, "app-password", got)

	assert.Equal(t, filepath.Join(dir, VaultFileName), store.Path())
	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(vaultFileMode), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(dir, ".vault-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStoreReopensExistingVault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, NewStore(dir).Put(context.Background(), smtpKey, "app-password"))

	got, err := NewStore(dir).Get(context.Background(), smtpKey)
	require.NoError(t, err)
	assert.Equal(t, "app-password", got)
}

func TestStoreGetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), gateKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, gateKey, "hash"))
	require.NoError(t, store.Put(ctx, smtpKey, "app-password"))
	require.NoError(t, store.Delete(ctx, gateKey))
	require.NoError(t, store.Delete(ctx, gateKey))

	_, err := store.Get(ctx, gateKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	got, err := store.Get(ctx, smtpKey)
	require.NoError(t, err)
	assert.Equal(t, "app-password", got)
}

func TestStoreRejectsNewerVaultVersion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VaultFileName), []byte("version = 9\n"), 0o600))

	_, err := NewStore(dir).Get(context.Background(), gateKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported secret vault version 9")
}

func TestStoreReportsMalformedVault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VaultFileName), []byte("secrets = [\n"), 0o600))

	err := NewStore(dir).Put(context.Background(), gateKey, "hash")
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode secret vault")
}
