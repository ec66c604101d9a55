package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runEM(t, binaryPath, home, "settings", "relationship", "--start", "2023-11-23")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runEM(t, binaryPath, home, "journal", "add", "--mood", "happy", "First entry from the smoke test")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Saved entry #1 (Happy 😊).")

	stdout, stderr, err = runEM(t, binaryPath, home, "journal", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "First entry from the smoke test")

	stdout, stderr, err = runEM(t, binaryPath, home, "together")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "since 2023-11-23")

	stdout, stderr, err = runEM(t, binaryPath, home, "score")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "high score: 0")
}

func TestSmokeEnvFileIsLoaded(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"), []byte("EM_STORAGE_DRIVER=sqlite\n"), 0o600))

	cmd := exec.Command(binaryPath, "journal", "add", "from dotenv")
	cmd.Dir = workDir
	cmd.Env = append(cleanEnv(), "HOME="+home, "EM_SECRETS_BACKEND=file")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", string(output))

	assert.FileExists(t, filepath.Join(home, ".everydaymood", "everydaymood.db"))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "em-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/em")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build em binary: %s", string(output))
	return binaryPath
}

func runEM(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(cleanEnv(), "HOME="+home, "EM_SECRETS_BACKEND=file")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// cleanEnv drops EM_ variables from the test process environment.
func cleanEnv() []string {
	env := make([]string, 0, len(os.Environ()))
	for _, kv := range os.Environ() {
		if len(kv) >= 3 && kv[:3] == "EM_" {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
