package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const defaultBinary = "pass"

// invocation is one run of the pass binary.
type invocation struct {
	Args  []string
	Env   []string
	Stdin string
}

type result struct {
	Stdout string
	Stderr string
}

type runner func(ctx context.Context, binary string, inv invocation) (result, error)

// Store keeps secrets in the pass password manager, one entry per key.
type Store struct {
	binary   string
	storeDir string
	run      runner
}

type Option func(*Store)

// WithStoreDir points pass at a password store other than ~/.password-store.
func WithStoreDir(dir string) Option {
	return func(s *Store) {
		s.storeDir = dir
	}
}

// WithBinary runs a pass-compatible binary, such as gopass, instead of pass.
func WithBinary(binary string) Option {
	return func(s *Store) {
		if strings.TrimSpace(binary) != "" {
			s.binary = binary
		}
	}
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(opts ...Option) *Store {
	store := &Store{binary: defaultBinary, run: execRunner}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Available reports whether the pass binary can be found on PATH.
func (s *Store) Available() bool {
	_, err := exec.LookPath(s.binary)
	return err == nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	_, err := s.invoke(ctx, "put", key, invocation{
		Args:  []string{"insert", "--multiline", "--force", key},
		Stdin: value + "\n",
	})
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	out, err := s.invoke(ctx, "get", key, invocation{Args: []string{"show", key}})
	if err != nil {
		return "", err
	}

	// The first line of an entry is the secret; the rest is free-form metadata.
	value, _, _ := strings.Cut(out.Stdout, "\n")
	return strings.TrimSuffix(value, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.invoke(ctx, "delete", key, invocation{Args: []string{"rm", "--force", key}})
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

func (s *Store) invoke(ctx context.Context, op string, key string, inv invocation) (result, error) {
	if err := ctx.Err(); err != nil {
		return result{}, err
	}
	if strings.TrimSpace(key) == "" {
		return result{}, errors.New("secret key is empty")
	}

	if s.storeDir != "" {
		inv.Env = append(inv.Env, "PASSWORD_STORE_DIR="+s.storeDir)
	}

	out, err := s.run(ctx, s.binary, inv)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, ErrUnavailable):
		return result{}, err
	case strings.Contains(out.Stderr, "is not in the password store"):
		return result{}, fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	case out.Stderr != "":
		return result{}, fmt.Errorf("pass %s %q: %w: %s", op, key, err, out.Stderr)
	default:
		return result{}, fmt.Errorf("pass %s %q: %w", op, key, err)
	}
}

func execRunner(ctx context.Context, binary string, inv invocation) (result, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return result{}, ErrUnavailable
		}
		return result{}, fmt.Errorf("locate %s command: %w", binary, err)
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	if inv.Stdin != "" {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return result{Stdout: stdout.String(), Stderr: strings.TrimSpace(stderr.String())}, err
}
