// Package secrets keeps the postgres password out of the plain-text config.
// It is sealed with AES-GCM under a key derived from the OS user, which hides
// it from casual reads but is no substitute for a keychain.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrNotFound means no password has been stored.
var ErrNotFound = errors.New("no stored database password")

const fileName = "db-password"

var keySalt = []byte("rushcargo/secrets/v1")

// SavePassword seals pw and writes it, replacing any stored password.
func SavePassword(pw string) error {
	path, err := passwordPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir secrets dir: %w", err)
	}
	aead, err := sealer()
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := aead.Seal(nonce, nonce, []byte(pw), nil)
	enc := base64.StdEncoding.EncodeToString(sealed)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(enc+"\n"), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Password returns the stored password, or ErrNotFound.
func Password() (string, error) {
	path, err := passwordPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	sealed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	aead, err := sealer()
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("%s is truncated", path)
	}
	nonce, body := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	pw, err := aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	return string(pw), nil
}

// ClearPassword removes the stored password. Clearing when none is stored
// is not an error.
func ClearPassword() error {
	path, err := passwordPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func passwordPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rushcargo", fileName), nil
}

func sealer() (cipher.AEAD, error) {
	owner := runtime.GOOS + "/" + os.Getenv("USER")
	key := argon2.IDKey([]byte(owner), keySalt, 1, 16*1024, 1, 32)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
