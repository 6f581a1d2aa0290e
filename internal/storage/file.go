package storage

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// fileEnvelope is the on-disk document. Payload is the JSON record, either
// verbatim or sealed (base64 of nonce||ciphertext) when encryption is on.
type fileEnvelope struct {
	Version   int    `json:"version"`
	Encrypted bool   `json:"encrypted"`
	Payload   string `json:"payload"`
}

// FileStore persists the session record as a single JSON file. Writes go
// through a temp file plus rename so a crash can never leave a partially
// written record.
type FileStore struct {
	path string
	aead cipherAEAD
}

type cipherAEAD interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	NonceSize() int
}

// NewFileStore builds a file-backed store. A non-empty secret enables
// at-rest encryption of the persisted slots.
func NewFileStore(path, secret string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("session file path required")
	}
	fs := &FileStore{path: path}
	if secret != "" {
		key := make([]byte, chacha20poly1305.KeySize)
		kdf := hkdf.New(sha256.New, []byte(secret), []byte("backoffice-console"), []byte("session-at-rest"))
		if _, err := io.ReadFull(kdf, key); err != nil {
			return nil, fmt.Errorf("derive storage key: %w", err)
		}
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("init storage cipher: %w", err)
		}
		fs.aead = aead
	}
	return fs, nil
}

// Save persists both slots atomically.
func (fs *FileStore) Save(_ context.Context, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	env := fileEnvelope{Version: 1}
	if fs.aead != nil {
		nonce := make([]byte, fs.aead.NonceSize())
		if _, err := rand.Read(nonce); err != nil {
			return err
		}
		sealed := fs.aead.Seal(nonce, nonce, raw, nil)
		env.Encrypted = true
		env.Payload = base64.StdEncoding.EncodeToString(sealed)
	} else {
		env.Payload = string(raw)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, fs.path)
}

// Load reads the persisted record.
func (fs *FileStore) Load(_ context.Context) (*Record, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("corrupt session file: %w", err)
	}

	raw := []byte(env.Payload)
	if env.Encrypted {
		if fs.aead == nil {
			return nil, errors.New("session file is encrypted but no secret is configured")
		}
		sealed, err := base64.StdEncoding.DecodeString(env.Payload)
		if err != nil {
			return nil, fmt.Errorf("corrupt session file: %w", err)
		}
		if len(sealed) < fs.aead.NonceSize() {
			return nil, errors.New("corrupt session file: short payload")
		}
		nonce, ciphertext := sealed[:fs.aead.NonceSize()], sealed[fs.aead.NonceSize():]
		raw, err = fs.aead.Open(nil, nonce, ciphertext, nil)
		if err != nil {
			return nil, fmt.Errorf("decrypt session file: %w", err)
		}
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("corrupt session file: %w", err)
	}
	return &rec, nil
}

// Clear removes the session file.
func (fs *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Ping verifies the directory is writable.
func (fs *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
