package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps one JSON document per session under a directory.
type FileStore struct {
	mu       sync.Mutex
	basePath string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{basePath: dir}, nil
}

// fileName hashes the id so client-chosen ids never touch the path.
func (s *FileStore) fileName(id string) string {
	hash := sha256.Sum256([]byte(id))
	return filepath.Join(s.basePath, hex.EncodeToString(hash[:])[:24]+".json")
}

func (s *FileStore) load(id string) (*fileSession, error) {
	data, err := os.ReadFile(s.fileName(id))
	if os.IsNotExist(err) {
		return &fileSession{ID: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var sess fileSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *FileStore) Items(_ context.Context, id string, limit int) ([]Item, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return lastN(sess.Items, limit), nil
}

func (s *FileStore) Append(_ context.Context, id string, items ...Item) error {
	if err := checkID(id); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now
	sess.Items = append(sess.Items, stamp(items)...)

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(s.fileName(id), data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.fileName(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
