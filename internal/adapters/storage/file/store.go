// Package file persists the topic collection as a single JSON document on
// local disk, rewritten in full on every mutation.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/obrolan/chatbot-api/internal/domain"
)

// schemaVersion tags the persisted envelope so a future shape change can be
// migrated explicitly instead of silently tolerated.
const schemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Topics  []*domain.Topic `json:"topics"`
}

// Store is a single-writer whole-document store. Concurrent processes are
// not coordinated; the last writer wins.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the whole collection. Unparsable state comes back as an empty
// collection plus a CorruptStateError the caller should log, not fail on.
func (s *Store) Load() ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]*domain.Topic, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*domain.Topic{}, nil
	}
	if err != nil {
		return []*domain.Topic{}, &domain.CorruptStateError{Source: s.path, Cause: err}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version == schemaVersion {
		return env.Topics, nil
	}

	// Legacy shape: a bare topic array. Accepted on load, rewritten into
	// the envelope on the next mutation.
	var legacy []*domain.Topic
	if err := json.Unmarshal(data, &legacy); err == nil {
		return legacy, nil
	}

	return []*domain.Topic{}, &domain.CorruptStateError{
		Source: s.path,
		Cause:  fmt.Errorf("unrecognized topic document"),
	}
}

// Upsert replaces or prepends the topic and persists the whole collection.
func (s *Store) Upsert(t *domain.Topic) ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, _ := s.loadLocked() // corrupt state resets to empty
	topics = domain.UpsertTopic(topics, t)

	if err := s.persistLocked(topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// Remove filters the topic out and persists. Idempotent.
func (s *Store) Remove(id domain.TopicID) ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, _ := s.loadLocked()
	topics = domain.RemoveTopic(topics, id)

	if err := s.persistLocked(topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *Store) persistLocked(topics []*domain.Topic) error {
	data, err := json.MarshalIndent(envelope{Version: schemaVersion, Topics: topics}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}
	return atomicWriteFile(s.path, data, 0o644)
}

// atomicWriteFile writes to a temp file in the target directory, fsyncs,
// then renames over the destination so a crash leaves either the old or the
// new complete document, never a partial one.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, ".topics-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	ok := false
	defer func() {
		if !ok {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	ok = true
	return nil
}
