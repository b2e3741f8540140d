// Package sqlite persists the topic collection in a local SQLite database.
// Same whole-collection semantics as the file backend; the message log of a
// topic serializes to one JSON column since it is only ever read and written
// as a unit.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/obrolan/chatbot-api/internal/domain"
)

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			messages TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_topics_created_at ON topics(created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]*domain.Topic, error) {
	rows, err := s.db.Query(
		`SELECT id, title, created_at, messages FROM topics ORDER BY created_at DESC`)
	if err != nil {
		return []*domain.Topic{}, &domain.CorruptStateError{Source: "sqlite", Cause: err}
	}
	defer rows.Close()

	var topics []*domain.Topic
	for rows.Next() {
		var (
			id, title, rawMsgs string
			createdUnix        int64
		)
		if err := rows.Scan(&id, &title, &createdUnix, &rawMsgs); err != nil {
			return []*domain.Topic{}, &domain.CorruptStateError{Source: "sqlite", Cause: err}
		}

		var msgs []domain.Message
		if err := json.Unmarshal([]byte(rawMsgs), &msgs); err != nil {
			return []*domain.Topic{}, &domain.CorruptStateError{Source: "sqlite", Cause: err}
		}

		topics = append(topics, &domain.Topic{
			ID:        domain.TopicID(id),
			Title:     title,
			CreatedAt: time.UnixMilli(createdUnix),
			Messages:  msgs,
		})
	}
	if err := rows.Err(); err != nil {
		return []*domain.Topic{}, &domain.CorruptStateError{Source: "sqlite", Cause: err}
	}
	if topics == nil {
		topics = []*domain.Topic{}
	}
	return topics, nil
}

func (s *Store) Upsert(t *domain.Topic) ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, _ := s.loadLocked()
	topics = domain.UpsertTopic(topics, t)

	if err := s.persistLocked(topics); err != nil {
		return nil, err
	}
	return topics, nil
}

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

// persistLocked rewrites the whole collection in one transaction, matching
// the whole-document-replace contract of the other backends.
func (s *Store) persistLocked(topics []*domain.Topic) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM topics`); err != nil {
		return fmt.Errorf("clear topics: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO topics (id, title, created_at, messages) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range topics {
		msgs, err := json.Marshal(t.Messages)
		if err != nil {
			return fmt.Errorf("marshal messages: %w", err)
		}
		if _, err := stmt.Exec(string(t.ID), t.Title, t.CreatedAt.UnixMilli(), string(msgs)); err != nil {
			return fmt.Errorf("insert topic: %w", err)
		}
	}

	return tx.Commit()
}
