// Package memory keeps the topic collection in process memory. Used by
// tests and as a throwaway dev backend.
package memory

import (
	"sync"

	"github.com/obrolan/chatbot-api/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	topics []*domain.Topic
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load() ([]*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.topics), nil
}

func (s *Store) Upsert(t *domain.Topic) ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = domain.UpsertTopic(s.topics, t)
	return snapshot(s.topics), nil
}

func (s *Store) Remove(id domain.TopicID) ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = domain.RemoveTopic(s.topics, id)
	return snapshot(s.topics), nil
}

func snapshot(topics []*domain.Topic) []*domain.Topic {
	out := make([]*domain.Topic, len(topics))
	copy(out, topics)
	return out
}
