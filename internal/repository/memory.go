package repository

import (
	"context"
	"sync"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

type MemoryRepository struct {
	mu          sync.RWMutex
	submissions []models.Submission
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) SaveSubmissions(ctx context.Context, submissions []models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, submissions...)
	return nil
}

// Submissions returns a copy of everything stored so far, oldest first.
func (m *MemoryRepository) Submissions() []models.Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Submission(nil), m.submissions...)
}

func (m *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryRepository) Close() error {
	return nil
}
