package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

// FileRepository appends submissions to a file, one JSON object per line.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open storage file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close storage file: %w", err)
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) SaveSubmissions(ctx context.Context, submissions []models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open storage file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, s := range submissions {
		if err := enc.Encode(s); err != nil {
			f.Close()
			return fmt.Errorf("encode submission: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write storage file: %w", err)
	}
	return f.Close()
}

// Load reads every submission stored in the file.
func (r *FileRepository) Load() ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open storage file: %w", err)
	}
	defer f.Close()

	var submissions []models.Submission
	dec := json.NewDecoder(f)
	for {
		var s models.Submission
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, nil
}

func (r *FileRepository) Ping(ctx context.Context) error {
	if _, err := os.Stat(r.path); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (r *FileRepository) Close() error {
	return nil
}
