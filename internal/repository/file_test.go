package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

func testSubmissions() []models.Submission {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.Submission{
		{ID: "id-1", Email: "a@example.com", LinkedInURL: "https://linkedin.com/in/a", SubmittedAt: now, Status: models.SubmissionStatusPending},
		{ID: "id-2", Email: "a@example.com", LinkedInURL: "https://linkedin.com/in/b", SubmittedAt: now, Status: models.SubmissionStatusPending},
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "submissions.jsonl")

	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Ping(ctx))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	subs := testSubmissions()
	require.NoError(t, repo.SaveSubmissions(ctx, subs[:1]))
	require.NoError(t, repo.SaveSubmissions(ctx, subs[1:]))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"linkedin_url":"https://linkedin.com/in/a"`)

	reopened, err := NewFileRepository(path)
	require.NoError(t, err)
	loaded, err = reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, subs, loaded)
}

func TestFileRepository_Errors(t *testing.T) {
	_, err := NewFileRepository(filepath.Join(t.TempDir(), "missing", "submissions.jsonl"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "submissions.jsonl")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{not json\n"), 0644))
	_, err = repo.Load()
	assert.Error(t, err)

	require.NoError(t, os.Remove(path))
	assert.ErrorIs(t, repo.Ping(context.Background()), ErrUnavailable)
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Ping(ctx))

	subs := testSubmissions()
	require.NoError(t, repo.SaveSubmissions(ctx, subs))

	got := repo.Submissions()
	assert.Equal(t, subs, got)

	got[0].Email = "changed@example.com"
	assert.Equal(t, "a@example.com", repo.Submissions()[0].Email)
	assert.NoError(t, repo.Close())
}
