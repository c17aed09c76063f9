package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

func TestBuildInsert(t *testing.T) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	submissions := []models.Submission{
		{ID: "id-1", Email: "a@example.com", LinkedInURL: "https://linkedin.com/in/a", SubmittedAt: now, Status: models.SubmissionStatusPending},
		{ID: "id-2", Email: "a@example.com", LinkedInURL: "https://linkedin.com/in/b", SubmittedAt: now, Status: models.SubmissionStatusPending},
	}

	query, args, err := buildInsert(sb, submissions)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO submissions (id,email,linkedin_url,submitted_at,status) VALUES ($1,$2,$3,$4,$5),($6,$7,$8,$9,$10)",
		query)
	assert.Equal(t, []any{
		"id-1", "a@example.com", "https://linkedin.com/in/a", now, "待处理",
		"id-2", "a@example.com", "https://linkedin.com/in/b", now, "待处理",
	}, args)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "positive: unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: ErrDuplicateSubmission},
		{name: "positive: connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.ErrorIs(t, got, tt.want)

			var pgErr *pgconn.PgError
			assert.ErrorAs(t, got, &pgErr)
		})
	}

	t.Run("negative: other errors pass through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, classify(plain))

		syntax := &pgconn.PgError{Code: pgerrcode.SyntaxError}
		got := classify(syntax)
		assert.NotErrorIs(t, got, ErrDuplicateSubmission)
		assert.NotErrorIs(t, got, ErrUnavailable)
	})
}

func TestMigrationsEmbedded(t *testing.T) {
	up, err := migrationFS.ReadFile("migrations/000001_create_submissions.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS submissions")

	_, err = migrationFS.ReadFile("migrations/000001_create_submissions.down.sql")
	assert.NoError(t, err)
}
