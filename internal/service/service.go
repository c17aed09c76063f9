package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/models"
	"github.com/mmeshcher/linkedin-collector/internal/validation"
)

var (
	ErrEmailRequired     = errors.New("email required")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrSendFailed        = errors.New("failed to send code")
	ErrCodeRequired      = errors.New("email and code required")
	ErrCodeNotRequested  = errors.New("code not requested")
	ErrEmailMismatch     = errors.New("email does not match requested code")
	ErrCodeExpired       = errors.New("code expired")
	ErrCodeMismatch      = errors.New("code mismatch")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrURLsRequired      = errors.New("linkedin urls required")
	ErrNoValidURLs       = errors.New("no valid linkedin urls")
	ErrSaveSubmissions   = errors.New("failed to save submissions")
	ErrStorageNotEnabled = errors.New("storage not configured")
)

const DefaultCodeTTL = 5 * time.Minute

type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}

type SubmissionStore interface {
	SaveSubmissions(ctx context.Context, submissions []models.Submission) error
	Ping(ctx context.Context) error
}

// SaveError carries the storage failure behind ErrSaveSubmissions.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSaveSubmissions, e.Err)
}

func (e *SaveError) Unwrap() []error {
	return []error{ErrSaveSubmissions, e.Err}
}

type CollectorService struct {
	sender  CodeSender
	store   SubmissionStore
	codeTTL time.Duration
	logger  *zap.Logger

	nowF     func() time.Time
	generate func() (string, error)
}

func NewCollectorService(sender CodeSender, store SubmissionStore, codeTTL time.Duration, logger *zap.Logger) *CollectorService {
	if codeTTL <= 0 {
		codeTTL = DefaultCodeTTL
	}

	return &CollectorService{
		sender:   sender,
		store:    store,
		codeTTL:  codeTTL,
		logger:   logger,
		nowF:     time.Now,
		generate: GenerateCode,
	}
}

// SendCode issues a fresh code for email, mails it and records its hash in
// data. data is left untouched when delivery fails.
func (s *CollectorService) SendCode(ctx context.Context, data *models.SessionData, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !validation.ValidateServerEmail(email) {
		s.logger.Warn("Invalid email provided", zap.String("email", email))
		return ErrInvalidEmail
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := s.sender.SendCode(ctx, email, code); err != nil {
		s.logger.Error("Failed to send verification code", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	data.CodeHash = HashCode(code)
	data.VerificationEmail = email
	data.CodeIssuedAt = s.nowF()

	s.logger.Info("Verification code sent", zap.String("email", email))
	return nil
}

// VerifyCode logs the session in when code matches the one last sent to
// email. The pending code is consumed on success only.
func (s *CollectorService) VerifyCode(ctx context.Context, data *models.SessionData, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return ErrCodeRequired
	}

	if data.CodeHash == "" {
		return ErrCodeNotRequested
	}

	if data.VerificationEmail != email {
		return ErrEmailMismatch
	}

	if s.nowF().Sub(data.CodeIssuedAt) > s.codeTTL {
		return ErrCodeExpired
	}

	if !CodeEqual(code, data.CodeHash) {
		s.logger.Warn("Verification code mismatch", zap.String("email", email))
		return ErrCodeMismatch
	}

	data.LoggedIn = true
	data.UserEmail = email
	data.ClearVerification()

	s.logger.Info("User logged in", zap.String("email", email))
	return nil
}

// Submit stores every valid URL in rawURLs for the logged-in user and
// returns how many were stored. Invalid lines are skipped.
func (s *CollectorService) Submit(ctx context.Context, data *models.SessionData, rawURLs string) (int, error) {
	if !data.LoggedIn {
		return 0, ErrNotLoggedIn
	}

	rawURLs = strings.TrimSpace(rawURLs)
	if rawURLs == "" {
		return 0, ErrURLsRequired
	}

	now := s.nowF()
	var submissions []models.Submission
	for _, u := range validation.SplitURLs(rawURLs) {
		if !validation.ValidateLinkedInURL(u) {
			s.logger.Warn("Invalid LinkedIn URL skipped", zap.String("url", u))
			continue
		}
		submissions = append(submissions, models.Submission{
			ID:          uuid.New().String(),
			Email:       data.UserEmail,
			LinkedInURL: validation.NormalizeLinkedInURL(u),
			SubmittedAt: now,
			Status:      models.SubmissionStatusPending,
		})
	}

	if len(submissions) == 0 {
		return 0, ErrNoValidURLs
	}

	if s.store == nil {
		return 0, &SaveError{Err: ErrStorageNotEnabled}
	}

	if err := s.store.SaveSubmissions(ctx, submissions); err != nil {
		s.logger.Error("Failed to save submissions",
			zap.String("email", data.UserEmail),
			zap.Int("count", len(submissions)),
			zap.Error(err))
		return 0, &SaveError{Err: err}
	}

	s.logger.Info("Submissions saved",
		zap.String("email", data.UserEmail),
		zap.Int("count", len(submissions)))
	return len(submissions), nil
}

func (s *CollectorService) Ping(ctx context.Context) error {
	if s.store == nil {
		return ErrStorageNotEnabled
	}
	return s.store.Ping(ctx)
}
