package models

import "time"

// Result is the body every JSON endpoint answers with.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SendCodeRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type SubmitRequest struct {
	LinkedInURLs string `json:"linkedin_urls"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

type DebugResponse struct {
	Status               string            `json:"status"`
	EnvironmentVariables map[string]string `json:"environment_variables"`
	Timestamp            string            `json:"timestamp"`
}

const SubmissionStatusPending = "待处理"

// Submission is one stored LinkedIn URL.
type Submission struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	LinkedInURL string    `json:"linkedin_url" db:"linkedin_url"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
	Status      string    `json:"status" db:"status"`
}

// SessionData is the server-side state bound to a browser session.
type SessionData struct {
	CodeHash          string    `json:"code_hash,omitempty"`
	VerificationEmail string    `json:"verification_email,omitempty"`
	CodeIssuedAt      time.Time `json:"code_issued_at,omitempty"`
	LoggedIn          bool      `json:"logged_in,omitempty"`
	UserEmail         string    `json:"user_email,omitempty"`
}

func (s *SessionData) ClearVerification() {
	s.CodeHash = ""
	s.VerificationEmail = ""
	s.CodeIssuedAt = time.Time{}
}
