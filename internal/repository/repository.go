// Package repository persists submitted LinkedIn URLs.
package repository

import (
	"embed"
	"errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var (
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrUnavailable         = errors.New("storage unavailable")
)
