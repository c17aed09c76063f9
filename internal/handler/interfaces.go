package handler

import (
	"context"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

type CollectorService interface {
	SendCode(ctx context.Context, data *models.SessionData, email string) error
	VerifyCode(ctx context.Context, data *models.SessionData, email, code string) error
	Submit(ctx context.Context, data *models.SessionData, rawURLs string) (int, error)
	Ping(ctx context.Context) error
}
