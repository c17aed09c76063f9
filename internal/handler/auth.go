package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/models"
	"github.com/mmeshcher/linkedin-collector/internal/service"
)

func (h *Handler) SendCodeHandler(rw http.ResponseWriter, r *http.Request) {
	var req models.SendCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode send code request", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	sess := h.currentSession(r)
	err := h.service.SendCode(r.Context(), &sess.Data, req.Email)
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		h.writeResult(rw, false, "请输入邮箱地址")
		return
	case errors.Is(err, service.ErrInvalidEmail):
		h.writeResult(rw, false, "邮箱格式不正确")
		return
	case errors.Is(err, service.ErrSendFailed):
		h.writeResult(rw, false, "验证码发送失败，请稍后重试")
		return
	case err != nil:
		h.logger.Error("Send code failed", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	h.writeResult(rw, true, "验证码已发送，请查收邮件")
}

func (h *Handler) VerifyCodeHandler(rw http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode verify code request", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	sess := h.currentSession(r)
	err := h.service.VerifyCode(r.Context(), &sess.Data, req.Email, req.Code)
	switch {
	case errors.Is(err, service.ErrCodeRequired):
		h.writeResult(rw, false, "请输入邮箱和验证码")
		return
	case errors.Is(err, service.ErrCodeNotRequested):
		h.writeResult(rw, false, "请先获取验证码")
		return
	case errors.Is(err, service.ErrEmailMismatch):
		h.writeResult(rw, false, "邮箱不匹配")
		return
	case errors.Is(err, service.ErrCodeExpired):
		h.writeResult(rw, false, "验证码已过期，请重新获取")
		return
	case errors.Is(err, service.ErrCodeMismatch):
		h.writeResult(rw, false, "验证码错误")
		return
	case err != nil:
		h.logger.Error("Verify code failed", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	h.writeResult(rw, true, "登录成功")
}

func (h *Handler) LogoutHandler(rw http.ResponseWriter, r *http.Request) {
	sess := h.currentSession(r)
	if err := h.sessions.Destroy(r.Context(), rw, sess); err != nil {
		h.logger.Error("Failed to destroy session", zap.Error(err))
	}

	http.Redirect(rw, r, "/login", http.StatusFound)
}
