package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/models"
	"github.com/mmeshcher/linkedin-collector/internal/service"
)

func (h *Handler) SubmitLinkedInHandler(rw http.ResponseWriter, r *http.Request) {
	sess := h.currentSession(r)
	if !sess.Data.LoggedIn {
		h.writeResult(rw, false, "请先登录")
		return
	}

	var req models.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode submit request", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	n, err := h.service.Submit(r.Context(), &sess.Data, req.LinkedInURLs)

	var saveErr *service.SaveError
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		h.writeResult(rw, false, "请先登录")
		return
	case errors.Is(err, service.ErrURLsRequired):
		h.writeResult(rw, false, "请输入LinkedIn链接")
		return
	case errors.Is(err, service.ErrNoValidURLs):
		h.writeResult(rw, false, "没有有效的LinkedIn链接")
		return
	case errors.As(err, &saveErr):
		h.writeResult(rw, false, fmt.Sprintf("数据保存失败: %v", saveErr.Err))
		return
	case err != nil:
		h.logger.Error("Submit failed", zap.Error(err))
		h.writeResult(rw, false, msgSystemError)
		return
	}

	h.writeResult(rw, true, fmt.Sprintf("成功提交 %d 个LinkedIn链接", n))
}
