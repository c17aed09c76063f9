package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

func TestClientRequest(t *testing.T) {
	type want struct {
		result     *models.Result
		statusCode int
		err        bool
	}

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    want
	}{
		{
			name: "positive: success response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success":true,"message":"验证码已发送，请查收邮件"}`))
			},
			want: want{result: &models.Result{Success: true, Message: "验证码已发送，请查收邮件"}},
		},
		{
			name: "positive: business failure is not an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"message":"邮箱格式不正确"}`))
			},
			want: want{result: &models.Result{Success: false, Message: "邮箱格式不正确"}},
		},
		{
			name: "negative: non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			want: want{err: true, statusCode: http.StatusBadGateway},
		},
		{
			name: "negative: malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			want: want{err: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c, err := New(srv.URL, zap.NewNop())
			require.NoError(t, err)

			result, err := c.Request(context.Background(), PathSendCode, models.SendCodeRequest{Email: "a@b.co"})
			if tt.want.err {
				require.Error(t, err)
				var statusErr *StatusError
				if tt.want.statusCode != 0 {
					require.True(t, errors.As(err, &statusErr))
					assert.Equal(t, tt.want.statusCode, statusErr.StatusCode)
				} else {
					assert.False(t, errors.As(err, &statusErr))
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.result, result)
		})
	}
}

func TestClientRequest_SendsJSON(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody models.VerifyCodeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"success":true,"message":"登录成功"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", zap.NewNop())
	require.NoError(t, err)

	_, err = c.Request(context.Background(), PathVerifyCode, models.VerifyCodeRequest{Email: "a@b.co", Code: "123456"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, PathVerifyCode, gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, models.VerifyCodeRequest{Email: "a@b.co", Code: "123456"}, gotBody)
}

func TestClientRequest_KeepsSessionCookie(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		} else {
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, zap.NewNop())
	require.NoError(t, err)

	_, err = c.Request(context.Background(), PathSendCode, models.SendCodeRequest{})
	require.NoError(t, err)
	_, err = c.Request(context.Background(), PathVerifyCode, models.VerifyCodeRequest{})
	require.NoError(t, err)
}

func TestClientRequest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url, zap.NewNop())
	require.NoError(t, err)

	_, err = c.Request(context.Background(), PathSendCode, models.SendCodeRequest{})
	require.Error(t, err)
}
