package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

type contextKey string

const sessionKey contextKey = "session"

const (
	CookieName = "session"
	DefaultTTL = 24 * time.Hour
)

// Session is the state of the current request's browser session.
type Session struct {
	ID   string
	Data models.SessionData
}

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

func NewManager(store Store, secret string, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Middleware attaches a Session to every request, issuing a fresh signed
// cookie when the request carries none or an invalid one.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := m.load(ctx, r)
		if sess == nil {
			sess = &Session{ID: uuid.New().String()}
			m.setCookie(w, sess.ID)
		}

		ctx = context.WithValue(ctx, sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) Save(ctx context.Context, sess *Session) error {
	return m.store.Save(ctx, sess.ID, &sess.Data, m.ttl)
}

// Destroy forgets the session server-side and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	sess.Data = models.SessionData{}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return m.store.Delete(ctx, sess.ID)
}

func (m *Manager) load(ctx context.Context, r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	id, valid := m.parseCookie(cookie.Value)
	if !valid {
		m.logger.Warn("Invalid session cookie signature")
		return nil
	}

	data, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &Session{ID: id}
	}
	if err != nil {
		m.logger.Error("Failed to load session", zap.String("sessionID", id), zap.Error(err))
		return &Session{ID: id}
	}

	return &Session{ID: id, Data: *data}
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(id),
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) parseCookie(value string) (string, bool) {
	id, signature, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}

	_, expected, _ := strings.Cut(m.sign(id), ".")
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}

	return id, true
}

func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*Session)
	return sess, ok
}
