// Package mailer delivers verification codes over SMTP with implicit TLS.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/config"
)

const (
	Subject     = "外贸LinkedIn收集系统 - 验证码"
	dialTimeout = 10 * time.Second
)

const bodyTemplate = `您好！

您的验证码是：%s

验证码有效期为5分钟，请及时使用。

如果您没有请求此验证码，请忽略此邮件。

---
外贸LinkedIn信息收集系统
`

type Mailer struct {
	cfg    config.MailConfig
	logger *zap.Logger

	dial func(ctx context.Context, addr string, tlsConfig *tls.Config) (net.Conn, error)
}

func New(cfg config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		dial:   dialTLS,
	}
}

func dialTLS(ctx context.Context, addr string, tlsConfig *tls.Config) (net.Conn, error) {
	d := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: dialTimeout},
		Config:    tlsConfig,
	}
	return d.DialContext(ctx, "tcp", addr)
}

// SendCode mails code to email. Without credentials the code is only logged.
func (m *Mailer) SendCode(ctx context.Context, email, code string) error {
	if !m.cfg.Enabled() {
		m.logger.Warn("Mail disabled - verification code not sent")
		m.logger.Info("Verification code (mail disabled)",
			zap.String("email", email),
			zap.String("code", code))
		return nil
	}

	msg := buildMessage(m.cfg.Username, email, code)
	if err := m.send(ctx, email, msg); err != nil {
		return err
	}

	m.logger.Info("Verification mail sent", zap.String("to", email))
	return nil
}

func (m *Mailer) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	conn, err := m.dial(ctx, addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(m.cfg.Username); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	return c.Quit()
}

func buildMessage(from, to, code string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	buf.Write(bytes.ReplaceAll([]byte(fmt.Sprintf(bodyTemplate, code)), []byte("\n"), []byte("\r\n")))
	return buf.Bytes()
}
