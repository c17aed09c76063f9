package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/client"
	"github.com/mmeshcher/linkedin-collector/internal/form"
	"github.com/mmeshcher/linkedin-collector/internal/login"
	"github.com/mmeshcher/linkedin-collector/internal/ui"
	"github.com/mmeshcher/linkedin-collector/internal/ui/uitest"
)

func text(t *testing.T, p *ui.Page, id string) string {
	t.Helper()
	e, ok := p.Lookup(id)
	require.True(t, ok, "element %s", id)
	return e.Text()
}

func TestLoginAndSubmitFlow(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	ctx := context.Background()
	rt := uitest.NewRuntime()

	api, err := client.New(env.server.URL, zap.NewNop())
	require.NoError(t, err)

	loginPage := ui.NewPage(rt)
	login.Layout(loginPage)
	var navigated []string
	lc := login.New(ctx, loginPage, rt, api, func(path string) { navigated = append(navigated, path) })
	defer lc.Close()

	lc.InputEmail("lead@example.com")
	lc.SendCode()
	assert.Equal(t, "验证码已发送，请查收邮件", text(t, loginPage, login.EmailMessageID))

	rt.Advance(time.Second)
	require.Equal(t, login.StepCodeEntry, lc.Step())

	code := env.sender.code("lead@example.com")
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	lc.InputCode(wrong)
	lc.Verify()
	assert.Equal(t, "验证码错误", text(t, loginPage, login.CodeMessageID))

	lc.InputCode(code)
	lc.Verify()
	assert.Equal(t, "登录成功", text(t, loginPage, login.CodeMessageID))

	rt.Advance(time.Second)
	require.Equal(t, []string{client.PathForm}, navigated)

	formPage := ui.NewPage(rt)
	form.Layout(formPage)
	fc := form.New(ctx, formPage, rt, api, func(string) bool { return true })
	defer fc.Close()

	require.NoError(t, fc.SelectCount(2))
	fc.Input(1, "https://www.linkedin.com/in/alice")
	fc.Input(2, "linkedin.com/in/bob/")
	assert.Equal(t, 2, fc.ValidCount())

	fc.Submit()
	assert.Equal(t, "成功提交 2 个LinkedIn链接", text(t, formPage, form.FormMessageID))

	stored := env.repo.Submissions()
	require.Len(t, stored, 2)
	assert.Equal(t, "https://www.linkedin.com/in/alice", stored[0].LinkedInURL)
	assert.Equal(t, "https://linkedin.com/in/bob/", stored[1].LinkedInURL)
	assert.Equal(t, "lead@example.com", stored[0].Email)

	rt.Advance(2 * time.Second)
	assert.Equal(t, 2, fc.Count())
	assert.Equal(t, form.FieldEmpty, fc.State(1))
}

func TestFormFlow_RequiresLogin(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	rt := uitest.NewRuntime()

	api, err := client.New(env.server.URL, zap.NewNop())
	require.NoError(t, err)

	page := ui.NewPage(rt)
	form.Layout(page)
	fc := form.New(context.Background(), page, rt, api, nil)
	defer fc.Close()

	fc.Input(1, "linkedin.com/in/bob")
	fc.Submit()

	assert.Equal(t, "请先登录", text(t, page, form.FormMessageID))
	assert.Empty(t, env.repo.Submissions())
}
