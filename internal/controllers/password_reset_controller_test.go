package controllers

import (
	"net/http"
	"testing"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetPasswordUnknownEmailLooksSuccessful(t *testing.T) {
	env := setupEnv(t)

	// 未登録のメールアドレスでも成功レスポンスが返る
	w := env.request(t, http.MethodPost, "/api/reset-password", map[string]interface{}{
		"email": "unknown@x.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])

	// 内部ではメールもトークンも作られていない
	assert.Empty(t, env.mail.ResetEmails)
}

func TestResetPasswordFullFlow(t *testing.T) {
	env := setupEnv(t)

	w := env.request(t, http.MethodPost, "/api/register", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// リセット要求
	w = env.request(t, http.MethodPost, "/api/reset-password", map[string]interface{}{
		"email": "a@x.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.mail.ResetEmails, 1)

	raw := env.mail.ResetEmails[0].RawToken

	// トークンで新しいパスワードを設定
	w = env.request(t, http.MethodPost, "/api/reset-password/confirm", map[string]interface{}{
		"token":    raw,
		"password": "newlongpass1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 新しいパスワードでログインできる
	w = env.request(t, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "newlongpass1",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 古いパスワードは使えない
	w = env.request(t, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "longpass1",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 同じトークンの再利用は拒否される
	w = env.request(t, http.MethodPost, "/api/reset-password/confirm", map[string]interface{}{
		"token":    raw,
		"password": "anotherpass1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordConfirmWeakPassword(t *testing.T) {
	env := setupEnv(t)

	w := env.request(t, http.MethodPost, "/api/reset-password/confirm", map[string]interface{}{
		"token":    "sometoken",
		"password": "short",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, "パスワードは8文字以上で入力してください", body["error"])
}

func TestResetPasswordMissingEmail(t *testing.T) {
	env := setupEnv(t)

	w := env.request(t, http.MethodPost, "/api/reset-password", map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordSMTPUnreachable(t *testing.T) {
	env := setupEnv(t)
	env.mail.VerifyErr = apperrors.ErrMailTransport

	w := env.request(t, http.MethodPost, "/api/reset-password", map[string]interface{}{
		"email": "a@x.com",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
