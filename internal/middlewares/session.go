package middlewares

import (
	"net/http"
	"net/url"

	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionCookieName セッションCookieの名前
const SessionCookieName = "user_session"

// セッションCookieの有効期間（秒）
const sessionCookieMaxAge = 24 * 60 * 60

// コンテキストに保存するセッションユーザーのキー
const ContextUserKey = "sessionUser"

// SetSessionCookie セッションCookieを設定。
// httpOnly、本番環境ではsecure、パスは "/"、有効期間24時間
func SetSessionCookie(ctx *gin.Context, cfg *config.Config, token string) {
	ctx.SetCookie(SessionCookieName, token, sessionCookieMaxAge, "/", "", cfg.IsProduction(), true)
}

// ClearSessionCookie セッションCookieを削除
func ClearSessionCookie(ctx *gin.Context, cfg *config.Config) {
	ctx.SetCookie(SessionCookieName, "", -1, "/", "", cfg.IsProduction(), true)
}

// RequireSession セッション認証ミドルウェア。
// 有効なセッションCookieがなければ401を返す
func RequireSession(authService services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "認証されていません"})
			ctx.Abort()
			return
		}

		user, err := authService.ParseSessionToken(token)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "無効なセッションです"})
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// RouteGuard ページ遷移のゲートミドルウェア。
// ログイン済みユーザーがトップページにアクセスした場合はダッシュボードへ、
// 未ログインで /dashboard 以下にアクセスした場合は元のパスを redirect
// クエリに載せてトップページへリダイレクトする
func RouteGuard(authService services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path

		authenticated := false
		if token, err := ctx.Cookie(SessionCookieName); err == nil && token != "" {
			if _, err := authService.ParseSessionToken(token); err == nil {
				authenticated = true
			}
		}

		if path == "/" && authenticated {
			ctx.Redirect(http.StatusFound, "/dashboard")
			ctx.Abort()
			return
		}

		if len(path) >= len("/dashboard") && path[:len("/dashboard")] == "/dashboard" && !authenticated {
			query := url.Values{"redirect": {path}}
			ctx.Redirect(http.StatusFound, "/?"+query.Encode())
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
