package controllers

import (
	"net/http"

	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/middlewares"
	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthController 認証に関するコントローラー
type AuthController struct {
	authService services.AuthService
	cfg         *config.Config
}

// NewAuthController AuthControllerを作成
func NewAuthController(authService services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login ログイン。認証に成功したらセッションCookieを設定する
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "メールアドレスとパスワードが必要です"})
		return
	}

	user, err := c.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := c.authService.IssueSessionToken(*user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	middlewares.SetSessionCookie(ctx, c.cfg, token)
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ログインに成功しました",
		"user":    user,
	})
}

// Logout ログアウト。セッションCookieを削除する
func (c *AuthController) Logout(ctx *gin.Context) {
	middlewares.ClearSessionCookie(ctx, c.cfg)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "ログアウトしました"})
}
