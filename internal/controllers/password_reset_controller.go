package controllers

import (
	"net/http"

	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PasswordResetController パスワードリセットに関するコントローラー
type PasswordResetController struct {
	resetService services.PasswordResetService
	mailService  services.MailService
}

// NewPasswordResetController PasswordResetControllerを作成
func NewPasswordResetController(resetService services.PasswordResetService, mailService services.MailService) *PasswordResetController {
	return &PasswordResetController{
		resetService: resetService,
		mailService:  mailService,
	}
}

// ResetRequestBody リセット要求リクエスト
type ResetRequestBody struct {
	Email string `json:"email"`
}

// Request パスワードリセットメールの送信を要求する。
// 未登録のメールアドレスでも成功レスポンスを返す（存在の探索を防ぐ）
func (c *PasswordResetController) Request(ctx *gin.Context) {
	var req ResetRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "メールアドレスが必要です"})
		return
	}

	// メールが送れない状態ではリセットを完了できないため、先に疎通を確認する
	if err := c.mailService.VerifyTransport(); err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.resetService.Request(req.Email); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "パスワードリセットメールを送信しました"})
}

// ResetConfirmBody リセット確定リクエスト
type ResetConfirmBody struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Confirm トークンを検証して新しいパスワードを設定する
func (c *PasswordResetController) Confirm(ctx *gin.Context) {
	var req ResetConfirmBody
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Token == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "トークンとパスワードが必要です"})
		return
	}

	if len(req.Password) < 8 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "パスワードは8文字以上で入力してください"})
		return
	}

	if err := c.resetService.Confirm(req.Token, req.Password); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "パスワードが正常にリセットされました"})
}
