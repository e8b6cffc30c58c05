package controllers

import (
	"log"
	"net/http"

	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RegistrationController 会員登録に関するコントローラー
type RegistrationController struct {
	registrationService services.RegistrationService
	mailService         services.MailService
}

// NewRegistrationController RegistrationControllerを作成
func NewRegistrationController(registrationService services.RegistrationService, mailService services.MailService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		mailService:         mailService,
	}
}

// Register 会員登録（確認メールなし）
func (c *RegistrationController) Register(ctx *gin.Context) {
	c.register(ctx, false)
}

// RegisterUser 会員登録（確認メールあり）
func (c *RegistrationController) RegisterUser(ctx *gin.Context) {
	// 事前にメールサーバーの疎通を確認する。失敗しても登録は継続し、
	// 確認メールが送れない可能性をログに残すだけにする
	if err := c.mailService.VerifyTransport(); err != nil {
		log.Printf("メールサーバー疎通確認に失敗: %v", err)
	}
	c.register(ctx, true)
}

func (c *RegistrationController) register(ctx *gin.Context, sendConfirmation bool) {
	var input services.RegistrationInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "リクエストの形式が不正です"})
		return
	}

	userID, err := c.registrationService.Register(&input, sendConfirmation)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "ユーザーが正常に登録されました",
		"userId":  userID,
	})
}

// CheckEmailRequest メールアドレス重複チェックリクエスト
type CheckEmailRequest struct {
	Email string `json:"email"`
}

// CheckEmail メールアドレスの重複をチェック
func (c *RegistrationController) CheckEmail(ctx *gin.Context) {
	var req CheckEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "メールアドレスが指定されていません"})
		return
	}

	exists, err := c.registrationService.CheckEmailExists(req.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	message := "利用可能なメールアドレスです"
	if exists {
		message = "このメールアドレスは既に登録されています"
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"exists":  exists,
		"message": message,
	})
}

// SendRegistrationEmail 登録案内メールを送信
func (c *RegistrationController) SendRegistrationEmail(ctx *gin.Context) {
	var req CheckEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "メールアドレスが必要です"})
		return
	}

	if err := c.registrationService.SendRegistrationInvite(req.Email); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "登録案内メールを送信しました"})
}
