package controllers

import (
	"net/http"

	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserController 会員情報に関するコントローラー
type UserController struct {
	userService services.UserService
}

// NewUserController UserControllerを作成
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetMe ログイン中の会員情報を取得。パスワードは含まれない
func (c *UserController) GetMe(ctx *gin.Context) {
	su, ok := sessionUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "認証されていません"})
		return
	}

	user, err := c.userService.GetByID(su.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile ログイン中の会員のプロフィールを更新
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	su, ok := sessionUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "認証されていません"})
		return
	}

	var input services.ProfileUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "リクエストの形式が不正です"})
		return
	}

	user, err := c.userService.UpdateProfile(su.ID, &input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
