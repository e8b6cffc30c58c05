package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController ヘルスチェックコントローラー
type HealthController struct{}

// NewHealthController HealthControllerを作成
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Check ヘルスチェック
func (c *HealthController) Check(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}
