package controllers

import (
	"net/http"

	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PostalController 郵便番号検索コントローラー
type PostalController struct {
	postalService services.PostalService
}

// NewPostalController PostalControllerを作成
func NewPostalController(postalService services.PostalService) *PostalController {
	return &PostalController{postalService: postalService}
}

// Lookup 郵便番号から住所を検索
func (c *PostalController) Lookup(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "郵便番号が指定されていません"})
		return
	}

	address, err := c.postalService.Lookup(code)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if address == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "住所が見つかりません"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "address": address})
}
