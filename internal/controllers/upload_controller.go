package controllers

import (
	"net/http"
	"strings"

	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UploadController プロフィール写真のアップロードに関するコントローラー
type UploadController struct {
	photoService services.PhotoService
	cfg          *config.Config
}

// NewUploadController UploadControllerを作成
func NewUploadController(photoService services.PhotoService, cfg *config.Config) *UploadController {
	return &UploadController{
		photoService: photoService,
		cfg:          cfg,
	}
}

// UploadPhoto 写真をアップロードしてURLを返す。
// 画像ファイルのみ、サイズは設定の上限（既定5MB）まで
func (c *UploadController) UploadPhoto(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ファイルが見つかりません"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "画像ファイルのみアップロードできます"})
		return
	}

	if header.Size > c.cfg.Storage.MaxUploadSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ファイルサイズは5MB以下にしてください"})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.photoService.Upload(file, header.Filename)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
