package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/middlewares"
	"github.com/dancedrill/dancedrill_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError サービス層のエラーをHTTPレスポンスに変換する。
// バリデーションエラーは全フィールドの違反を details に列挙し、
// 500系は詳細をログにのみ残して汎用メッセージを返す
func respondError(ctx *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "バリデーションエラー",
			"details": verr.Details,
		})
		return
	}

	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Printf("サーバーエラー: %v", err)
		message := "サーバーエラーが発生しました"
		if errors.Is(err, apperrors.ErrMailTransport) {
			message = apperrors.ErrMailTransport.Error()
		}
		ctx.JSON(status, gin.H{"success": false, "error": message})
		return
	}

	ctx.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// sessionUser 認証ミドルウェアがコンテキストに保存したユーザーを取得
func sessionUser(ctx *gin.Context) (*models.SessionUser, bool) {
	value, exists := ctx.Get(middlewares.ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.SessionUser)
	return user, ok
}
