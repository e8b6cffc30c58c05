package routes

import (
	"log"
	"net/http"

	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/controllers"
	"github.com/dancedrill/dancedrill_backend/internal/middlewares"
	"github.com/dancedrill/dancedrill_backend/internal/repository"
	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// ミドルウェアを設定
	r.Use(middlewares.RecoveryMiddleware())
	r.Use(middlewares.CORSMiddleware())

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)

	// サービスを作成
	mailService := services.NewMailService(cfg)
	authService := services.NewAuthService(userRepo, cfg)
	registrationService := services.NewRegistrationService(userRepo, mailService, cfg)
	resetService := services.NewPasswordResetService(userRepo, mailService)
	userService := services.NewUserService(userRepo)
	postalService := services.NewPostalService(cfg)

	photoService, err := services.NewPhotoService(cfg)
	if err != nil {
		log.Fatalf("写真ストレージの初期化に失敗しました: %v", err)
	}

	// コントローラーを作成
	authController := controllers.NewAuthController(authService, cfg)
	registrationController := controllers.NewRegistrationController(registrationService, mailService)
	resetController := controllers.NewPasswordResetController(resetService, mailService)
	userController := controllers.NewUserController(userService)
	uploadController := controllers.NewUploadController(photoService, cfg)
	postalController := controllers.NewPostalController(postalService)
	healthController := controllers.NewHealthController()

	// 認証ミドルウェア
	requireSession := middlewares.RequireSession(authService)
	routeGuard := middlewares.RouteGuard(authService)

	// ページルート（ゲートミドルウェアでリダイレクト制御）
	r.GET("/", routeGuard, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ダンスドリル会員ポータル")
	})
	r.GET("/dashboard", routeGuard, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ダッシュボード")
	})
	r.GET("/dashboard/*page", routeGuard, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ダッシュボード")
	})

	// アップロードされた写真の配信（ローカルストレージの場合）
	if cfg.Storage.Type == "local" {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	}

	// APIグループを作成
	api := r.Group("/api")
	{
		// ヘルスチェックルート（認証不要）
		api.GET("/health", healthController.Check)

		// 認証ルート
		api.POST("/login", authController.Login)
		api.POST("/logout", authController.Logout)

		// 会員登録ルート
		api.POST("/register", registrationController.Register)
		api.POST("/register-user", registrationController.RegisterUser)
		api.POST("/check-email", registrationController.CheckEmail)
		api.POST("/send-registration-email", registrationController.SendRegistrationEmail)

		// パスワードリセットルート
		api.POST("/reset-password", resetController.Request)
		api.POST("/reset-password/confirm", resetController.Confirm)

		// 会員情報ルート（認証が必要）
		api.GET("/user", requireSession, userController.GetMe)
		api.PUT("/user/update", requireSession, userController.UpdateProfile)

		// 写真アップロード
		api.POST("/upload-photo", uploadController.UploadPhoto)

		// 郵便番号検索
		api.GET("/postal/:code", postalController.Lookup)
	}

	return r
}
