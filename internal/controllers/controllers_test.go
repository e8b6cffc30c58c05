package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/middlewares"
	"github.com/dancedrill/dancedrill_backend/internal/mock"
	"github.com/dancedrill/dancedrill_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testEnv コントローラーテスト用の環境一式
type testEnv struct {
	router *gin.Engine
	repo   *mock.UserRepository
	mail   *mock.MailService
	photo  *mock.PhotoService
	cfg    *config.Config
}

// setupEnv インメモリのリポジトリとメール記録でルーターを組み立てる
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	require.NoError(t, err)

	repo := mock.NewUserRepository()
	mail := mock.NewMailService()
	photo := mock.NewPhotoService()

	authService := services.NewAuthService(repo, cfg)
	registrationService := services.NewRegistrationService(repo, mail, cfg)
	resetService := services.NewPasswordResetService(repo, mail)
	userService := services.NewUserService(repo)

	authController := NewAuthController(authService, cfg)
	registrationController := NewRegistrationController(registrationService, mail)
	resetController := NewPasswordResetController(resetService, mail)
	userController := NewUserController(userService)
	uploadController := NewUploadController(photo, cfg)

	requireSession := middlewares.RequireSession(authService)

	r := gin.New()
	r.Use(middlewares.RecoveryMiddleware())
	api := r.Group("/api")
	{
		api.POST("/login", authController.Login)
		api.POST("/logout", authController.Logout)
		api.POST("/register", registrationController.Register)
		api.POST("/register-user", registrationController.RegisterUser)
		api.POST("/check-email", registrationController.CheckEmail)
		api.POST("/send-registration-email", registrationController.SendRegistrationEmail)
		api.POST("/reset-password", resetController.Request)
		api.POST("/reset-password/confirm", resetController.Confirm)
		api.GET("/user", requireSession, userController.GetMe)
		api.PUT("/user/update", requireSession, userController.UpdateProfile)
		api.POST("/upload-photo", uploadController.UploadPhoto)
	}

	return &testEnv{router: r, repo: repo, mail: mail, photo: photo, cfg: cfg}
}

// request JSONリクエストを送信してレスポンスを返す
func (e *testEnv) request(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// parseBody レスポンスボディをJSONとして読み取る
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registrationBody 有効な登録リクエストのボディ
func registrationBody() map[string]interface{} {
	return map[string]interface{}{
		"userType":        "student",
		"lastName":        "山田",
		"firstName":       "花子",
		"lastNameKana":    "ヤマダ",
		"firstNameKana":   "ハナコ",
		"lastNameRomaji":  "Yamada",
		"firstNameRomaji": "Hanako",
		"gender":          "female",
		"postalCode":      "1234567",
		"address":         "東京都新宿区1-2-3",
		"birthDate":       "2008-04-01",
		"phone":           "09012345678",
		"email":           "a@x.com",
		"emailConfirm":    "a@x.com",
		"password":        "longpass1",
		"passwordConfirm": "longpass1",
		"parentalConsent": true,
	}
}

// registerAndLogin 会員を登録してセッションCookieを取得する
func (e *testEnv) registerAndLogin(t *testing.T) *http.Cookie {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/register", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.request(t, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "longpass1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.SessionCookieName {
			return c
		}
	}
	t.Fatal("セッションCookieが設定されていません")
	return nil
}
