package services

import (
	"errors"
	"time"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/models"
	"github.com/dancedrill/dancedrill_backend/internal/repository"
	"github.com/dancedrill/dancedrill_backend/internal/utils"

	"github.com/dgrijalva/jwt-go"
)

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	Authenticate(email, password string) (*models.SessionUser, error)
	IssueSessionToken(user models.SessionUser) (string, error)
	ParseSessionToken(tokenString string) (*models.SessionUser, error)
}

// authService AuthServiceの実装
type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// SessionClaims セッションCookieのペイロード。
// Cookieの値は平文JSONではなく、HMAC署名付きトークンとして保存する
type SessionClaims struct {
	UserID    uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType"`
	jwt.StandardClaims
}

// Authenticate メールアドレスとパスワードで認証。
// ユーザー不在とパスワード不一致は区別できない同一のエラーを返す
func (s *authService) Authenticate(email, password string) (*models.SessionUser, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	su := user.ToSessionUser()
	return &su, nil
}

// IssueSessionToken 署名付きセッショントークンを発行
func (s *authService) IssueSessionToken(user models.SessionUser) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserType:  user.UserType,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.cfg.Auth.SessionExpiry).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.SessionSecret))
}

// ParseSessionToken セッショントークンを検証してユーザー情報を取り出す
func (s *authService) ParseSessionToken(tokenString string) (*models.SessionUser, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("予期しない署名方式です")
		}
		return []byte(s.cfg.Auth.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("無効なセッションです")
	}

	return &models.SessionUser{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		UserType:  claims.UserType,
	}, nil
}
