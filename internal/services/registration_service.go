package services

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/models"
	"github.com/dancedrill/dancedrill_backend/internal/repository"
	"github.com/dancedrill/dancedrill_backend/internal/utils"
	"github.com/dancedrill/dancedrill_backend/internal/validation"
)

// RegistrationInput 会員登録の入力値。
// ユーザータイプが学生の場合は保護者確認が必須
type RegistrationInput struct {
	UserType          string `json:"userType" validate:"required,oneof=student advisor alumni staff"`
	LastName          string `json:"lastName" validate:"required"`
	FirstName         string `json:"firstName" validate:"required"`
	LastNameKana      string `json:"lastNameKana" validate:"required"`
	FirstNameKana     string `json:"firstNameKana" validate:"required"`
	LastNameRomaji    string `json:"lastNameRomaji" validate:"required"`
	FirstNameRomaji   string `json:"firstNameRomaji" validate:"required"`
	Gender            string `json:"gender" validate:"required"`
	PostalCode        string `json:"postalCode" validate:"required,min=7,max=8"`
	Address           string `json:"address" validate:"required"`
	Building          string `json:"building"`
	Affiliation       string `json:"affiliation"`
	AffiliationDetail string `json:"affiliationDetail"`
	SchoolName        string `json:"schoolName"`
	BirthDate         string `json:"birthDate" validate:"required"`
	Phone             string `json:"phone" validate:"required,min=10"`
	PhotoURL          string `json:"photoUrl"`
	Email             string `json:"email" validate:"required,email"`
	EmailConfirm      string `json:"emailConfirm" validate:"required,email,eqfield=Email"`
	Password          string `json:"password" validate:"required,min=8"`
	PasswordConfirm   string `json:"passwordConfirm" validate:"required,min=8,eqfield=Password"`
	ReceiveNews       bool   `json:"receiveNews"`
	ParentalConsent   bool   `json:"parentalConsent" validate:"required_if=UserType student"`
}

// RegistrationService 会員登録に関するサービスインターフェース
type RegistrationService interface {
	Register(input *RegistrationInput, sendConfirmation bool) (uint, error)
	CheckEmailExists(email string) (bool, error)
	SendRegistrationInvite(email string) error
}

// registrationService RegistrationServiceの実装
type registrationService struct {
	userRepo repository.UserRepository
	mail     MailService
	cfg      *config.Config
}

// NewRegistrationService RegistrationServiceを作成
func NewRegistrationService(userRepo repository.UserRepository, mail MailService, cfg *config.Config) RegistrationService {
	return &registrationService{
		userRepo: userRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

// Register 入力を検証し、パスワードをハッシュ化して会員を作成する。
// sendConfirmation が true の場合は登録完了メールを送信するが、
// メール送信の失敗で登録は取り消さない（ログに残して握りつぶす）。
// 入力のパスワードは常にハッシュ化する。ハッシュ済みに見える値でも
// クライアント入力をそのまま信用して保存することはしない
func (s *registrationService) Register(input *RegistrationInput, sendConfirmation bool) (uint, error) {
	if verr := validation.Struct(input); verr != nil {
		return 0, verr
	}

	birthDate, err := time.Parse("2006-01-02", input.BirthDate)
	if err != nil {
		return 0, &apperrors.ValidationError{Details: []apperrors.FieldError{
			{Field: "birthDate", Message: "生年月日を入力してください"},
		}}
	}

	// 先に重複を確認して早期にエラーを返す。同時登録の競合は
	// データベースのユニーク制約が最終的に防ぐ
	existing, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, apperrors.ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return 0, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &models.User{
		UserType:          input.UserType,
		LastName:          input.LastName,
		FirstName:         input.FirstName,
		LastNameKana:      input.LastNameKana,
		FirstNameKana:     input.FirstNameKana,
		LastNameRomaji:    input.LastNameRomaji,
		FirstNameRomaji:   input.FirstNameRomaji,
		Gender:            input.Gender,
		PostalCode:        input.PostalCode,
		Address:           input.Address,
		Building:          optional(input.Building),
		Affiliation:       optional(input.Affiliation),
		AffiliationDetail: optional(input.AffiliationDetail),
		SchoolName:        optional(input.SchoolName),
		BirthDate:         birthDate,
		Phone:             input.Phone,
		PhotoURL:          optional(input.PhotoURL),
		Email:             input.Email,
		Password:          hashedPassword,
		ReceiveNews:       input.ReceiveNews,
		ParentalConsent:   input.ParentalConsent,
	}

	if err := s.userRepo.Create(user); err != nil {
		return 0, err
	}

	if sendConfirmation {
		if err := s.mail.SendRegistrationEmail(user.Email, user.FirstName, user.LastName); err != nil {
			// メール送信に失敗してもユーザー登録自体は成功とする
			log.Printf("登録完了メールの送信に失敗しました: %v", err)
		} else {
			log.Printf("登録完了メールを送信しました: %s", user.Email)
		}
	}

	return user.ID, nil
}

// CheckEmailExists メールアドレスが既に登録されているか確認
func (s *registrationService) CheckEmailExists(email string) (bool, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// SendRegistrationInvite 登録案内メールを送信する。
// 登録済みのメールアドレスには送らない
func (s *registrationService) SendRegistrationInvite(email string) error {
	if !validation.IsValidEmail(email) {
		return &apperrors.ValidationError{Details: []apperrors.FieldError{
			{Field: "email", Message: "有効なメールアドレスを入力してください"},
		}}
	}

	exists, err := s.CheckEmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailTaken
	}

	registrationURL := fmt.Sprintf("%s/register?email=%s",
		s.cfg.Server.AppBaseURL, url.QueryEscape(email))

	return s.mail.SendRegistrationInviteEmail(email, registrationURL)
}

// optional 空文字をnilに変換
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
