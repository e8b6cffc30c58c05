package services

import (
	"time"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/models"
	"github.com/dancedrill/dancedrill_backend/internal/repository"
)

// ProfileUpdateInput プロフィール更新の入力値
type ProfileUpdateInput struct {
	LastName        string `json:"lastName"`
	FirstName       string `json:"firstName"`
	LastNameKana    string `json:"lastNameKana"`
	FirstNameKana   string `json:"firstNameKana"`
	LastNameRomaji  string `json:"lastNameRomaji"`
	FirstNameRomaji string `json:"firstNameRomaji"`
	Gender          string `json:"gender"`
	PostalCode      string `json:"postalCode"`
	Address         string `json:"address"`
	Building        string `json:"building"`
	BirthDate       string `json:"birthDate"`
	Phone           string `json:"phone"`
	PhotoURL        string `json:"photoUrl"`
	ReceiveNews     bool   `json:"receiveNews"`
}

// UserService 会員情報に関するサービスインターフェース
type UserService interface {
	GetByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, input *ProfileUpdateInput) (*models.User, error)
}

// userService UserServiceの実装
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService UserServiceを作成
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetByID IDで会員を取得。パスワードは含まれない
func (s *userService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// UpdateProfile プロフィールを更新する。
// メールアドレス・パスワード・ユーザータイプはここでは変更できない
func (s *userService) UpdateProfile(userID uint, input *ProfileUpdateInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	user.LastName = input.LastName
	user.FirstName = input.FirstName
	user.LastNameKana = input.LastNameKana
	user.FirstNameKana = input.FirstNameKana
	user.LastNameRomaji = input.LastNameRomaji
	user.FirstNameRomaji = input.FirstNameRomaji
	user.Gender = input.Gender
	user.PostalCode = input.PostalCode
	user.Address = input.Address
	user.Building = optional(input.Building)
	user.Phone = input.Phone
	user.PhotoURL = optional(input.PhotoURL)
	user.ReceiveNews = input.ReceiveNews

	if input.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			return nil, &apperrors.ValidationError{Details: []apperrors.FieldError{
				{Field: "birthDate", Message: "生年月日を入力してください"},
			}}
		}
		user.BirthDate = birthDate
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
