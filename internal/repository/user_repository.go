package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// UserRepository 会員テーブルに対するデータベース操作を行うインターフェース
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindByResetToken(hashedToken string, now time.Time) (*models.User, error)
	Update(user *models.User) error
	SetResetToken(id uint, hashedToken string, expiry time.Time) error
	UpdatePasswordAndClearToken(id uint, hashedPassword string) error
}

// userRepository UserRepositoryの実装
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository UserRepositoryを作成
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// mysqlDuplicateEntry MySQLのユニーク制約違反エラーコード
const mysqlDuplicateEntry = 1062

// Create 新しい会員を作成。メールアドレスのユニーク制約違反は ErrEmailTaken を返す。
// 同時登録の競合はこの制約だけで防ぐ（同一メールの同時登録は片方だけが成功する）
func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("%w: %v", apperrors.ErrDatabase, err)
	}
	return nil
}

// FindByEmail メールアドレスで会員を検索。見つからない場合は (nil, nil)
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabase, err)
	}
	return &user, nil
}

// FindByID IDで会員を検索。パスワードは結果に含めない。見つからない場合は (nil, nil)
func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Omit("password").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabase, err)
	}
	return &user, nil
}

// FindByResetToken ハッシュ化済みトークンが一致し、有効期限が now より
// 厳密に後の会員を検索。見つからない場合は (nil, nil)。
// 期限切れトークンの掃除は行わず、この比較だけで無効化する
func (r *userRepository) FindByResetToken(hashedToken string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("reset_token = ? AND reset_token_expiry > ?", hashedToken, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabase, err)
	}
	return &user, nil
}

// Update 会員のプロフィール項目を更新する。
// パスワード・リセットトークン・メールアドレスはこのメソッドでは変更しない。
// FindByID の結果はパスワードを持たないため、ここで書き戻さないことが重要
func (r *userRepository) Update(user *models.User) error {
	err := r.db.
		Omit("password", "reset_token", "reset_token_expiry", "email", "created_at").
		Save(user).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDatabase, err)
	}
	return nil
}

// SetResetToken リセットトークンのハッシュと有効期限を保存
func (r *userRepository) SetResetToken(id uint, hashedToken string, expiry time.Time) error {
	err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token":        hashedToken,
		"reset_token_expiry": expiry,
	}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDatabase, err)
	}
	return nil
}

// UpdatePasswordAndClearToken パスワードを更新し、同じUPDATEでトークンを
// クリアする。トークンは一度使われたら再利用できない
func (r *userRepository) UpdatePasswordAndClearToken(id uint, hashedPassword string) error {
	err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":           hashedPassword,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDatabase, err)
	}
	return nil
}
