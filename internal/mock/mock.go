// Package mock はテスト用のインメモリ実装を提供する。
// 実際のデータベースやSMTPサーバーなしでサービス層を検証するために使う
package mock

import (
	"mime/multipart"
	"time"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/models"
)

// UserRepository repository.UserRepository のインメモリ実装
type UserRepository struct {
	seq   uint
	users map[uint]*models.User

	// Err を設定すると全操作がこのエラーを返す
	Err error
}

// NewUserRepository インメモリリポジトリを作成
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uint]*models.User)}
}

// Create 会員を作成。メールアドレスが重複していれば ErrEmailTaken
func (r *UserRepository) Create(user *models.User) error {
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	r.seq++
	user.ID = r.seq
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// FindByEmail メールアドレスで検索。見つからなければ (nil, nil)
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

// FindByID IDで検索。パスワードは結果に含めない
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	clone.Password = ""
	return &clone, nil
}

// FindByResetToken トークンハッシュと有効期限で検索
func (r *UserRepository) FindByResetToken(hashedToken string, now time.Time) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == hashedToken &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

// Update プロフィール項目を更新。パスワードとトークン列は変更しない
func (r *UserRepository) Update(user *models.User) error {
	if r.Err != nil {
		return r.Err
	}
	stored, ok := r.users[user.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	clone := *user
	clone.Email = stored.Email
	clone.Password = stored.Password
	clone.ResetToken = stored.ResetToken
	clone.ResetTokenExpiry = stored.ResetTokenExpiry
	clone.CreatedAt = stored.CreatedAt
	clone.UpdatedAt = time.Now()
	r.users[user.ID] = &clone
	return nil
}

// SetResetToken リセットトークンを保存
func (r *UserRepository) SetResetToken(id uint, hashedToken string, expiry time.Time) error {
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.ResetToken = &hashedToken
	u.ResetTokenExpiry = &expiry
	return nil
}

// UpdatePasswordAndClearToken パスワード更新とトークンのクリアを一括で行う
func (r *UserRepository) UpdatePasswordAndClearToken(id uint, hashedPassword string) error {
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = hashedPassword
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

// Get テスト検証用に保存中のレコードを直接参照する
func (r *UserRepository) Get(id uint) *models.User {
	return r.users[id]
}

// MailService services.MailService の記録実装。送信内容を保持する
type MailService struct {
	RegistrationEmails []string // 宛先
	ResetEmails        []ResetMail
	InviteEmails       []InviteMail

	SendErr   error // 設定すると送信が失敗する
	VerifyErr error // 設定すると疎通確認が失敗する
}

// ResetMail 記録されたリセットメール
type ResetMail struct {
	To       string
	RawToken string
}

// InviteMail 記録された登録案内メール
type InviteMail struct {
	To              string
	RegistrationURL string
}

// NewMailService 記録用MailServiceを作成
func NewMailService() *MailService {
	return &MailService{}
}

// SendRegistrationEmail 登録完了メールの送信を記録
func (m *MailService) SendRegistrationEmail(to, firstName, lastName string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.RegistrationEmails = append(m.RegistrationEmails, to)
	return nil
}

// SendPasswordResetEmail リセットメールの送信を記録
func (m *MailService) SendPasswordResetEmail(to, rawToken string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.ResetEmails = append(m.ResetEmails, ResetMail{To: to, RawToken: rawToken})
	return nil
}

// SendRegistrationInviteEmail 登録案内メールの送信を記録
func (m *MailService) SendRegistrationInviteEmail(to, registrationURL string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.InviteEmails = append(m.InviteEmails, InviteMail{To: to, RegistrationURL: registrationURL})
	return nil
}

// VerifyTransport 疎通確認
func (m *MailService) VerifyTransport() error {
	return m.VerifyErr
}

// PhotoService services.PhotoService の記録実装
type PhotoService struct {
	Uploaded []string // アップロードされたファイル名
	URL      string   // Uploadが返すURL
	Err      error
}

// NewPhotoService 記録用PhotoServiceを作成
func NewPhotoService() *PhotoService {
	return &PhotoService{URL: "/uploads/test.png"}
}

// Upload アップロードを記録してURLを返す
func (p *PhotoService) Upload(file multipart.File, originalName string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	p.Uploaded = append(p.Uploaded, originalName)
	return p.URL, nil
}
