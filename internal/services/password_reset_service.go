package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/repository"
	"github.com/dancedrill/dancedrill_backend/internal/utils"
)

// リセットトークンの有効期間（時間）
const resetTokenExpiryHours = 24

// PasswordResetService パスワードリセットに関するサービスインターフェース
type PasswordResetService interface {
	Request(email string) error
	Confirm(rawToken, newPassword string) error
}

// passwordResetService PasswordResetServiceの実装
type passwordResetService struct {
	userRepo repository.UserRepository
	mail     MailService
}

// NewPasswordResetService PasswordResetServiceを作成
func NewPasswordResetService(userRepo repository.UserRepository, mail MailService) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		mail:     mail,
	}
}

// Request リセットトークンを発行し、リセットメールを送信する。
// ユーザーが存在しない場合もエラーを返さない。攻撃者がメールアドレスの
// 存在を確認できないようにするためで、その場合トークン生成もメール送信も行わない
func (s *passwordResetService) Request(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("パスワードリセット: 未登録のメールアドレス（成功として扱う）")
		return nil
	}

	pair, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	expiry := utils.ExpiryFromNow(resetTokenExpiryHours)
	if err := s.userRepo.SetResetToken(user.ID, pair.Hashed, expiry); err != nil {
		return err
	}

	// リセットメールの失敗は登録メールと違ってユーザーに伝える。
	// メールが届かなければリセットは完了できない
	if err := s.mail.SendPasswordResetEmail(user.Email, pair.Raw); err != nil {
		return err
	}

	log.Printf("パスワードリセットメールを送信しました: ユーザーID %d", user.ID)
	return nil
}

// Confirm 生トークンを検証して新しいパスワードを設定する。
// トークンはSHA-256ハッシュで照合し、有効期限が現在時刻より厳密に
// 後の場合のみ有効。パスワード更新とトークンのクリアは単一のUPDATEで
// 行うため、同じトークンを二度使うことはできない
func (s *passwordResetService) Confirm(rawToken, newPassword string) error {
	hashed := utils.HashResetToken(rawToken)

	user, err := s.userRepo.FindByResetToken(hashed, time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrInvalidToken
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	if err := s.userRepo.UpdatePasswordAndClearToken(user.ID, hashedPassword); err != nil {
		return err
	}

	log.Printf("パスワードをリセットしました: ユーザーID %d", user.ID)
	return nil
}
