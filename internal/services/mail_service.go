package services

import (
	"fmt"
	"log"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// MailService トランザクションメールの送信サービスインターフェース
type MailService interface {
	SendRegistrationEmail(to, firstName, lastName string) error
	SendPasswordResetEmail(to, rawToken string) error
	SendRegistrationInviteEmail(to, registrationURL string) error
	VerifyTransport() error
}

// mailService MailServiceの実装（SMTP）
type mailService struct {
	cfg *config.Config
}

// NewMailService MailServiceを作成
func NewMailService(cfg *config.Config) MailService {
	return &mailService{cfg: cfg}
}

func (s *mailService) dialer() *gomail.Dialer {
	return gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)
}

// send メールを組み立てて送信
func (s *mailService) send(to, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Email.FromEmail, s.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.dialer().DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMailTransport, err)
	}
	return nil
}

// VerifyTransport メールサーバーへの接続を確認
func (s *mailService) VerifyTransport() error {
	closer, err := s.dialer().Dial()
	if err != nil {
		log.Printf("メールサーバー接続エラー: %v", err)
		return fmt.Errorf("%w: %v", apperrors.ErrMailTransport, err)
	}
	defer closer.Close()

	log.Println("メールサーバーに接続できました")
	return nil
}

const mailFooter = `
------------------------------
ダンスドリル運営チーム
support@dancedrill.example.com
https://dancedrill.example.com
------------------------------`

// SendRegistrationEmail 登録完了メールを送信
func (s *mailService) SendRegistrationEmail(to, firstName, lastName string) error {
	text := fmt.Sprintf(`%s %s 様

ダンスドリルへのご登録ありがとうございます。

アカウントが正常に作成されました。
登録メールアドレス: %s

以下のURLからログインして、サービスをご利用いただけます。

%s/login

ご不明な点がございましたら、お気軽にお問い合わせください。
%s`, lastName, firstName, to, s.cfg.Server.AppBaseURL, mailFooter)

	html := fmt.Sprintf(`<p>%s %s 様</p>
<p>ダンスドリルへのご登録ありがとうございます。</p>
<p>アカウントが正常に作成されました。<br>
登録メールアドレス: %s</p>
<p><a href="%s/login">ログインする</a></p>
<p>ご不明な点がございましたら、お気軽にお問い合わせください。</p>`,
		lastName, firstName, to, s.cfg.Server.AppBaseURL)

	return s.send(to, "【ダンスドリル】ご登録ありがとうございます", text, html)
}

// SendPasswordResetEmail パスワードリセットメールを送信。
// 生トークンをURLのパスセグメントとして埋め込む
func (s *mailService) SendPasswordResetEmail(to, rawToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.cfg.Server.AppBaseURL, rawToken)

	text := fmt.Sprintf(`パスワードリセットのリクエストを受け付けました。

以下のリンクをクリックして、新しいパスワードを設定してください。
%s

このリンクは24時間有効です。

このリクエストに心当たりがない場合は、このメールを無視してください。
%s`, resetURL, mailFooter)

	html := fmt.Sprintf(`<p>パスワードリセットのリクエストを受け付けました。</p>
<p><a href="%s">パスワードをリセット</a></p>
<p>このリンクは24時間有効です。</p>
<p>このリクエストに心当たりがない場合は、このメールを無視してください。</p>`, resetURL)

	return s.send(to, "【ダンスドリル】パスワードリセットのご案内", text, html)
}

// SendRegistrationInviteEmail 登録案内メールを送信
func (s *mailService) SendRegistrationInviteEmail(to, registrationURL string) error {
	text := fmt.Sprintf(`ダンスドリルへの登録案内をお送りします。

以下のURLから会員登録を行ってください。
%s

ご不明な点がございましたら、お気軽にお問い合わせください。
%s`, registrationURL, mailFooter)

	html := fmt.Sprintf(`<p>ダンスドリルへの登録案内をお送りします。</p>
<p><a href="%s">会員登録へ進む</a></p>
<p>ご不明な点がございましたら、お気軽にお問い合わせください。</p>`, registrationURL)

	return s.send(to, "【ダンスドリル】会員登録のご案内", text, html)
}
