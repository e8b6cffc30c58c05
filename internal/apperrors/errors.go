package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// サービス層が返すエラーの分類。コントローラーはこの分類だけを見て
// HTTPステータスコードに変換する。
var (
	// ErrValidation 入力値の検証に失敗した
	ErrValidation = errors.New("バリデーションエラー")

	// ErrEmailTaken メールアドレスが既に登録されている
	ErrEmailTaken = errors.New("このメールアドレスは既に登録されています")

	// ErrInvalidCredentials 認証失敗。メールアドレスの存在を明かさないよう、
	// ユーザー不在とパスワード不一致で同一のメッセージを使う
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")

	// ErrNotFound 対象のレコードが存在しない
	ErrNotFound = errors.New("ユーザーが見つかりません")

	// ErrInvalidToken リセットトークンが無効または期限切れ
	ErrInvalidToken = errors.New("トークンが無効または期限切れです")

	// ErrMailTransport メールサーバーに接続・送信できない
	ErrMailTransport = errors.New("メールサーバーに接続できません")

	// ErrDatabase データベース操作に失敗した。詳細はサーバーログのみに残す
	ErrDatabase = errors.New("データベースエラーが発生しました")
)

// FieldError フィールド単位のバリデーションエラー
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 全フィールドの違反を列挙するエラー。
// 最初の違反だけでなく、すべての違反を一度に返す。
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("バリデーションエラー (%d件)", len(e.Details))
}

// Unwrap errors.Is(err, ErrValidation) で判定できるようにする
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StatusCode エラーをHTTPステータスコードに変換
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrEmailTaken), errors.Is(err, ErrInvalidToken):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
