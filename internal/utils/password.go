package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// パスワードハッシュのコストファクター
const PasswordHashCost = 10

// HashPassword パスワードをbcryptでハッシュ化（呼び出しごとに新しいソルト）
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword 平文パスワードをハッシュと照合
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsBcryptHash 値が既にbcryptハッシュかどうかを判定する。
// クライアント入力には使わない。登録サービスは入力を無条件にハッシュ化し、
// この判定は信頼できる投入経路（テストのシードなど）でのみ使う
func IsBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}
