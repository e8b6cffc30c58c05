package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenPair パスワードリセットトークンの組。
// Raw はメールでユーザーに送り、Hashed だけをデータベースに保存する。
// データベースが漏洩しても有効なトークンは得られない
type ResetTokenPair struct {
	Raw    string
	Hashed string
}

// GenerateResetToken 32バイトの暗号論的乱数からリセットトークンを生成
func GenerateResetToken() (*ResetTokenPair, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("トークンの生成に失敗しました: %w", err)
	}

	raw := hex.EncodeToString(buf)
	return &ResetTokenPair{
		Raw:    raw,
		Hashed: HashResetToken(raw),
	}, nil
}

// HashResetToken 生トークンのSHA-256ハッシュを16進文字列で返す
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ExpiryFromNow 現在時刻から指定時間後の有効期限を返す
func ExpiryFromNow(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour)
}

// GenerateRandomString ランダムな16進文字列を生成（アップロードファイル名用）
func GenerateRandomString(length int) string {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// 乱数が取れない場合は時間ベースのフォールバック
		now := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte((now >> (i * 8)) & 0xff)
		}
	}
	return hex.EncodeToString(buf)[:length]
}
