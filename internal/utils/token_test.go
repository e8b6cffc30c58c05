package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	pair, err := GenerateResetToken()
	require.NoError(t, err)

	// 生トークンは32バイトの乱数の16進表現（64文字）
	assert.Len(t, pair.Raw, 64)
	_, err = hex.DecodeString(pair.Raw)
	assert.NoError(t, err)

	// 保存用ハッシュは生トークンのSHA-256
	sum := sha256.Sum256([]byte(pair.Raw))
	assert.Equal(t, hex.EncodeToString(sum[:]), pair.Hashed)
	assert.NotEqual(t, pair.Raw, pair.Hashed)
}

func TestGenerateResetTokenUnique(t *testing.T) {
	p1, err := GenerateResetToken()
	require.NoError(t, err)
	p2, err := GenerateResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, p1.Raw, p2.Raw)
}

func TestHashResetToken(t *testing.T) {
	// 同じ入力からは常に同じハッシュが得られる（検索キーとして使うため）
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}

func TestExpiryFromNow(t *testing.T) {
	expiry := ExpiryFromNow(24)
	diff := time.Until(expiry)

	assert.Greater(t, diff, 23*time.Hour)
	assert.LessOrEqual(t, diff, 24*time.Hour)
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(8)
	assert.Len(t, s, 8)
	assert.NotEqual(t, s, GenerateRandomString(8))
}
