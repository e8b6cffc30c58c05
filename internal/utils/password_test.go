package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("longpass1")
	require.NoError(t, err)

	// 平文がそのまま保存されることはない
	assert.NotEqual(t, "longpass1", hash)
	assert.True(t, IsBcryptHash(hash))

	// ハッシュは平文に対して検証できる
	assert.True(t, VerifyPassword("longpass1", hash))
	assert.False(t, VerifyPassword("wrongpass", hash))
}

func TestHashPasswordFreshSalt(t *testing.T) {
	// 呼び出しごとに新しいソルトが使われるため、同じ平文でもハッシュは異なる
	h1, err := HashPassword("longpass1")
	require.NoError(t, err)
	h2, err := HashPassword("longpass1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("longpass1", h1))
	assert.True(t, VerifyPassword("longpass1", h2))
}

func TestIsBcryptHash(t *testing.T) {
	assert.False(t, IsBcryptHash("longpass1"))
	assert.False(t, IsBcryptHash(""))
	assert.True(t, IsBcryptHash("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"))
	assert.True(t, IsBcryptHash("$2b$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"))
}
