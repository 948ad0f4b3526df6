package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-blog-api/internal/model"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", 30*time.Minute, 7*24*time.Hour)

	pair, err := codec.IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.Equal(t, int64(1800), pair.ExpiresIn)

	accessClaims, err := codec.Decode(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, int64(42), accessClaims.UserID)
	require.Equal(t, TokenTypeAccess, accessClaims.TokenType)

	refreshClaims, err := codec.Decode(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	require.Equal(t, int64(42), refreshClaims.UserID)
	require.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestCodecConsecutivePairsDiffer(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", 30*time.Minute, 7*24*time.Hour)

	first, err := codec.IssuePair(7)
	require.NoError(t, err)
	second, err := codec.IssuePair(7)
	require.NoError(t, err)

	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.NotEqual(t, first.AccessToken, second.AccessToken)
}

func TestCodecExpiry(t *testing.T) {
	t.Parallel()

	t.Run("expired token is rejected", func(t *testing.T) {
		codec := NewCodec("test-secret", -time.Second, -time.Second)

		pair, err := codec.IssuePair(1)
		require.NoError(t, err)

		_, err = codec.Decode(pair.AccessToken, TokenTypeAccess)
		require.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("token expiring in an hour decodes", func(t *testing.T) {
		codec := NewCodec("test-secret", time.Hour, time.Hour)

		pair, err := codec.IssuePair(1)
		require.NoError(t, err)

		_, err = codec.Decode(pair.AccessToken, TokenTypeAccess)
		require.NoError(t, err)
	})
}

func TestCodecKindDiscrimination(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", 30*time.Minute, 7*24*time.Hour)

	pair, err := codec.IssuePair(3)
	require.NoError(t, err)

	_, err = codec.Decode(pair.AccessToken, TokenTypeRefresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	_, err = codec.Decode(pair.RefreshToken, TokenTypeAccess)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestCodecSignature(t *testing.T) {
	t.Parallel()

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		codec := NewCodec("secret-a", 30*time.Minute, 7*24*time.Hour)
		other := NewCodec("secret-b", 30*time.Minute, 7*24*time.Hour)

		pair, err := other.IssuePair(5)
		require.NoError(t, err)

		_, err = codec.Decode(pair.AccessToken, TokenTypeAccess)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		codec := NewCodec("secret-a", 30*time.Minute, 7*24*time.Hour)

		_, err := codec.Decode("not.a.jwt", TokenTypeAccess)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})
}
