package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-blog-api/internal/model"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carries the signed token payload: the subject user id, the token
// kind tag and the registered expiry/issue instants.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	TokenType string `json:"typ"`
}

// Codec signs and verifies access/refresh tokens with a single symmetric
// key. It never touches storage; rotation checks live in the service layer.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret string, accessTTL time.Duration, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair mints an access/refresh token pair for the user. Each token
// gets its own jti, so consecutive pairs for the same user never collide.
func (c *Codec) IssuePair(userID int64) (model.TokenPair, error) {
	accessToken, err := c.sign(userID, TokenTypeAccess, c.accessTTL)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := c.sign(userID, TokenTypeRefresh, c.refreshTTL)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(c.accessTTL.Seconds()),
	}, nil
}

// Decode verifies the signature, expiry and kind tag of tokenString, in
// that order. Expired tokens surface model.ErrTokenExpired; every other
// failure collapses to model.ErrInvalidToken.
func (c *Codec) Decode(tokenString string, expectedType string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrInvalidToken
	}

	if !parsed.Valid || claims.UserID == 0 {
		return nil, model.ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}

func (c *Codec) sign(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: tokenType,
	})

	return token.SignedString(c.secret)
}
