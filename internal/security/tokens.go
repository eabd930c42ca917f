package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, expired or forged player tokens
var ErrInvalidToken = errors.New("invalid player token")

// PlayerClaims identifies an anonymous player
type PlayerClaims struct {
	PlayerID string `json:"pid"`
	Nickname string `json:"nick"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies player tokens with HMAC-SHA256
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. Tokens expire after ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the player
func (i *TokenIssuer) Issue(playerID, nickname string) (string, error) {
	now := i.now()
	claims := &PlayerClaims{
		PlayerID: playerID,
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses a token and returns its claims
func (i *TokenIssuer) Validate(tokenString string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PlayerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*PlayerClaims)
	if !ok || !token.Valid || claims.PlayerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL is how long issued tokens stay valid
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}
