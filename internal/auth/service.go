package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rupee-vest/rupee_vest/internal/identity"
)

// ErrInvalidToken covers malformed, expired and mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the authenticated identity extracted from a bearer token.
type Claims struct {
	AccountID string
	Username  string
	Admin     bool
}

// Service signs and verifies HS256 access tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service from the shared secret and token TTL.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs an access token for the user and returns it with its expiry.
func (s *Service) Issue(user identity.User) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"unm": user.Username,
		"adm": user.Admin,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies a token string and returns its claims.
func (s *Service) Parse(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	username, _ := mapClaims["unm"].(string)
	admin, _ := mapClaims["adm"].(bool)

	return Claims{AccountID: sub, Username: username, Admin: admin}, nil
}
