package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every validation failure — structural,
// signature, or expiry. Callers cannot tell which check failed.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Service issues and validates HS256-signed bearer tokens. The secret is
// process-wide; rotating it invalidates all outstanding tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue returns a signed token for the subject, expiring ttl from now.
func (s *Service) Issue(subjectID string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return tok.SignedString(s.secret)
}

// Validate checks signature and expiry and returns the subject id.
func (s *Service) Validate(tokenStr string) (string, error) {
	c := &claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid || c.UserID == "" {
		return "", ErrInvalidToken
	}
	return c.UserID, nil
}
