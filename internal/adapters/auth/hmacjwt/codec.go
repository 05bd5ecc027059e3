package hmacjwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-profiles/internal/ports/auth"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const minSecretLen = 16

// tokenClaims: sub = user id, jti no se usa; sid referencia la fila del ledger.
type tokenClaims struct {
	Role      string `json:"role"`
	Username  string `json:"username"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Codec firma y valida tokens HS256.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewCodec(secret, issuer string) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("hmacjwt: secret must be at least %d bytes", minSecretLen)
	}
	return &Codec{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}, nil
}

func (c *Codec) Issue(cl auth.Claims) (string, error) {
	if cl.UserID == "" || cl.SessionID == "" {
		return "", errors.New("hmacjwt: user id and session id are required")
	}
	if cl.ExpiresAt.IsZero() {
		return "", errors.New("hmacjwt: expiry is required")
	}

	claims := tokenClaims{
		Role:      cl.Role,
		Username:  cl.Username,
		SessionID: cl.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cl.UserID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(cl.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *Codec) Parse(tokenStr string) (auth.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	t, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	tc, ok := t.Claims.(*tokenClaims)
	if !ok || !t.Valid || tc.Subject == "" || tc.SessionID == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID:    tc.Subject,
		Role:      tc.Role,
		Username:  tc.Username,
		SessionID: tc.SessionID,
		ExpiresAt: tc.ExpiresAt.Time.UTC(),
	}, nil
}
