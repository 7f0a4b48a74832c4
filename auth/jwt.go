// Package auth issues and verifies the two JWT kinds the API uses: a
// short-lived access token carrying the full auth context, and a
// longer-lived refresh token bound to a server-side session id.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// ErrInvalidToken covers bad signatures and expiry alike; callers get no
// more detail than that.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the auth context every protected request runs under.
type Claims struct {
	UserID string `json:"userId"`
	TeamID string `json:"teamId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Tokens signs with two independent secrets so a leaked access secret
// cannot mint refresh tokens.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokens(accessSecret, refreshSecret string) *Tokens {
	return &Tokens{accessSecret: []byte(accessSecret), refreshSecret: []byte(refreshSecret)}
}

func (t *Tokens) IssueAccess(userID, teamID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		TeamID: teamID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.accessSecret)
}

func (t *Tokens) IssueRefresh(sessionID string) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.refreshSecret)
}

func (t *Tokens) VerifyAccess(token string) (*Claims, error) {
	var claims Claims
	if err := t.verify(token, &claims, t.accessSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

// VerifyRefresh returns the backing session id; the token is only as
// alive as that session record.
func (t *Tokens) VerifyRefresh(token string) (string, error) {
	var claims refreshClaims
	if err := t.verify(token, &claims, t.refreshSecret); err != nil {
		return "", err
	}
	return claims.SessionID, nil
}

func (t *Tokens) verify(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
