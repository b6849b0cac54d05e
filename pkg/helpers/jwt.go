package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs and verifies the three token kinds the application uses:
// session access/refresh pairs, registration tokens carrying a pending
// registration until the email is confirmed, and password-reset tokens
// scoped to an email address.
type JWTManager struct {
	AccessSecret    []byte
	RefreshSecret   []byte
	RegisterSecret  []byte
	ResetSecret     []byte
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	RegistrationTTL time.Duration
	ResetTTL        time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(accessSecret, refreshSecret, registerSecret, resetSecret string,
	accessTTL, refreshTTL, registrationTTL, resetTTL time.Duration) *JWTManager {
	m := &JWTManager{
		AccessSecret:    []byte(accessSecret),
		RefreshSecret:   []byte(refreshSecret),
		RegisterSecret:  []byte(registerSecret),
		ResetSecret:     []byte(resetSecret),
		AccessTTL:       accessTTL,
		RefreshTTL:      refreshTTL,
		RegistrationTTL: registrationTTL,
		ResetTTL:        resetTTL,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

type Claims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// RegistrationClaims carry the pending registration until the confirmation
// link is followed; no user row exists before that.
type RegistrationClaims struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AboutMe     string `json:"about_me,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	jwt.RegisteredClaims
}

// ResetClaims scope a password-reset token to one email address.
type ResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateAccessToken(userID, sessionID string) (string, time.Time, error) {
	return m.signSession(userID, sessionID, m.AccessSecret, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(userID, sessionID string) (string, time.Time, error) {
	return m.signSession(userID, sessionID, m.RefreshSecret, m.RefreshTTL)
}

func (m *JWTManager) signSession(userID, sessionID string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// GenerateRegistrationToken embeds the candidate registration so nothing is
// persisted until the email is confirmed.
func (m *JWTManager) GenerateRegistrationToken(c RegistrationClaims) (string, time.Time, error) {
	exp := time.Now().Add(m.RegistrationTTL)
	c.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &c)
	s, err := t.SignedString(m.RegisterSecret)
	return s, exp, err
}

func (m *JWTManager) GenerateResetToken(email string) (string, time.Time, error) {
	exp := time.Now().Add(m.ResetTTL)
	claims := &ResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.ResetSecret)
	return s, exp, err
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := parseInto(tokenStr, m.AccessSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := parseInto(tokenStr, m.RefreshSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *JWTManager) ParseRegistrationToken(tokenStr string) (*RegistrationClaims, error) {
	claims := &RegistrationClaims{}
	if err := parseInto(tokenStr, m.RegisterSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *JWTManager) ParseResetToken(tokenStr string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := parseInto(tokenStr, m.ResetSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseInto(tokenStr string, secret []byte, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !tkn.Valid {
		return errors.New("invalid token")
	}
	return nil
}
