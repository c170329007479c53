// Package auth gates the admin surface behind the storefront PIN. The
// PIN is not a security boundary; the token it mints just keeps the
// admin screens stateless across requests.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"salsa-storefront/internal/clock"
	"salsa-storefront/internal/config"
	"salsa-storefront/internal/logger"
)

var (
	ErrInvalidPIN   = errors.New("auth: invalid pin")
	ErrInvalidToken = errors.New("auth: invalid token")
)

type Gate struct {
	pin    string
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
	log    *logger.Logger
}

func NewGate(cfg config.Admin, clk clock.Clock, log *logger.Logger) *Gate {
	return &Gate{
		pin:    cfg.PIN,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		clock:  clk,
		log:    log,
	}
}

// Unlock exchanges the admin PIN for a short-lived signed session token.
func (g *Gate) Unlock(pin string) (string, error) {
	if pin != g.pin {
		g.log.LogSecurity("PIN_REJECTED", "admin unlock attempt with wrong pin")
		return "", ErrInvalidPIN
	}

	now := g.clock.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   "admin",
		Issuer:    "salsa-storefront",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	g.log.Info("AUTH", "Admin session unlocked")
	return signed, nil
}

// Verify checks a session token's signature and expiry.
func (g *Gate) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.clock.Now))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Middleware rejects requests without a valid Bearer session token.
func (g *Gate) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			// Expect "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			if err := g.Verify(parts[1]); err != nil {
				g.log.LogSecurity("TOKEN_REJECTED", "admin request with invalid session token")
				http.Error(w, "invalid or expired session token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
