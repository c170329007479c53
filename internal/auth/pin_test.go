package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salsa-storefront/internal/auth"
	"salsa-storefront/internal/clock"
	"salsa-storefront/internal/config"
	"salsa-storefront/internal/logger"
)

func newTestGate(clk clock.Clock) *auth.Gate {
	return auth.NewGate(config.Admin{
		PIN:       "4242",
		JWTSecret: "test-secret",
		TokenTTL:  30 * time.Minute,
	}, clk, logger.NewLogger())
}

func TestUnlockRejectsWrongPIN(t *testing.T) {
	gate := newTestGate(clock.NewSystem())

	_, err := gate.Unlock("0000")
	assert.ErrorIs(t, err, auth.ErrInvalidPIN)

	_, err = gate.Unlock("")
	assert.ErrorIs(t, err, auth.ErrInvalidPIN)
}

func TestUnlockTokenRoundTrip(t *testing.T) {
	gate := newTestGate(clock.NewSystem())

	token, err := gate.Unlock("4242")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, gate.Verify(token))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	gate := newTestGate(clock.NewSystem())

	assert.ErrorIs(t, gate.Verify("not-a-token"), auth.ErrInvalidToken)
	assert.ErrorIs(t, gate.Verify(""), auth.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)

	gate := newTestGate(clock.NewFixed(issuedAt))
	token, err := gate.Unlock("4242")
	require.NoError(t, err)

	// Same secret, but the clock has moved past the token's TTL.
	lateGate := newTestGate(clock.NewFixed(issuedAt.Add(31 * time.Minute)))
	assert.ErrorIs(t, lateGate.Verify(token), auth.ErrInvalidToken)

	// Within the TTL the token still verifies.
	earlyGate := newTestGate(clock.NewFixed(issuedAt.Add(29 * time.Minute)))
	assert.NoError(t, earlyGate.Verify(token))
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	gate := newTestGate(clock.NewSystem())
	token, err := gate.Unlock("4242")
	require.NoError(t, err)

	otherGate := auth.NewGate(config.Admin{
		PIN:       "4242",
		JWTSecret: "different-secret",
		TokenTTL:  30 * time.Minute,
	}, clock.NewSystem(), logger.NewLogger())
	assert.ErrorIs(t, otherGate.Verify(token), auth.ErrInvalidToken)
}

func TestMiddlewareGuardsRequests(t *testing.T) {
	gate := newTestGate(clock.NewSystem())
	token, err := gate.Unlock("4242")
	require.NoError(t, err)

	handler := gate.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"invalid token", "Bearer abc", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
