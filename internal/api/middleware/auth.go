package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/ports"
	"github.com/fiori/inventory-api/internal/infrastructure/token"
)

// Context keys set by Auth.
const (
	ContextUserID   = "user_id"
	ContextTokenID  = "token_id"
	ContextTokenExp = "token_exp"
)

// HeaderRefreshedToken carries a replacement token for one about to expire.
const HeaderRefreshedToken = "X-Refreshed-Token"

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// AuthConfig wires the Auth middleware. Issuer and Revoker are optional:
// without an Issuer tokens are never refreshed, without a Revoker logout
// has no effect on still-valid tokens.
type AuthConfig struct {
	Verifier      TokenVerifier
	Issuer        ports.TokenIssuer
	Revoker       ports.TokenRevoker
	RefreshWindow time.Duration
	Log           zerolog.Logger
	Now           func() time.Time
}

// Auth validates the bearer token, rejects revoked ones and injects the
// principal into the context. Tokens close to expiry are refreshed through
// the X-Refreshed-Token response header.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := cfg.Verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if cfg.Revoker != nil {
				revoked, err := cfg.Revoker.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					cfg.Log.Error().Err(err).Str("token_id", claims.TokenID).Msg("revocation check failed")
					return echo.NewHTTPError(http.StatusServiceUnavailable, "token revocation check unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextTokenID, claims.TokenID)
			c.Set(ContextTokenExp, claims.ExpiresAt)

			if cfg.Issuer != nil && cfg.RefreshWindow > 0 && claims.ExpiresAt.Sub(now()) <= cfg.RefreshWindow {
				fresh, _, err := cfg.Issuer.Issue(claims.UserID)
				if err != nil {
					cfg.Log.Warn().Err(err).Uint("user_id", claims.UserID).Msg("token refresh failed")
				} else {
					c.Response().Header().Set(HeaderRefreshedToken, fresh)
				}
			}

			return next(c)
		}
	}
}
