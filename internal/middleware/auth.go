// Package middleware provides gin middleware for the HTTP API.
package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ad-tracker/ytsummary-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	headerAuth     = "Authorization"
	bearerPrefix   = "Bearer "
	userContextKey = "userID"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errNoSecret     = errors.New("jwt secret not configured")
	errMissingSub   = errors.New("token has no subject")
)

// IdentityConfig configures token verification.
type IdentityConfig struct {
	Secret   string
	Audience string // Optional
	Issuer   string // Optional
}

// Identity resolves the caller from an HS256 bearer token issued by the
// identity provider. It never rejects a request: a missing or invalid token
// leaves the request anonymous and handlers decide what that means.
type Identity struct {
	secret []byte
	parser *jwt.Parser
}

// NewIdentity creates a new Identity middleware.
func NewIdentity(cfg IdentityConfig) *Identity {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	if cfg.Secret == "" {
		logger.Log.Warn("auth.jwtsecret not set, every request will be anonymous")
	}

	return &Identity{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
	}
}

// Handler returns the gin middleware.
func (i *Identity) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := i.resolve(c.GetHeader(headerAuth))
		switch {
		case err == nil:
			c.Set(userContextKey, userID)
		case errors.Is(err, errMissingToken):
		default:
			logger.Log.Debug("ignoring bearer token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.Next()
	}
}

func (i *Identity) resolve(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", errMissingToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		return "", errMissingToken
	}
	if len(i.secret) == 0 {
		return "", errNoSecret
	}

	claims := &jwt.RegisteredClaims{}
	_, err := i.parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	if claims.Subject == "" {
		return "", errMissingSub
	}
	return claims.Subject, nil
}

// UserIDFromContext returns the caller's user id, or "" for anonymous requests.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userContextKey)
}
