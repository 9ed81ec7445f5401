package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chriscconte/cycling-coach/internal/observability/logging"
)

// Gin enforces bearer-token authentication and stores the claims on the request context.
func Gin(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseRequest(c.Request, cfg)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "rejected unauthenticated request",
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": errorMessage(err),
			})
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		ctx = logging.WithOwnerID(ctx, claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OwnerID returns the authenticated owner of the request.
func OwnerID(c *gin.Context) (string, bool) {
	claims, ok := FromContext(c.Request.Context())
	if !ok || claims == nil {
		return "", false
	}
	return claims.Subject, claims.Subject != ""
}

func parseRequest(r *http.Request, cfg Config) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, ErrInvalidToken
	}
	return Parse(header[len("Bearer "):], cfg)
}

func errorMessage(err error) string {
	if errors.Is(err, ErrMissingToken) {
		return ErrMissingToken.Error()
	}
	return ErrInvalidToken.Error()
}
