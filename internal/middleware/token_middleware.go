package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qoloner/qoloner-api/internal/service"
	"github.com/qoloner/qoloner-api/internal/utils"
)

// SubmissionAuthMiddleware enforces the submission capability token on the
// listing endpoints. Invalid attempts are rate limited per IP.
type SubmissionAuthMiddleware struct {
	tokens      *service.TokenService
	rateLimiter *InvalidAuthRateLimiter
}

// NewSubmissionAuthMiddleware constructs a SubmissionAuthMiddleware.
func NewSubmissionAuthMiddleware(tokens *service.TokenService) *SubmissionAuthMiddleware {
	return &SubmissionAuthMiddleware{
		tokens:      tokens,
		rateLimiter: NewInvalidAuthRateLimiter(),
	}
}

// Handle returns a Gin middleware function that validates the token and
// stores the authorized master id in the request context.
func (m *SubmissionAuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.handleAuthError(c, "Missing or invalid authorization header")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		masterID, err := m.tokens.ValidateSubmissionToken(token)
		if err != nil {
			m.handleAuthError(c, "Invalid or expired submission token")
			return
		}

		c.Set("master_id", masterID)
		c.Next()
	}
}

func (m *SubmissionAuthMiddleware) handleAuthError(c *gin.Context, message string) {
	// Apply rate limit for invalid auth attempts
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, "INVALID_TOKEN", message)
	c.Abort()
}

// MasterID returns the authenticated master id from context, or 0.
func MasterID(c *gin.Context) int {
	return c.GetInt("master_id")
}
