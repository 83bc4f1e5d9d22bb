package auth

import (
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Session is the authenticated caller for one request. It is built by the
// auth middleware and handed explicitly to services; nothing global holds it.
type Session struct {
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
	Email  string          `json:"email,omitempty"`
	Token  string          `json:"-"`
}

func (s Session) Authenticated() bool {
	return s.UserID > 0 && s.Token != ""
}

func NewSession(claims *jwt.Claims, token string) Session {
	return Session{
		UserID: claims.UserID,
		Role:   domain.UserRole(claims.Role),
		Email:  claims.Email,
		Token:  token,
	}
}

// WithSession stores the session plus the user_id/role keys the logger reads.
func WithSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
	c.Set("user_id", s.UserID)
	c.Set("role", string(s.Role))
}

func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	if !ok || !s.Authenticated() {
		return Session{}, false
	}
	return s, true
}
