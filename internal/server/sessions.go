package server

import (
	"context"
	"strconv"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "session"
	sessionTTL        = 7 * 24 * time.Hour

	tokenIssuer   = "inkwell"
	tokenAudience = "inkwell-web"
)

// sessionToken is the parsed form of the signed session cookie.
type sessionToken struct {
	userID    uint
	jti       string
	expiresAt time.Time
}

// issueSession signs a session token for the user and sets it as an
// HTTP-only cookie.
func (s *Server) issueSession(c *fiber.Ctx, user *models.User) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"name": user.Name,
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(sessionTTL).Unix(),
		"iat":  now.Unix(),
		"jti":  uuid.New().String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return models.NewInternalError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

// clearSession expires the session cookie. Safe to call without a session.
func (s *Server) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// parseSession verifies the session cookie and extracts its claims.
// Any failure means "no session"; the caller decides what that implies.
func (s *Server) parseSession(c *fiber.Ctx) (*sessionToken, bool) {
	raw := c.Cookies(sessionCookieName)
	if raw == "" {
		return nil, false
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return nil, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, false
	}

	parsed := &sessionToken{userID: uint(userID)}
	if jti, exists := claims["jti"].(string); exists {
		parsed.jti = jti
	}
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		parsed.expiresAt = exp.Time
	}

	return parsed, true
}

// sessionIdentity tags the request with the session's user ID so middlewares
// ahead of the handler (the rate limiter) can key by user instead of IP. It
// only reads the cookie; handlers still resolve and verify the full account
// through currentUser.
func (s *Server) sessionIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok, ok := s.parseSession(c); ok {
			c.Locals("userID", tok.userID)
		}
		return c.Next()
	}
}

// currentUser resolves the session cookie to a User record for the duration
// of the request. It returns nil for missing, invalid, revoked, or orphaned
// sessions: handlers treat all of those as "not logged in".
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	tok, ok := s.parseSession(c)
	if !ok {
		return nil
	}
	if s.sessions.IsRevoked(c.Context(), tok.jti) {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), tok.userID)
	if err != nil || user == nil {
		return nil
	}

	// Expose the identity to the logging middleware.
	c.Locals("userID", user.ID)
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
	c.SetUserContext(ctx)

	return user
}

// requireAdmin is the guard in front of every post mutation. On failure it
// writes a 403 and returns errResponseWritten; no store mutation may happen
// after a Deny.
func (s *Server) requireAdmin(c *fiber.Ctx) (*models.User, error) {
	user := s.currentUser(c)
	if user == nil || !user.IsAdmin {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Admin access required"))
		return nil, errResponseWritten
	}
	return user, nil
}
