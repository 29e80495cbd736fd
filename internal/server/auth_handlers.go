package server

import (
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ShowRegister handles GET /register
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "register",
		"flash": popFlash(c),
	})
}

// Register handles POST /register. On success the new user is logged in
// immediately; a duplicate email redirects to the login form instead.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
		Name     string `form:"name" json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "DUPLICATE_EMAIL" {
			setFlash(c, "error", "You've already signed up with that email. Login instead!")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	if err := s.issueSession(c, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	registrationsTotal.Inc()
	setFlash(c, "success", "You've been successfully registered and logged in.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowLogin handles GET /login
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "login",
		"flash": popFlash(c),
	})
}

// Login handles POST /login. Bad credentials redirect back to the form with
// a message saying whether the email or the password was wrong.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "INVALID_CREDENTIALS" {
			setFlash(c, "error", appErr.Message)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	if err := s.issueSession(c, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	setFlash(c, "success", "You've been successfully logged in")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles GET /logout. Logging out twice is not an error: a missing
// or invalid session still clears the cookie and redirects home.
func (s *Server) Logout(c *fiber.Ctx) error {
	if tok, ok := s.parseSession(c); ok && tok.jti != "" {
		// Revoke until the token would have expired anyway.
		ttl := time.Until(tok.expiresAt)
		if err := s.sessions.Revoke(c.Context(), tok.jti, ttl); err != nil {
			// The cookie clear below still ends the session for this browser.
			middlewareLogWarn(c, "session revocation failed", err)
		}
	}

	s.clearSession(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
