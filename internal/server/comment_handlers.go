package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// commentPayload shapes a comment for page responses. Like postPayload it
// narrows the author to id and name; email and admin status stay private.
func commentPayload(comment *models.Comment) fiber.Map {
	return fiber.Map{
		"id":     comment.ID,
		"text":   comment.Text,
		"author": fiber.Map{"id": comment.User.ID, "name": comment.User.Name},
	}
}

// AddComment handles POST /post/:id. Visitors without a session are sent to
// the login form; everyone else may comment freely.
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user := s.currentUser(c)
	if user == nil {
		setFlash(c, "error", "You need to register or login to comment")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	var req struct {
		Comment string `form:"comment" json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err = s.commentService.AddComment(c.Context(), service.AddCommentInput{
		UserID: user.ID,
		PostID: id,
		Text:   req.Comment,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	commentsCreatedTotal.Inc()
	return c.Redirect("/post/"+itoa(id), fiber.StatusSeeOther)
}
