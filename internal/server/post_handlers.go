package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postPayload shapes a post for page responses, deriving the display date
// from the stored timestamp.
func postPayload(post *models.Post) fiber.Map {
	return fiber.Map{
		"id":             post.ID,
		"title":          post.Title,
		"subtitle":       post.Subtitle,
		"body":           post.Body,
		"image_url":      post.ImageURL,
		"date":           post.DisplayDate(),
		"author":         fiber.Map{"id": post.User.ID, "name": post.User.Name},
		"comments_count": post.CommentsCount,
	}
}

// ListPosts handles GET /
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	payload := make([]fiber.Map, 0, len(posts))
	for _, post := range posts {
		payload = append(payload, postPayload(post))
	}

	return c.JSON(fiber.Map{
		"page":  "index",
		"posts": payload,
		"flash": popFlash(c),
	})
}

// ShowPost handles GET /post/:id — the post plus all of its comments in
// insertion order.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, comments, err := s.commentService.GetPostWithComments(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	commentList := make([]fiber.Map, 0, len(comments))
	for _, comment := range comments {
		commentList = append(commentList, commentPayload(comment))
	}

	return c.JSON(fiber.Map{
		"page":     "post",
		"post":     postPayload(post),
		"comments": commentList,
		"flash":    popFlash(c),
	})
}

// NewPostForm handles GET /new-post (admin only)
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	if _, err := s.requireAdmin(c); err != nil {
		return nil
	}
	return c.JSON(fiber.Map{"page": "new-post"})
}

// CreatePost handles POST /new-post (admin only)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	admin, err := s.requireAdmin(c)
	if err != nil {
		return nil
	}

	in, ok := parsePostForm(c)
	if !ok {
		return nil
	}

	if _, err := s.postService.CreatePost(c.Context(), admin.ID, in); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	postsCreatedTotal.Inc()
	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditPostForm handles GET /edit-post/:id (admin only). The payload seeds the
// edit form, including the author name the form displays but never writes.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	if _, err := s.requireAdmin(c); err != nil {
		return nil
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"page": "edit-post",
		"post": postPayload(post),
	})
}

// UpdatePost handles POST /edit-post/:id (admin only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	if _, err := s.requireAdmin(c); err != nil {
		return nil
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	in, ok := parsePostForm(c)
	if !ok {
		return nil
	}

	post, err := s.postService.UpdatePost(c.Context(), id, in)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Redirect("/post/"+itoa(post.ID), fiber.StatusSeeOther)
}

// DeletePost handles GET /delete/:id (admin only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if _, err := s.requireAdmin(c); err != nil {
		return nil
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// parsePostForm reads the shared create/edit form fields. On a malformed body
// it writes a 400 and reports !ok.
func parsePostForm(c *fiber.Ctx) (service.PostInput, bool) {
	var req struct {
		Title    string `form:"title" json:"title"`
		Subtitle string `form:"subtitle" json:"subtitle"`
		Body     string `form:"body" json:"body"`
		ImageURL string `form:"img_url" json:"img_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return service.PostInput{}, false
	}
	return service.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}, true
}
