package server

import (
	"github.com/gofiber/fiber/v2"
)

// About handles GET /about
func (s *Server) About(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "about"})
}

// Contact handles GET /contact
func (s *Server) Contact(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "contact"})
}
