package dashboard

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed index.html
var indexHTML []byte

func (server *Server) dashboardPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return c.Send(indexHTML)
}
