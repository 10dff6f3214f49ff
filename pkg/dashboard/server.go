package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/recordstore"
)

type Server struct {
	Store      *recordstore.Store
	Directions []autotrain.Direction
}

func (server *Server) App() *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("/", server.dashboardPage)

	group := webApp.Group("/dashboard")

	group.Get("version", APIVersion)

	group.Get("records", server.listRecords)
	group.Get("summary", server.getSummary)

	return webApp
}

func (server *Server) SetupServer(listen string) error {
	return server.App().Listen(listen)
}
