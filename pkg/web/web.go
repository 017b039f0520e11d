package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static
var staticFiles embed.FS

// Root holds the bundled frontend.
func Root() http.FileSystem {
	files, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	return http.FS(files)
}

// Router serves the frontend page at / and its assets under /static.
func Router(router fiber.Router) {
	root := Root()

	router.Get("/", func(c *fiber.Ctx) error {
		return filesystem.SendFile(c, root, "index.html")
	})
	router.Use("/static", filesystem.New(filesystem.Config{
		Root:   root,
		MaxAge: 3600,
	}))
}
