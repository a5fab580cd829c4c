package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// SwaggerDocs sirve la UI de Swagger en /docs y la especificación generada por swag
// (swag init -g cmd/api/main.go -o docs) en /docs/swagger.json.
func SwaggerDocs(filePath, title string) fiber.Handler {
	return swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	})
}
