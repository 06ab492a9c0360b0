package http

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
)

// openAPIPath is relative to the working directory of the server.
const openAPIPath = "api/openapi.yaml"

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Property Map API | Swagger UI</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/docs/openapi.yaml',
      dom_id: '#swagger-ui',
      tryItOutEnabled: true,
      defaultModelsExpandDepth: 0,
    });
  </script>
</body>
</html>`

// SetupDocs registers Swagger UI at /docs and the OpenAPI document at
// /docs/openapi.yaml. The document is read once; a missing file leaves
// the UI up and the document route answering 404.
func SetupDocs(app *fiber.App, specPath string) {
	doc, err := os.ReadFile(specPath)
	if err != nil {
		slog.Warn("openapi document unavailable", "path", specPath, "error", err)
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(swaggerUIHTML)
	})
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		if doc == nil {
			return errNotFound(c, "openapi.yaml not found")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(doc)
	})
}
