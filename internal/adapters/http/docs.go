package http

import (
	"bytes"
	"html/template"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
)

// OpenAPIPath is where the OpenAPI document is read from, relative to the
// working directory.
var OpenAPIPath = "api/openapi.yaml"

var swaggerPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>SwaggerUIBundle({url: {{.SpecURL}}, dom_id: '#swagger-ui'});</script>
</body>
</html>`))

// loadOpenAPI parses the document at OpenAPIPath. Nil means it is missing or
// unparsable.
func loadOpenAPI() (*openapi3.T, []byte) {
	data, err := os.ReadFile(OpenAPIPath)
	if err != nil {
		return nil, nil
	}
	doc, err := (&openapi3.Loader{}).LoadFromData(data)
	if err != nil {
		return nil, data
	}
	return doc, data
}

// SetupDocs registers Swagger UI at /docs and the OpenAPI document at
// /docs/openapi.yaml and /docs/openapi.json.
func SetupDocs(app *fiber.App) {
	app.Get("/docs", func(c *fiber.Ctx) error {
		title := "Astromic Natal Chart API"
		if doc, _ := loadOpenAPI(); doc != nil && doc.Info != nil {
			title = doc.Info.Title
		}
		var buf bytes.Buffer
		err := swaggerPage.Execute(&buf, struct{ Title, SpecURL string }{title, "/docs/openapi.json"})
		if err != nil {
			return errInternal(c, "render docs: "+err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		_, data := loadOpenAPI()
		if data == nil {
			return errNotFound(c, "openapi.yaml not found")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(data)
	})

	app.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		doc, _ := loadOpenAPI()
		if doc == nil {
			return errNotFound(c, "openapi document not available")
		}
		return c.JSON(doc)
	})
}
