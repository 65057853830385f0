package webapi

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed docs/openapi.json docs/swagger.html docs/redoc.html
var docsFS embed.FS

// DocsController serves the OpenAPI document and the interactive Swagger UI
// and ReDoc pages rendering it.
type DocsController struct {
	openAPI []byte
	swagger []byte
	redoc   []byte
}

func NewDocsController() *DocsController {
	return &DocsController{
		openAPI: mustReadDoc("docs/openapi.json"),
		swagger: mustReadDoc("docs/swagger.html"),
		redoc:   mustReadDoc("docs/redoc.html"),
	}
}

func mustReadDoc(name string) []byte {
	b, err := docsFS.ReadFile(name)
	if err != nil {
		panic(err)
	}

	return b
}

func (c *DocsController) OpenAPI(ctx echo.Context) error {
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, c.openAPI)
}

func (c *DocsController) SwaggerUI(ctx echo.Context) error {
	return ctx.HTMLBlob(http.StatusOK, c.swagger)
}

func (c *DocsController) ReDoc(ctx echo.Context) error {
	return ctx.HTMLBlob(http.StatusOK, c.redoc)
}
