package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/globalsolutions/website/backend/internal/content/service"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine, sections []service.SectionInfo) {
	doc := openAPI(sections)

	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>site-content - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url:    '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

type obj = map[string]interface{}

func resp(codes ...string) obj {
	desc := map[string]string{
		"200": "ok", "201": "created", "400": "invalid request", "401": "missing or invalid token",
		"403": "not an admin", "404": "not found", "409": "job closed", "413": "file too large",
		"429": "rate limited", "500": "storage failure", "503": "not ready",
	}
	out := obj{}
	for _, c := range codes {
		out[c] = obj{"description": desc[c]}
	}
	return out
}

func jsonBody() obj {
	return obj{"content": obj{"application/json": obj{"schema": obj{"type": "object"}}}}
}

var bearer = []obj{{"bearerAuth": []string{}}}

// openAPI describes the routes mounted for the registered sections plus
// the careers and ops endpoints.
func openAPI(sections []service.SectionInfo) obj {
	paths := obj{
		"/api/sections":                obj{"get": obj{"summary": "List editable sections", "responses": resp("200")}},
		"/api/careers/jobs":            obj{"get": obj{"summary": "List open positions", "responses": resp("200", "500")}},
		"/api/careers/jobs/{id}":       obj{"get": obj{"summary": "Get an open position", "responses": resp("200", "404")}},
		"/api/careers/jobs/{id}/apply": obj{"post": obj{"summary": "Apply for a position", "requestBody": jsonBody(), "responses": resp("201", "400", "404", "409", "429")}},
		"/api/careers/admin/jobs": obj{
			"get":  obj{"summary": "List all positions", "security": bearer, "responses": resp("200", "401", "403")},
			"post": obj{"summary": "Create a position", "security": bearer, "requestBody": jsonBody(), "responses": resp("201", "400", "401", "403")},
		},
		"/api/careers/admin/jobs/{id}": obj{
			"put":    obj{"summary": "Update a position", "security": bearer, "requestBody": jsonBody(), "responses": resp("200", "400", "404")},
			"delete": obj{"summary": "Delete a position", "security": bearer, "responses": resp("200", "404")},
		},
		"/api/careers/admin/applications": obj{"get": obj{"summary": "List applications (optional jobId)", "security": bearer, "responses": resp("200", "401", "403")}},
		"/health":                         obj{"get": obj{"summary": "Liveness check", "responses": resp("200")}},
		"/ready":                          obj{"get": obj{"summary": "Readiness check", "responses": resp("200", "503")}},
		"/metrics":                        obj{"get": obj{"summary": "Prometheus metrics", "responses": resp("200")}},
	}
	for _, s := range sections {
		paths[s.Path] = obj{
			"get":  obj{"summary": "Get " + s.Key + " content", "tags": []string{s.Area}, "responses": resp("200", "404", "500")},
			"post": obj{"summary": "Replace " + s.Key + " content", "tags": []string{s.Area}, "security": bearer, "requestBody": jsonBody(), "responses": resp("200", "400", "401", "403", "500")},
		}
		paths[s.Path+"/upload"] = obj{"post": obj{
			"summary":  "Upload an image for " + s.Key,
			"tags":     []string{s.Area},
			"security": bearer,
			"requestBody": obj{"content": obj{"multipart/form-data": obj{"schema": obj{
				"type": "object",
				"properties": obj{
					"image":        obj{"type": "string", "format": "binary"},
					"field":        obj{"type": "string"},
					"oldImagePath": obj{"type": "string"},
				},
				"required": []string{"image"},
			}}}},
			"responses": resp("200", "400", "413", "500"),
		}}
		paths[s.Path+"/delete-image"] = obj{"post": obj{
			"summary":     "Delete an uploaded image",
			"tags":        []string{s.Area},
			"security":    bearer,
			"requestBody": jsonBody(),
			"responses":   resp("200", "400", "500"),
		}}
	}
	return obj{
		"openapi": "3.0.0",
		"info":    obj{"title": "site-content", "version": "v1.0.0"},
		"paths":   paths,
		"components": obj{"securitySchemes": obj{
			"bearerAuth": obj{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
		}},
	}
}
