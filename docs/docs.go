// Package docs holds the generated OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/dashboard-api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/pipelines": {
            "get": {
                "tags": ["pipelines"],
                "summary": "List pipelines",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["pipelines"],
                "summary": "Create a pipeline",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid payload"}}
            }
        },
        "/pipelines/{id}/execute": {
            "post": {
                "tags": ["pipelines"],
                "summary": "Execute a pipeline",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Run outcome"},
                    "400": {"description": "Draft pipeline"},
                    "404": {"description": "Pipeline not found"},
                    "409": {"description": "Pipeline already running"}
                }
            }
        },
        "/pipeline-runs": {
            "get": {
                "tags": ["runs"],
                "summary": "List pipeline runs, newest first",
                "parameters": [{"name": "limit", "in": "query", "type": "integer", "default": 50}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/quality-rules": {
            "get": {
                "tags": ["quality"],
                "summary": "List quality rules",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["quality"],
                "summary": "Create a quality rule",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid payload"}}
            }
        },
        "/quality-results": {
            "get": {
                "tags": ["quality"],
                "summary": "List quality results, newest first",
                "parameters": [{"name": "limit", "in": "query", "type": "integer", "default": 100}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/analytics/query": {
            "post": {
                "tags": ["analytics"],
                "summary": "Execute a structured analytics query",
                "responses": {"200": {"description": "Tabular result"}}
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Dashboard overview statistics",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Pipeline Dashboard API",
	Description:      "Monitoring backend for ETL pipelines: runs, data quality, and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
