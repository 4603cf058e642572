// Package docs registers the OpenAPI document served at /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Service health", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Admin login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Clear the session cookie", "responses": {"200": {"description": "OK"}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current admin user", "responses": {"200": {"description": "OK"}}}},
        "/jobs/public": {"get": {"tags": ["jobs"], "summary": "List published jobs (public)", "responses": {"200": {"description": "OK"}}}},
        "/jobs/public/{id}": {"get": {"tags": ["jobs"], "summary": "Get published job details (public)", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/jobs": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "List jobs", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Create a new job", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/jobs/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Job counts per status", "responses": {"200": {"description": "OK"}}}},
        "/jobs/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Get job details", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Update a job", "description": "Partial update. A status change goes through the same rules as the transition endpoints. A status equal to the current one is not a transition: statusChangedAt and the history stay as they are.", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Delete a job", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/jobs/{id}/history": {"get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Status history of a job", "responses": {"200": {"description": "OK"}}}},
        "/jobs/{id}/{action}": {"post": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Change job status", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/jobs/{id}/duplicate": {"post": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Duplicate a job as a new draft", "responses": {"201": {"description": "Created"}}}},
        "/jobs/{id}/save-as-template": {"post": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Save a job as a reusable template", "responses": {"201": {"description": "Created"}}}},
        "/templates": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["templates"], "summary": "List job templates", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["templates"], "summary": "Create a job template", "responses": {"201": {"description": "Created"}}}
        },
        "/templates/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["templates"], "summary": "Get a job template", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["templates"], "summary": "Delete a job template", "responses": {"200": {"description": "OK"}}}
        },
        "/templates/{id}/jobs": {"post": {"security": [{"BearerAuth": []}], "tags": ["templates"], "summary": "Create a draft job from a template", "responses": {"201": {"description": "Created"}}}},
        "/applications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "List applications", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["applications"], "summary": "Apply to a job (public)", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/applications/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Get an application with notes and ratings", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Delete an application", "responses": {"200": {"description": "OK"}}}
        },
        "/applications/{id}/stage": {"patch": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Move an application to a pipeline stage", "responses": {"200": {"description": "OK"}}}},
        "/applications/{id}/notes": {"post": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Add a reviewer note", "responses": {"201": {"description": "Created"}}}},
        "/applications/{id}/ratings": {"post": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Add a reviewer rating", "responses": {"201": {"description": "Created"}}}},
        "/applications/bulk": {"post": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Run one action over many applications", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/applications/bulk/status": {"get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Whether a bulk action is running on a selection", "responses": {"200": {"description": "OK"}}}},
        "/seed": {"post": {"security": [{"BearerAuth": []}], "tags": ["system"], "summary": "Reset the database to the fixture dataset", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Careers Board API",
	Description:      "Job postings, applications and the hiring pipeline.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
