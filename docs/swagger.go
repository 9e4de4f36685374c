package docs

import "github.com/swaggo/swag"

// @tag.name Users
// @tag.description Registration, sessions and company members

// @tag.name Tasks
// @tag.description Task management and progress reporting

// @tag.name Performance
// @tag.description Leaderboard and daily progress

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
        "/health": {"get": {"summary": "Liveness and database check", "responses": {"200": {"description": "OK"}}}},
        "/register": {"post": {"tags": ["Users"], "summary": "Register a company", "responses": {"201": {"description": "Created"}}}},
        "/login": {"post": {"tags": ["Users"], "summary": "Log in", "responses": {"200": {"description": "OK"}}}},
        "/logout": {"post": {"tags": ["Users"], "summary": "Revoke the current token", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}},
        "/me": {"get": {"tags": ["Users"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/users": {
            "get": {"tags": ["Users"], "summary": "List company members", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Users"], "summary": "Add a company member", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/tasks": {
            "get": {"tags": ["Tasks"], "summary": "List tasks", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Tasks"], "summary": "Create a task", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}": {
            "get": {"tags": ["Tasks"], "summary": "Get a task", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Tasks"], "summary": "Edit a task", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Tasks"], "summary": "Delete a task", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/tasks/{id}/progress": {"patch": {"tags": ["Tasks"], "summary": "Report task progress", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/performance/leaderboard": {"get": {"tags": ["Performance"], "summary": "Company leaderboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/performance/daily": {"get": {"tags": ["Performance"], "summary": "Daily earned points", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/performance/me": {"get": {"tags": ["Performance"], "summary": "Own standing and daily points", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Performance Tracker API",
	Description:      "Task points, leaderboards and daily progress for company teams.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
