// Package docs registers the Swagger description of the HTTP API with swag.
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
        "/auth/login": {
            "post": {
                "description": "Checks the operator credentials and returns a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.LoginInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/events/games": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Server-sent events, one \"game\" event per create, update or delete.",
                "produces": ["text/event-stream"],
                "tags": ["games"],
                "summary": "Stream game changes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/games": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Without an ID returns every game; with an ID returns that game.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "List games or get one by ID",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a game from multipart form fields. An image is required.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Create a game",
                "parameters": [
                    {"type": "string", "description": "Name", "name": "name", "in": "formData", "required": true},
                    {"type": "number", "description": "Number of levels", "name": "levels", "in": "formData", "required": true},
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "formData", "required": true},
                    {"type": "file", "description": "Image (jpg or png)", "name": "imagen", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/games/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Without an ID returns every game; with an ID returns that game.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "List games or get one by ID",
                "parameters": [
                    {"type": "string", "description": "Game ID (ObjectID hex)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Replaces name, levels and date. A new image replaces the stored one.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Update a game",
                "parameters": [
                    {"type": "string", "description": "Game ID (ObjectID hex)", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Name", "name": "name", "in": "formData", "required": true},
                    {"type": "number", "description": "Number of levels", "name": "levels", "in": "formData", "required": true},
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "formData", "required": true},
                    {"type": "file", "description": "Image (jpg or png)", "name": "imagen", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID or validation failed", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes the game's image file, then the game.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Delete a game",
                "parameters": [
                    {"type": "string", "description": "Game ID (ObjectID hex)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        }
    },
    "definitions": {
        "handler.LoginInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "password123"},
                "username": {"type": "string", "example": "admin"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "errors": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"},
                "status": {"type": "boolean"},
                "token": {"type": "string"}
            }
        },
        "models.Game": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-01-01T00:00:00Z"},
                "id": {"type": "string", "example": "665f1c2a9b1e8a3d4c5b6a79"},
                "image": {"type": "string", "example": "/uploads/3f0c1e9e-8a43-4c55-9a57-5d1c2b7a2e11.png"},
                "levels": {"type": "number", "example": 5},
                "name": {"type": "string", "example": "Chess"}
            }
        }
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Juegos API",
	Description:      "Games catalog with image uploads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
