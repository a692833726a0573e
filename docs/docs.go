// Package docs holds the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/register": {"post": {"tags": ["auth"], "summary": "Register a customer account", "responses": {"201": {"description": "Created"}, "422": {"description": "Validation failed"}}}},
        "/login": {"post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "responses": {"200": {"description": "OK"}, "422": {"description": "Invalid credentials"}}}},
        "/logout": {"post": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Revoke the current token", "responses": {"200": {"description": "OK"}}}},
        "/users": {"get": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "List users", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}": {
            "get": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Get a user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Update a user profile", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Delete a user and their bookings", "responses": {"204": {"description": "No Content"}}}
        },
        "/accommodations": {
            "get": {"tags": ["accommodations"], "security": [{"BearerAuth": []}], "summary": "List accommodations with optional fuzzy name search", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["accommodations"], "security": [{"BearerAuth": []}], "summary": "Create an accommodation", "responses": {"201": {"description": "Created"}}}
        },
        "/accommodations/available": {"get": {"tags": ["accommodations"], "security": [{"BearerAuth": []}], "summary": "List bookable accommodations", "responses": {"200": {"description": "OK"}}}},
        "/accommodations/{id}": {
            "get": {"tags": ["accommodations"], "security": [{"BearerAuth": []}], "summary": "Get an accommodation", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["accommodations"], "security": [{"BearerAuth": []}], "summary": "Update an accommodation", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["accommodations"], "security": [{"BearerAuth": []}], "summary": "Delete an accommodation without bookings", "responses": {"200": {"description": "OK"}}}
        },
        "/accommodations/{id}/toggle-active": {"patch": {"tags": ["accommodations"], "security": [{"BearerAuth": []}], "summary": "Flip the active flag", "responses": {"200": {"description": "OK"}}}},
        "/bookings": {
            "get": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "List bookings", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Book units of an accommodation", "responses": {"201": {"description": "Created"}, "422": {"description": "Unavailable"}}}
        },
        "/bookings/{id}": {
            "get": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Get one booking", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Change quantity or payment method", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Delete a booking and release its units", "responses": {"200": {"description": "OK"}}}
        },
        "/bookings/{id}/status": {"patch": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Move a booking to another status", "responses": {"200": {"description": "OK"}}}},
        "/admin/dashboard/bookings/{status}": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Admin booking dashboard", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Resort Booking API",
	Description:      "Accommodation inventory and booking management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
