// Package docs registers the OpenAPI document served at /swagger/.
// Keep it in step with the @ annotations on the handlers.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["desserts"],
                "summary": "List all desserts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Dessert"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/create-dessert": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["desserts"],
                "summary": "Create a dessert",
                "parameters": [
                    {"type": "string", "description": "Name", "name": "dessert_name", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData", "required": true},
                    {"type": "number", "description": "Price", "name": "price", "in": "formData", "required": true},
                    {"type": "file", "description": "Image", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Dessert"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/dessert/{id}": {
            "put": {
                "consumes": ["multipart/form-data"],
                "tags": ["desserts"],
                "summary": "Replace every field of a dessert",
                "parameters": [
                    {"type": "string", "description": "Dessert ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Name", "name": "dessert_name", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData", "required": true},
                    {"type": "number", "description": "Price", "name": "price", "in": "formData", "required": true},
                    {"type": "file", "description": "Image", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["desserts"],
                "summary": "Delete a dessert",
                "parameters": [
                    {"type": "string", "description": "Dessert ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/desserts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["desserts"],
                "summary": "Retrieve a dessert by id",
                "parameters": [
                    {"type": "string", "description": "Dessert ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Dessert"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/healthy": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.Dessert": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "dessert_name": {"type": "string"},
                "id": {"type": "string"},
                "image_url": {"type": "string"},
                "price": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo is the document metadata registered with swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dessert API",
	Description:      "CRUD service for desserts with hosted images",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
