// Package docs holds the OpenAPI document served at /api/swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/properties": {
            "get": {
                "tags": ["properties"],
                "summary": "Search listings",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "city", "in": "query"},
                    {"type": "string", "name": "listingType", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "integer", "name": "bedrooms", "in": "query"},
                    {"type": "string", "name": "furnished", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PropertyPage"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["properties"],
                "summary": "Create listing",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.createPropertyRequest"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/properties/{id}": {
            "get": {
                "tags": ["properties"],
                "summary": "Get listing",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Property"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["properties"],
                "summary": "Update listing",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["properties"],
                "summary": "Delete listing",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/properties/{id}/approve": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Approve listing",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/properties/{id}/reject": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Reject listing",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/wishlist/{propertyId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["wishlist"],
                "summary": "Save listing",
                "parameters": [{"type": "integer", "name": "propertyId", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Already in wishlist"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["wishlist"],
                "summary": "Unsave listing",
                "parameters": [{"type": "integer", "name": "propertyId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/inquiries/{propertyId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["inquiries"],
                "summary": "Send inquiry",
                "parameters": [{"type": "integer", "name": "propertyId", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "models.UserSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["USER", "OWNER", "ADMIN"]},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Property": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "city": {"type": "string"},
                "address": {"type": "string"},
                "area": {"type": "number"},
                "bedrooms": {"type": "integer"},
                "bathrooms": {"type": "integer"},
                "furnished": {"type": "boolean"},
                "type": {"type": "string"},
                "listingType": {"type": "string", "enum": ["RENT", "SELL"]},
                "images": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["PENDING", "APPROVED", "REJECTED"]},
                "ownerId": {"type": "integer"},
                "owner": {"$ref": "#/definitions/models.UserSummary"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.PropertyPage": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "properties": {"type": "array", "items": {"$ref": "#/definitions/models.Property"}}
            }
        },
        "server.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "server.registerRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["USER", "OWNER"]}
            }
        },
        "server.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "server.createPropertyRequest": {
            "type": "object",
            "required": ["title", "city", "price"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "city": {"type": "string"},
                "address": {"type": "string"},
                "area": {"type": "number"},
                "bedrooms": {"type": "integer"},
                "bathrooms": {"type": "integer"},
                "furnished": {"type": "boolean"},
                "type": {"type": "string"},
                "listingType": {"type": "string", "enum": ["RENT", "SELL"]},
                "images": {"type": "array", "items": {"type": "string"}}
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
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Estately API",
	Description:      "Real-estate listing API with moderation, wishlists and inquiries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
