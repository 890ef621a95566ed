// Package docs holds the swagger document served outside production.
// Regenerate with: swag init -g cmd/records_backend/main.go -o cmd/docs
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
                "tags": ["auth"],
                "summary": "User login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/regions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["regions"],
                "summary": "List regions",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RegionSummaryResponse"}}}
                }
            }
        },
        "/regions/{regionCode}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["regions"],
                "summary": "Get a region",
                "parameters": [{"type": "integer", "name": "regionCode", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RegionDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/regions/{regionCode}/counts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["regions"],
                "summary": "Per-category counts",
                "parameters": [{"type": "integer", "name": "regionCode", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/regions/{regionCode}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["regions"],
                "summary": "Export a region",
                "produces": ["application/zip"],
                "parameters": [{"type": "integer", "name": "regionCode", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/regions/{regionCode}/categories/{categoryName}/records": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "List records in a scope",
                "parameters": [
                    {"type": "integer", "name": "regionCode", "in": "path", "required": true},
                    {"type": "string", "name": "categoryName", "in": "path", "required": true},
                    {"type": "string", "name": "search", "in": "query"},
                    {"enum": ["completed", "incomplete"], "type": "string", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RecordResponse"}}},
                    "404": {"description": "Region or category not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/regions/{regionCode}/categories/{categoryName}/records/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "Export records in a scope",
                "parameters": [
                    {"type": "integer", "name": "regionCode", "in": "path", "required": true},
                    {"type": "string", "name": "categoryName", "in": "path", "required": true},
                    {"enum": ["csv", "xlsx"], "type": "string", "name": "format", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/records": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "Create a record",
                "parameters": [{"name": "record", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRecordRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.RecordResponse"}},
                    "400": {"description": "Invalid scope, amount or field", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/records/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "Get a record",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecordResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "Update a record",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "record", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateRecordRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecordResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "Delete a record",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteResponse"}}}
            }
        },
        "/analytics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["regions"],
                "summary": "Per-region counts",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AnalyticsEntry"}}}}
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListUsersResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Create a new user",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "dto.ListUsersResponse": {
            "type": "object",
            "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/dto.UserResponse"}}}
        },
        "dto.CreateUserRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string", "minLength": 3, "maxLength": 64},
                "password": {"type": "string", "minLength": 6, "maxLength": 72},
                "role": {"type": "string"}
            }
        },
        "dto.CreateRecordRequest": {
            "type": "object",
            "required": ["categoryName", "employeeName", "postalAccount", "regionCode", "treatmentDate"],
            "properties": {
                "regionCode": {"type": "integer"},
                "categoryName": {"type": "string"},
                "employeeName": {"type": "string"},
                "postalAccount": {"type": "string"},
                "amount": {"type": "number"},
                "reimbursementAmount": {"type": "number"},
                "treatmentDate": {"type": "string"},
                "notes": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.UpdateRecordRequest": {
            "type": "object",
            "properties": {
                "employeeName": {"type": "string"},
                "postalAccount": {"type": "string"},
                "amount": {"type": "number"},
                "reimbursementAmount": {"type": "number"},
                "treatmentDate": {"type": "string"},
                "notes": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.RecordResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "regionId": {"type": "integer"},
                "categoryId": {"type": "integer"},
                "regionCode": {"type": "integer"},
                "categoryName": {"type": "string"},
                "ownerId": {"type": "integer"},
                "serial": {"type": "integer"},
                "employeeName": {"type": "string"},
                "postalAccount": {"type": "string"},
                "amount": {"type": "string"},
                "reimbursementAmount": {"type": "string"},
                "treatmentDate": {"type": "string"},
                "notes": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.DeleteResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "dto.RegionSummaryResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "code": {"type": "integer"}, "name": {"type": "string"}, "count": {"type": "integer"}}
        },
        "dto.RegionDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "integer"},
                "name": {"type": "string"},
                "files": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryCount"}}
            }
        },
        "domain.CategoryCount": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "displayName": {"type": "string"}, "count": {"type": "integer"}}
        },
        "dto.AnalyticsEntry": {
            "type": "object",
            "properties": {"regionCode": {"type": "integer"}, "regionName": {"type": "string"}, "count": {"type": "integer"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        }
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Records Management API",
	Description:      "Regional reimbursement records with per-scope serials and role-based visibility.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
