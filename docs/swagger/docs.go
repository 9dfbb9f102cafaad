// Package swagger registers the OpenAPI document served at /swagger.
package swagger

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
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/picking/runs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["picking"],
                "summary": "List Picking Runs",
                "responses": {"200": {"description": "Run ids"}}
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["picking"],
                "summary": "Create Picking Run",
                "parameters": [
                    {"type": "file", "description": "Web order export", "name": "web", "in": "formData", "required": true},
                    {"type": "file", "description": "Manual order template", "name": "manual", "in": "formData", "required": true},
                    {"type": "file", "description": "SKU master list", "name": "master", "in": "formData", "required": true},
                    {"type": "file", "description": "Site table", "name": "sites", "in": "formData"},
                    {"type": "string", "description": "Record distributions (default true)", "name": "ledger", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Run report", "schema": {"$ref": "#/definitions/picking.RunReport"}},
                    "400": {"description": "Unreadable or incomplete input"},
                    "502": {"description": "Site store unavailable"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/picking/runs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["picking"],
                "summary": "Get Picking Run",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Run report", "schema": {"$ref": "#/definitions/picking.RunReport"}},
                    "404": {"description": "Run not found"}
                }
            },
            "delete": {
                "tags": ["picking"],
                "summary": "Delete Picking Run",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Run not found"}}
            }
        },
        "/picking/runs/{id}/files/{name}": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["picking"],
                "summary": "Download Report",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "name", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Workbook", "schema": {"type": "file"}}, "404": {"description": "File not found"}}
            }
        },
        "/sites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sites"],
                "summary": "List Sites",
                "responses": {
                    "200": {"description": "Sites", "schema": {"type": "array", "items": {"$ref": "#/definitions/reconcile.SiteRecord"}}},
                    "502": {"description": "Site store unavailable"}
                }
            }
        },
        "/sites/import": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["sites"],
                "summary": "Import Sites",
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"200": {"description": "Import counts"}, "400": {"description": "Invalid sheet"}, "409": {"description": "Import not supported"}}
            }
        },
        "/sites/{code}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sites"],
                "summary": "Get Site",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"type": "string", "description": "new, legacy, or empty for either", "name": "space", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Site", "schema": {"$ref": "#/definitions/reconcile.SiteRecord"}},
                    "404": {"description": "Site not found"}
                }
            }
        },
        "/integrity": {
            "get": {"produces": ["application/json"], "tags": ["integrity"], "summary": "Run All Integrity Checks", "responses": {"200": {"description": "Combined Report"}}}
        },
        "/integrity/database": {
            "get": {
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Database",
                "parameters": [{"type": "boolean", "name": "fix", "in": "query"}],
                "responses": {"200": {"description": "Database Report"}, "503": {"description": "No database configured"}}
            }
        },
        "/integrity/storage": {
            "get": {
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Storage",
                "parameters": [{"type": "boolean", "name": "fix", "in": "query"}],
                "responses": {"200": {"description": "Storage Report"}}
            }
        }
    },
    "definitions": {
        "reconcile.SiteRecord": {
            "type": "object",
            "properties": {
                "new_code": {"type": "string"},
                "legacy_code": {"type": "string"},
                "warehouse": {"type": "string"},
                "name": {"type": "string"},
                "company": {"type": "string"}
            }
        },
        "reconcile.Summary": {
            "type": "object",
            "properties": {
                "total_lines": {"type": "integer"},
                "web_lines": {"type": "integer"},
                "manual_lines": {"type": "integer"},
                "valid_lines": {"type": "integer"},
                "invalid_sku": {"type": "integer"},
                "invalid_site": {"type": "integer"},
                "both_invalid": {"type": "integer"},
                "warehouses": {"type": "integer"}
            }
        },
        "reconcile.LedgerSummary": {
            "type": "object",
            "properties": {"inserted": {"type": "integer"}, "skipped": {"type": "integer"}}
        },
        "picking.RunReport": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "summary": {"$ref": "#/definitions/reconcile.Summary"},
                "ledger": {"$ref": "#/definitions/reconcile.LedgerSummary"},
                "files": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Picklist API",
	Description:      "Reconciles station orders into per-warehouse picking lists.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
