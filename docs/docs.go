// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag/v2"

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
        "/producers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["producers"],
                "summary": "List producers",
                "operationId": "listProducers",
                "parameters": [
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"maximum": 100, "type": "integer", "default": 20, "name": "page_size", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "description": "Two-letter state code", "name": "state", "in": "query"},
                    {"type": "string", "default": "created_at", "name": "order_by", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "default": "desc", "name": "order_dir", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProducerListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["producers"],
                "summary": "Register a producer",
                "operationId": "createProducer",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProducerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ProducerEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/producers/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["producers"],
                "summary": "Get a producer",
                "operationId": "getProducerById",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProducerEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["producers"],
                "summary": "Update a producer",
                "operationId": "updateProducer",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProducerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProducerEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["producers"],
                "summary": "Remove a producer",
                "operationId": "deleteProducer",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/producers/{id}/harvests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["harvests"],
                "summary": "List a producer's harvests",
                "operationId": "listProducerHarvests",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HarvestListResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["harvests"],
                "summary": "Report a harvest",
                "operationId": "addProducerHarvest",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HarvestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HarvestEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/producers/{id}/harvests/{harvest_id}": {
            "delete": {
                "tags": ["harvests"],
                "summary": "Remove a harvest",
                "operationId": "removeProducerHarvest",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true},
                    {"type": "string", "format": "uuid", "name": "harvest_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard totals",
                "operationId": "getDashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardEnvelope"}}
                }
            }
        },
        "/dashboard/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["dashboard"],
                "summary": "Download the dashboard as a spreadsheet",
                "operationId": "exportDashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}}
                }
            }
        },
        "/system/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Get system information",
                "operationId": "getSystemSystemInfo",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/system/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Ping the API",
                "operationId": "pingSystem",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "ERR_INVALID_DOCUMENT"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "details": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
                    }
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/ErrorInfo"}
            }
        },
        "Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "HarvestRequest": {
            "type": "object",
            "properties": {
                "year": {"type": "integer", "example": 2024},
                "crops": {"type": "array", "items": {"type": "string"}, "example": ["Soja", "Milho"]}
            }
        },
        "CreateProducerRequest": {
            "type": "object",
            "required": ["name", "document", "farm_name", "city", "state"],
            "properties": {
                "name": {"type": "string", "maxLength": 200, "example": "Maria Souza"},
                "document": {"type": "string", "example": "529.982.247-25"},
                "farm_name": {"type": "string", "maxLength": 200, "example": "Fazenda Boa Vista"},
                "city": {"type": "string", "maxLength": 100, "example": "Sorriso"},
                "state": {"type": "string", "example": "MT"},
                "total_area": {"type": "number", "minimum": 0, "example": 1000},
                "arable_area": {"type": "number", "minimum": 0, "example": 600},
                "vegetation_area": {"type": "number", "minimum": 0, "example": 300},
                "harvests": {"type": "array", "items": {"$ref": "#/definitions/HarvestRequest"}}
            }
        },
        "UpdateProducerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "document": {"type": "string"},
                "farm_name": {"type": "string", "maxLength": 200},
                "city": {"type": "string", "maxLength": 100},
                "state": {"type": "string"},
                "total_area": {"type": "number", "minimum": 0},
                "arable_area": {"type": "number", "minimum": 0},
                "vegetation_area": {"type": "number", "minimum": 0},
                "harvests": {"type": "array", "items": {"$ref": "#/definitions/HarvestRequest"}}
            }
        },
        "HarvestCrop": {
            "type": "object",
            "properties": {"id": {"type": "string", "format": "uuid"}, "crop_name": {"type": "string"}}
        },
        "Harvest": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "producer_id": {"type": "string", "format": "uuid"},
                "year": {"type": "integer"},
                "crops": {"type": "array", "items": {"$ref": "#/definitions/HarvestCrop"}},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "Producer": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "document": {"type": "string"},
                "document_kind": {"type": "string", "enum": ["CPF", "CNPJ"]},
                "farm_name": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "total_area": {"type": "string", "example": "1000"},
                "arable_area": {"type": "string", "example": "600"},
                "vegetation_area": {"type": "string", "example": "300"},
                "harvests": {"type": "array", "items": {"$ref": "#/definitions/Harvest"}},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"},
                "version": {"type": "integer"}
            }
        },
        "ProducerEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/Producer"}}
        },
        "ProducerListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/Producer"}},
                "meta": {"$ref": "#/definitions/Meta"}
            }
        },
        "HarvestEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/Harvest"}}
        },
        "HarvestListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/Harvest"}}
            }
        },
        "Dashboard": {
            "type": "object",
            "properties": {
                "total_farms": {"type": "integer"},
                "total_area": {"type": "number"},
                "state_count": {"type": "object", "additionalProperties": {"type": "integer"}},
                "crop_count": {"type": "object", "additionalProperties": {"type": "integer"}},
                "harvests_by_year": {
                    "type": "object",
                    "additionalProperties": {"type": "object", "additionalProperties": {"type": "integer"}}
                },
                "soil_use": {
                    "type": "object",
                    "properties": {
                        "total_area": {"type": "number"},
                        "arable_area": {"type": "number"},
                        "vegetation_area": {"type": "number"}
                    }
                }
            }
        },
        "DashboardEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/Dashboard"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Agro Backend API",
	Description:      "Rural producer registry with harvest tracking and a farm dashboard",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
