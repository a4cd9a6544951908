package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Work Control API",
        "description": "Aggregated engineering work tracking and correction/closure request workflow",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and token issuance"},
        {"name": "Works", "description": "Aggregated work record views"},
        {"name": "Divisions", "description": "Division catalogue and per-division artifacts"},
        {"name": "Requests", "description": "Correction and closure request workflow"},
        {"name": "Users", "description": "Account and allowed-division management"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/works": {
            "get": {
                "tags": ["Works"],
                "summary": "List aggregated work records",
                "parameters": [
                    {"name": "divisions", "in": "query", "type": "string", "description": "Comma separated division ids; defaults to the caller's allowed set"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Division outside the caller's allowed set"}
                }
            }
        },
        "/divisions": {
            "get": {
                "tags": ["Divisions"],
                "summary": "List all divisions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/divisions/{id}/executors": {
            "get": {
                "tags": ["Divisions"],
                "summary": "List distinct executor names of a division",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/divisions/{id}/approvers": {
            "get": {
                "tags": ["Divisions"],
                "summary": "List distinct approver names of a division",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/divisions/{id}/cache": {
            "delete": {
                "tags": ["Divisions"],
                "summary": "Drop the cached aggregation artifacts of a division",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Cache cleared"}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "List requests raised against a work record",
                "parameters": [
                    {"name": "document", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a correction or closure request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateWorkRequestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Sender or receiver not permitted for this work"}
                }
            }
        },
        "/requests/inbox": {
            "get": {
                "tags": ["Requests"],
                "summary": "List pending requests addressed to the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/{id}": {
            "patch": {
                "tags": ["Requests"],
                "summary": "Edit a pending request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateWorkRequestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Request already resolved"}
                }
            },
            "delete": {
                "tags": ["Requests"],
                "summary": "Withdraw a pending request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "412": {"description": "Request already resolved"}
                }
            }
        },
        "/requests/{id}/resolve": {
            "post": {
                "tags": ["Requests"],
                "summary": "Accept or decline a pending request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResolveWorkRequestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Request already resolved"}
                }
            }
        },
        "/users": {
            "post": {
                "tags": ["Users"],
                "summary": "Create a user account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get a user account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown user"}
                }
            }
        },
        "/users/{id}/divisions": {
            "get": {
                "tags": ["Users"],
                "summary": "List the divisions a user may access",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Users"],
                "summary": "Replace the divisions a user may access",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveAllowedDivisionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateWorkRequestRequest": {
            "type": "object",
            "properties": {
                "documentNumber": {"type": "string"},
                "type": {"type": "string", "enum": ["correction1", "correction2", "correction3", "fact"]},
                "receiver": {"type": "string"},
                "proposedDate": {"type": "string", "format": "date-time"},
                "note": {"type": "string"}
            },
            "required": ["documentNumber", "type", "receiver"]
        },
        "UpdateWorkRequestRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["correction1", "correction2", "correction3", "fact"]},
                "receiver": {"type": "string"},
                "proposedDate": {"type": "string", "format": "date-time"},
                "note": {"type": "string"}
            },
            "required": ["type", "receiver"]
        },
        "ResolveWorkRequestRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["Accepted", "Declined"]}
            },
            "required": ["status"]
        },
        "RegisterUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "fullName": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "EXECUTOR", "CONTROLLER", "APPROVER"]},
                "divisionIds": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["email", "password", "fullName", "role"]
        },
        "SaveAllowedDivisionsRequest": {
            "type": "object",
            "properties": {
                "divisionIds": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["divisionIds"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
