// Package doc registers the OpenAPI document served at /swagger. Regenerate with `mage spec`.
package doc

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/credential": {
            "post": {
                "description": "Validates the request, prepares a CredentialCreate transaction signed by the requester and hands it to the signing service",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["CredentialAPI"],
                "summary": "Prepare CredentialCreate",
                "parameters": [
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/router.CreateCredentialRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.CreateCredentialResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}}
                }
            }
        },
        "/credential/accept": {
            "post": {
                "description": "Validates the request, prepares a CredentialAccept transaction signed by the subject and hands it to the signing service",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["CredentialAPI"],
                "summary": "Prepare CredentialAccept",
                "parameters": [
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/router.AcceptCredentialRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.AcceptCredentialResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}}
                }
            }
        },
        "/payloads": {
            "get": {
                "description": "List journaled signing requests, newest first",
                "produces": ["application/json"],
                "tags": ["PayloadAPI"],
                "summary": "List signing requests",
                "parameters": [
                    {"type": "number", "description": "page size", "name": "pageSize", "in": "query"},
                    {"type": "string", "description": "page token", "name": "pageToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.ListPayloadsResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}}
                }
            }
        },
        "/payloads/{uuid}": {
            "get": {
                "description": "Get a journaled signing request by the uuid the signing service returned",
                "produces": ["application/json"],
                "tags": ["PayloadAPI"],
                "summary": "Get signing request",
                "parameters": [
                    {"type": "string", "description": "signing request uuid", "name": "uuid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.GetPayloadResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/framework.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Liveness and ledger connectivity",
                "produces": ["text/plain"],
                "tags": ["HealthCheck"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/readiness": {
            "get": {
                "description": "Readiness of every service",
                "produces": ["application/json"],
                "tags": ["Readiness"],
                "summary": "Readiness",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/router.GetReadinessResponse"}}}
            }
        }
    },
    "definitions": {
        "framework.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "detail": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/framework.FieldError"}}
            }
        },
        "framework.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "router.CreateCredentialRequest": {
            "type": "object",
            "required": ["credentialType", "requester", "subject"],
            "properties": {
                "subject": {"type": "string"},
                "credentialType": {"type": "string"},
                "credentialTypeEncoded": {"type": "boolean"},
                "uri": {"type": "string"},
                "requester": {"type": "string"}
            }
        },
        "router.AcceptCredentialRequest": {
            "type": "object",
            "required": ["credentialType", "issuer", "subject"],
            "properties": {
                "issuer": {"type": "string"},
                "subject": {"type": "string"},
                "credentialType": {"type": "string"},
                "credentialTypeEncoded": {"type": "boolean"}
            }
        },
        "router.CreateCredentialResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "message": {"type": "string"},
                "preparedTransaction": {"$ref": "#/definitions/xrpl.CredentialCreate"},
                "signUrl": {"type": "string"},
                "uuid": {"type": "string"}
            }
        },
        "router.AcceptCredentialResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "message": {"type": "string"},
                "preparedTransaction": {"$ref": "#/definitions/xrpl.CredentialAccept"},
                "signUrl": {"type": "string"},
                "uuid": {"type": "string"}
            }
        },
        "router.GetPayloadResponse": {
            "type": "object",
            "properties": {
                "uuid": {"type": "string"},
                "transactionType": {"type": "string"},
                "account": {"type": "string"},
                "signUrl": {"type": "string"},
                "preparedTransaction": {"type": "object"},
                "submitOnSign": {"type": "boolean"},
                "expire": {"type": "integer"},
                "createdAt": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "router.ListPayloadsResponse": {
            "type": "object",
            "properties": {
                "payloads": {"type": "array", "items": {"$ref": "#/definitions/router.GetPayloadResponse"}},
                "nextPageToken": {"type": "string"}
            }
        },
        "router.GetReadinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "object"},
                "serviceStatuses": {"type": "object"}
            }
        },
        "xrpl.CredentialCreate": {
            "type": "object",
            "properties": {
                "TransactionType": {"type": "string"},
                "Account": {"type": "string"},
                "Subject": {"type": "string"},
                "CredentialType": {"type": "string"},
                "URI": {"type": "string"}
            }
        },
        "xrpl.CredentialAccept": {
            "type": "object",
            "properties": {
                "TransactionType": {"type": "string"},
                "Account": {"type": "string"},
                "Issuer": {"type": "string"},
                "CredentialType": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Credential Service API",
	Description:      "Prepares XRPL CredentialCreate and CredentialAccept transactions and hands them to XUMM for signing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
