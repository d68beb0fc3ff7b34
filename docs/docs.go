// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/meetings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "List meetings",
                "parameters": [
                    {"type": "integer", "description": "Maximum records (1-100, default 20)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meetings/analyze": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Analyze meeting text",
                "parameters": [
                    {"description": "Meeting text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/meeting.AnalyzeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Empty meeting text or invalid reference date"},
                    "502": {"description": "Model reply could not be read or the provider failed"},
                    "503": {"description": "No preferred model is available"}
                }
            }
        },
        "/meetings/analyze-audio": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Analyze meeting audio",
                "parameters": [
                    {"type": "file", "description": "Meeting recording", "name": "audio_file", "in": "formData", "required": true},
                    {"type": "string", "description": "Reference date (YYYY-MM-DD)", "name": "reference_date", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing or unsupported audio file"},
                    "502": {"description": "Transcription or analysis failed"}
                }
            }
        },
        "/meetings/analyze-and-sync": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Analyze meeting text and sync tasks",
                "parameters": [
                    {"description": "Meeting text and optional task database", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/meeting.AnalyzeAndSyncRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Empty meeting text or invalid reference date"},
                    "503": {"description": "Task store not configured or no model available"}
                }
            }
        },
        "/meetings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Get meeting",
                "parameters": [
                    {"type": "string", "description": "Meeting ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Meeting not found"}}
            }
        },
        "/tasks/overdue": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "List overdue tasks",
                "parameters": [{"$ref": "#/parameters/referenceDate"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Task store not configured"}}
            }
        },
        "/tasks/at-risk": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "List at-risk tasks",
                "parameters": [{"$ref": "#/parameters/referenceDate"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Task store not configured"}}
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Task dashboard",
                "parameters": [{"$ref": "#/parameters/referenceDate"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Task store not configured"}}
            }
        },
        "/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "List reports",
                "parameters": [
                    {"type": "integer", "description": "Page size (1-100, default 20)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reports/daily": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "Generate daily report",
                "parameters": [{"$ref": "#/parameters/referenceDate"}],
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Task store query failed"},
                    "503": {"description": "Task store not configured"}
                }
            }
        },
        "/reports/latest": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "Latest report",
                "responses": {"200": {"description": "OK"}, "404": {"description": "No report yet"}}
            }
        },
        "/reports/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "Get report",
                "parameters": [{"$ref": "#/parameters/reportID"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Report not found"}}
            }
        },
        "/reports/{id}/pdf": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["Reports"],
                "summary": "Export report as PDF",
                "parameters": [{"$ref": "#/parameters/reportID"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "404": {"description": "Report not found"}}
            }
        },
        "/reports/{id}/email": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "Email report",
                "parameters": [
                    {"$ref": "#/parameters/reportID"},
                    {"type": "string", "description": "Recipient email", "name": "recipient", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Report not found"},
                    "502": {"description": "Mail delivery failed"}
                }
            }
        },
        "/notifications/alerts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Notifications"],
                "summary": "Send deadline alerts",
                "parameters": [{"$ref": "#/parameters/referenceDate"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Task store not configured"}}
            }
        },
        "/notifications/digest": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Notifications"],
                "summary": "Send daily digest",
                "parameters": [{"$ref": "#/parameters/referenceDate"}],
                "responses": {"200": {"description": "OK"}, "502": {"description": "Delivery failed"}}
            }
        }
    },
    "parameters": {
        "referenceDate": {"type": "string", "description": "Reference date (YYYY-MM-DD, default today)", "name": "reference_date", "in": "query"},
        "reportID": {"type": "string", "description": "Report ID (UUID)", "name": "id", "in": "path", "required": true}
    },
    "definitions": {
        "meeting.AnalyzeRequest": {
            "type": "object",
            "properties": {
                "meeting_text": {"type": "string"},
                "reference_date": {"type": "string"}
            }
        },
        "meeting.AnalyzeAndSyncRequest": {
            "type": "object",
            "properties": {
                "meeting_text": {"type": "string"},
                "reference_date": {"type": "string"},
                "database_id": {"type": "string"}
            }
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
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "ZenAI API",
	Description:      "Meeting analysis, task synchronization, deadline monitoring and notifications",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
