package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Hudur API",
        "description": "School attendance delay tracking service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Admin login"},
        {"name": "Uploads", "description": "Attendance log and roster ingestion"},
        {"name": "Records", "description": "Attendance record history"},
        {"name": "Students", "description": "Roster management and per-student reports"},
        {"name": "Statistics", "description": "Delay rollups"},
        {"name": "Notices", "description": "Parent notice tracking"},
        {"name": "Exports", "description": "CSV and PDF report generation"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate the admin account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/uploads/attendance": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload attendance log files",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "files", "in": "formData", "type": "file", "required": true},
                    {"name": "default_date", "in": "formData", "type": "string", "description": "Fallback date (YYYY-MM-DD)"},
                    {"name": "start_time", "in": "formData", "type": "string", "description": "School-day start for this batch (HH:MM:SS)"}
                ],
                "responses": {
                    "200": {"description": "Batch outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/uploads/roster": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload roster workbooks",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "files", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Batch outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/records": {
            "get": {
                "tags": ["Records"],
                "summary": "List attendance records",
                "parameters": [
                    {"name": "query", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Records"],
                "summary": "Delete the entire record history",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/records/{studentId}/{date}": {
            "delete": {
                "tags": ["Records"],
                "summary": "Delete one attendance record",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "date", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List roster students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete the entire roster",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/students/{id}": {
            "delete": {
                "tags": ["Students"],
                "summary": "Delete one roster entry",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/report": {
            "get": {
                "tags": ["Students"],
                "summary": "Per-student delay report",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/overview": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/monthly": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Monthly rollup",
                "parameters": [
                    {"name": "month", "in": "query", "type": "string", "required": true, "description": "YYYY-MM"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/daily": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Per-day rollup",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/weekdays": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Weekday rollup",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/classes": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Per-class rollup",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notices/candidates": {
            "get": {
                "tags": ["Notices"],
                "summary": "List students due a parent notice",
                "parameters": [
                    {"name": "threshold", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notices/ack": {
            "post": {
                "tags": ["Notices"],
                "summary": "Acknowledge a parent notice",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoticeAckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Nothing pending", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/records.csv": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export the record history as CSV",
                "responses": {
                    "200": {"description": "Signed download link", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/monthly.pdf": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export one month's rollup as PDF",
                "parameters": [
                    {"name": "month", "in": "query", "type": "string", "required": true, "description": "YYYY-MM"}
                ],
                "responses": {
                    "200": {"description": "Signed download link", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a generated export via signed token",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "NoticeAckRequest": {
            "type": "object",
            "required": ["student_id", "dates"],
            "properties": {
                "student_id": {"type": "string"},
                "dates": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
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
