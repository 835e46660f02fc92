package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SportOase API",
        "description": "Slot booking backend for the school gymnasium",
        "version": "1.0.0"
    },
    "basePath": "/api/sportoase",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login, token refresh and session info"},
        {"name": "Slots", "description": "Availability views and the period catalog"},
        {"name": "Bookings", "description": "Slot reservations"},
        {"name": "Blocks", "description": "Admin slot blocking"},
        {"name": "Notifications", "description": "Admin event feed"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the caller's refresh tokens",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/check": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the authenticated user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Not authenticated"}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Slots"],
                "summary": "Availability for one date",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid date"}
                }
            }
        },
        "/slots/week": {
            "get": {
                "tags": ["Slots"],
                "summary": "Availability for a school week",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string", "description": "YYYY-MM-DD, snapped to Monday when missing"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timeslots": {
            "get": {
                "tags": ["Slots"],
                "summary": "List the period catalog",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timeslots/{id}": {
            "patch": {
                "tags": ["Slots"],
                "summary": "Rename a catalog entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTimeSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/book": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Book a slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error, blocked slot or double booking"}
                }
            }
        },
        "/my-bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List the caller's bookings",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List bookings across all teachers",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/bookings/export": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Download bookings as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/bookings/{id}": {
            "delete": {
                "tags": ["Bookings"],
                "summary": "Delete a booking",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "403": {"description": "Not the owner"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/block-slot": {
            "post": {
                "tags": ["Blocks"],
                "summary": "Block a slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BlockSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Already blocked"},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/unblock-slot": {
            "post": {
                "tags": ["Blocks"],
                "summary": "Release a blocked slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnblockSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "Released"},
                    "403": {"description": "Admin only"},
                    "404": {"description": "Slot is not blocked"}
                }
            }
        },
        "/blocked-slots": {
            "get": {
                "tags": ["Blocks"],
                "summary": "List blocked slots",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "unread_only", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/notifications/{id}/mark-read": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark a notification as read",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "Student": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "klasse": {"type": "string"}
            },
            "required": ["name", "klasse"]
        },
        "CreateBookingRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "period": {"type": "integer", "minimum": 1, "maximum": 6},
                "students": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Student"}
                },
                "offer_type": {"type": "string", "enum": ["sport", "games", "outdoor", "other"]},
                "offer_label": {"type": "string"}
            },
            "required": ["date", "period", "students", "offer_type"]
        },
        "BlockSlotRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "period": {"type": "integer", "minimum": 1, "maximum": 6},
                "reason": {"type": "string"}
            },
            "required": ["date", "period"]
        },
        "UnblockSlotRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "period": {"type": "integer", "minimum": 1, "maximum": 6}
            },
            "required": ["date", "period"]
        },
        "UpdateTimeSlotRequest": {
            "type": "object",
            "properties": {
                "label": {"type": "string"}
            },
            "required": ["label"]
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
