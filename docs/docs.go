// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/token": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain an access token",
                "parameters": [
                    {"type": "string", "description": "Account email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/accommodations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accommodations"],
                "summary": "List accommodations",
                "parameters": [
                    {"type": "string", "description": "Location substring", "name": "location", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.accommodationResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accommodations"],
                "summary": "Create an accommodation",
                "parameters": [
                    {"description": "Listing", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.accommodationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.accommodationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/accommodations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accommodations"],
                "summary": "Get an accommodation",
                "parameters": [
                    {"type": "integer", "description": "Accommodation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accommodationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accommodations"],
                "summary": "Update an accommodation",
                "parameters": [
                    {"type": "integer", "description": "Accommodation ID", "name": "id", "in": "path", "required": true},
                    {"description": "Listing", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.accommodationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accommodationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accommodations"],
                "summary": "Delete an accommodation",
                "parameters": [
                    {"type": "integer", "description": "Accommodation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accommodationResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/flights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "List flights",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Flight"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "Create a flight",
                "parameters": [
                    {"description": "Flight", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.flightRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Flight"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/flights/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "Get a flight",
                "parameters": [
                    {"type": "integer", "description": "Flight ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Flight"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/bookings/accommodations/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book an accommodation",
                "parameters": [
                    {"type": "integer", "description": "Accommodation ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Replays the first booking made with this key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Stay dates", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.accommodationBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.AccommodationBooking"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/bookings/flights/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a flight",
                "parameters": [
                    {"type": "integer", "description": "Flight ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Replays the first booking made with this key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Travel date", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.flightBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.FlightBooking"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/bookings/my-bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List my bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.myBookingsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List accommodation bookings",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AccommodationBooking"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/api-root": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "API banner",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.AccommodationBooking": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "start_date": {"type": "string", "example": "2026-07-01"},
                "end_date": {"type": "string", "example": "2026-07-05"},
                "status": {"type": "string", "example": "pending"},
                "user_id": {"type": "integer"},
                "accommodation_id": {"type": "integer"}
            }
        },
        "domain.FlightBooking": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "booking_date": {"type": "string", "example": "2026-07-01"},
                "status": {"type": "string", "example": "pending"},
                "user_id": {"type": "integer"},
                "flight_id": {"type": "integer"}
            }
        },
        "domain.Flight": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "departure_airport": {"type": "string"},
                "arrival_airport": {"type": "string"},
                "departure_time": {"type": "string"},
                "arrival_time": {"type": "string"},
                "price": {"type": "integer"}
            }
        },
        "handler.accommodationBookingRequest": {
            "type": "object",
            "required": ["start_date", "end_date"],
            "properties": {
                "start_date": {"type": "string", "example": "2026-07-01"},
                "end_date": {"type": "string", "example": "2026-07-05"}
            }
        },
        "handler.accommodationRequest": {
            "type": "object",
            "required": ["name", "location"],
            "properties": {
                "name": {"type": "string"},
                "location": {"type": "string"},
                "price": {"type": "integer", "minimum": 0},
                "description": {"type": "string"}
            }
        },
        "handler.accommodationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "price": {"type": "integer"},
                "description": {"type": "string"},
                "owner_id": {"type": "integer"},
                "owner": {"$ref": "#/definitions/handler.userResponse"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.flightBookingRequest": {
            "type": "object",
            "required": ["booking_date"],
            "properties": {
                "booking_date": {"type": "string", "example": "2026-07-01"}
            }
        },
        "handler.flightRequest": {
            "type": "object",
            "required": ["departure_airport", "arrival_airport", "departure_time", "arrival_time"],
            "properties": {
                "departure_airport": {"type": "string"},
                "arrival_airport": {"type": "string"},
                "departure_time": {"type": "string"},
                "arrival_time": {"type": "string"},
                "price": {"type": "integer", "minimum": 0}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.myBookingsResponse": {
            "type": "object",
            "properties": {
                "accommodations": {"type": "array", "items": {"$ref": "#/definitions/domain.AccommodationBooking"}},
                "flights": {"type": "array", "items": {"$ref": "#/definitions/domain.FlightBooking"}}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"type": "object"}}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Trip Backend API",
	Description:      "Accommodation and flight booking backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
