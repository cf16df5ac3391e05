package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Feedback API",
        "description": "Role-scoped feedback and complaint service for an academic institution",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Sessions and registration"},
        {"name": "Users", "description": "Staff account provisioning"},
        {"name": "Forms", "description": "Feedback form management"},
        {"name": "Feedback", "description": "Form responses"},
        {"name": "Complaints", "description": "Student grievances"},
        {"name": "Subjects", "description": "Subject catalog"},
        {"name": "Faculty", "description": "Faculty directory"},
        {"name": "Replies", "description": "Staff replies to students"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
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
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username taken"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current session info",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users visible to the actor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create a staff account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Delegation not allowed"}
                }
            }
        },
        "/forms": {
            "post": {
                "tags": ["Forms"],
                "summary": "Create a feedback form",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FormCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Target outside the actor's scope"}
                }
            }
        },
        "/forms/category/{category}": {
            "get": {
                "tags": ["Forms"],
                "summary": "List forms visible in a category",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "category", "in": "path", "required": true, "type": "string", "enum": ["academics", "sports", "hostel"]},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "courseCode", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/forms/{id}": {
            "get": {
                "tags": ["Forms"],
                "summary": "Fetch a form",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Forms"],
                "summary": "Delete a form",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/feedback": {
            "post": {
                "tags": ["Feedback"],
                "summary": "Submit a form response",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not eligible"},
                    "409": {"description": "Already submitted"}
                }
            }
        },
        "/feedback/category/{category}": {
            "get": {
                "tags": ["Feedback"],
                "summary": "List responses the actor may review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "category", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/feedback/category/{category}/export": {
            "get": {
                "tags": ["Feedback"],
                "summary": "Export visible responses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "category", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/complaints": {
            "post": {
                "tags": ["Complaints"],
                "summary": "File a complaint",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Blocked"}
                }
            }
        },
        "/complaints/category/{category}": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List complaints the actor may review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "category", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/complaints/blocks": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List complaint blocks",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Complaints"],
                "summary": "Block a student or a whole category",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create a subject",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty": {
            "get": {
                "tags": ["Faculty"],
                "summary": "List faculty members",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/replies": {
            "post": {
                "tags": ["Replies"],
                "summary": "Reply to a student",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/replies/mine": {
            "get": {
                "tags": ["Replies"],
                "summary": "List replies to the current student",
                "security": [{"BearerAuth": []}],
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
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "department": {"type": "string"},
                "year": {"type": "integer"},
                "student_id": {"type": "string"}
            },
            "required": ["username", "password", "full_name"]
        },
        "CreateUserRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "department_ids": {"type": "array", "items": {"type": "string"}},
                "subject_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["username", "password", "full_name", "role"]
        },
        "FormCreateRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "enum": ["academics", "sports", "hostel"]},
                "title": {"type": "string"},
                "questions": {"type": "object"},
                "scopeType": {"type": "string"},
                "scopeIds": {"type": "array", "items": {"type": "string"}},
                "sendToAll": {"type": "boolean"},
                "targetYear": {"type": "integer"},
                "targetSubjectId": {"type": "string"},
                "targetDepartmentIds": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["category", "title"]
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
