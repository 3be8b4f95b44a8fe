// Package docs holds the OpenAPI document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Focusboard Support",
            "url": "https://github.com/taskmaster/focusboard"
        },
        "license": {
            "name": "MIT",
            "url": "https://github.com/taskmaster/focusboard/blob/main/LICENSE"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a password account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ports.RegisterResponse"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Rotate a refresh token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Revoke every refresh token of the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/auth/google/login": {
            "get": {
                "tags": ["auth"],
                "summary": "Start Google sign-in",
                "responses": {
                    "307": {"description": "Redirect to Google"},
                    "503": {"description": "Google sign-in is not configured", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/auth/google/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "Finish Google sign-in",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "code", "type": "string", "required": true},
                    {"in": "query", "name": "state", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get the caller's profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update the caller's display name",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.User"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}}
                }
            }
        },
        "/todos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["todos"],
                "summary": "List the caller's todos, newest first",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Todo"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["todos"],
                "summary": "Create a todo",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.CreateTodoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Todo"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}}
                }
            }
        },
        "/todos/bulk": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["todos"],
                "summary": "Create up to 100 todos in one transaction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/ports.CreateTodoRequest"}}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ports.BulkCreateResponse"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["todos"],
                "summary": "Apply one change to many todos",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.BulkUpdateTodosRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.BulkUpdateResponse"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}}
                }
            }
        },
        "/todos/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["todos"],
                "summary": "Update a todo",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateTodoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Todo"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.DeleteTodoResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/analytics/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Gamification stats for the caller",
                "parameters": [
                    {"in": "query", "name": "tz", "type": "string", "description": "IANA time zone"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analytics.Stats"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}}
                }
            }
        },
        "/analytics/heatmap": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Daily completion heatmap for the caller",
                "parameters": [
                    {"in": "query", "name": "days", "type": "integer", "description": "Window length in days (1-730)"},
                    {"in": "query", "name": "tz", "type": "string", "description": "IANA time zone"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.HeatmapResponse"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}}
                }
            }
        },
        "/ai/suggestions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ai"],
                "summary": "Productivity suggestions for open todos",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/ports.SuggestionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.SuggestionsResponse"}},
                    "500": {"description": "Unparseable model output", "schema": {"$ref": "#/definitions/ports.ParseErrorResponse"}},
                    "503": {"description": "AI assistant is not configured", "schema": {"$ref": "#/definitions/ports.MessageResponse"}},
                    "504": {"description": "AI request timed out", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/ai/breakdown": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ai"],
                "summary": "Split a task into sub-tasks",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.BreakdownRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.TaskBreakdown"}},
                    "400": {"description": "Invalid data", "schema": {"$ref": "#/definitions/ports.ValidationErrorResponse"}},
                    "500": {"description": "Unparseable model output", "schema": {"$ref": "#/definitions/ports.ParseErrorResponse"}}
                }
            }
        },
        "/ai/smart-plan": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ai"],
                "summary": "Suggested execution order for tasks",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.SmartPlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.SmartPlan"}}
                }
            }
        }
    },
    "definitions": {
        "entities.FieldIssue": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "entities.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "xp": {"type": "integer"},
                "level": {"type": "integer"},
                "currentStreak": {"type": "integer"},
                "longestStreak": {"type": "integer"},
                "lastActiveDate": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "entities.Todo": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "userId": {"type": "string", "format": "uuid"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "priority": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
                "isCompleted": {"type": "boolean"},
                "dueDate": {"type": "string", "format": "date-time"},
                "completedAt": {"type": "string", "format": "date-time"},
                "estimatedTime": {"type": "integer"},
                "timeSpent": {"type": "integer"},
                "isAiSuggested": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "entities.Suggestion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["productivity", "scheduling", "prioritization", "habits", "focus"]},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "reasoning": {"type": "string"},
                "actionSteps": {"type": "array", "items": {"type": "string"}},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]},
                "estimatedImpact": {"type": "string"}
            }
        },
        "entities.TaskBreakdown": {
            "type": "object",
            "properties": {
                "subTasks": {"type": "array", "items": {"type": "string"}}
            }
        },
        "entities.SmartPlan": {
            "type": "object",
            "properties": {
                "reasoning": {"type": "string"},
                "plan": {"type": "array", "items": {"type": "string"}}
            }
        },
        "analytics.Day": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "count": {"type": "integer"},
                "xp": {"type": "integer"},
                "intensity": {"type": "integer", "minimum": 0, "maximum": 4}
            }
        },
        "analytics.Stats": {
            "type": "object",
            "properties": {
                "totalXP": {"type": "integer"},
                "level": {"type": "integer"},
                "currentStreak": {"type": "integer"},
                "longestStreak": {"type": "integer"},
                "xpToNextLevel": {"type": "integer"},
                "xpForCurrentLevel": {"type": "integer"},
                "totalTasksCompleted": {"type": "integer"},
                "pomodoroSessions": {"type": "integer"},
                "tasksCompletedToday": {"type": "integer"},
                "weeklyProgress": {"type": "array", "items": {"type": "integer"}},
                "heatmapData": {"type": "array", "items": {"$ref": "#/definitions/analytics.Day"}}
            }
        },
        "http.HeatmapResponse": {
            "type": "object",
            "properties": {
                "timezone": {"type": "string"},
                "days": {"type": "integer"},
                "heatmap": {"type": "array", "items": {"$ref": "#/definitions/analytics.Day"}}
            }
        },
        "ports.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string", "minLength": 8, "maxLength": 72}
            }
        },
        "ports.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string", "format": "uuid"},
                        "email": {"type": "string"},
                        "name": {"type": "string"}
                    }
                }
            }
        },
        "ports.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string"}
            }
        },
        "ports.RefreshTokenRequest": {
            "type": "object",
            "required": ["refreshToken"],
            "properties": {
                "refreshToken": {"type": "string"}
            }
        },
        "ports.AuthResponse": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "refreshToken": {"type": "string"},
                "tokenType": {"type": "string"},
                "expiresIn": {"type": "integer"},
                "user": {"$ref": "#/definitions/entities.User"}
            }
        },
        "ports.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100}
            }
        },
        "ports.CreateTodoRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 500},
                "description": {"type": "string", "maxLength": 5000},
                "dueDate": {"type": "string", "format": "date-time"},
                "priority": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
                "estimatedTime": {"type": "integer", "minimum": 1},
                "isAiSuggested": {"type": "boolean"}
            }
        },
        "ports.UpdateTodoRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 500},
                "description": {"type": "string", "maxLength": 5000},
                "dueDate": {"type": "string", "format": "date-time"},
                "priority": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
                "isCompleted": {"type": "boolean"},
                "estimatedTime": {"type": "integer", "minimum": 1},
                "timeSpent": {"type": "integer", "minimum": 0}
            }
        },
        "ports.BulkUpdateTodosRequest": {
            "type": "object",
            "required": ["todoIds"],
            "properties": {
                "todoIds": {"type": "array", "minItems": 1, "maxItems": 100, "items": {"type": "string", "format": "uuid"}},
                "updates": {
                    "type": "object",
                    "properties": {
                        "isCompleted": {"type": "boolean"},
                        "priority": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
                        "dueDate": {"type": "string", "format": "date-time"},
                        "isAiSuggested": {"type": "boolean"}
                    }
                }
            }
        },
        "ports.BulkCreateResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "todos": {"type": "array", "items": {"$ref": "#/definitions/entities.Todo"}}
            }
        },
        "ports.BulkUpdateResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"}
            }
        },
        "ports.DeleteTodoResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "deleted": {"type": "object", "properties": {"count": {"type": "integer"}}}
            }
        },
        "ports.SuggestionsRequest": {
            "type": "object",
            "properties": {
                "todos": {"type": "array", "items": {"$ref": "#/definitions/entities.Todo"}},
                "context": {"type": "string", "maxLength": 2000}
            }
        },
        "ports.SuggestionsResponse": {
            "type": "object",
            "properties": {
                "suggestions": {"type": "array", "items": {"$ref": "#/definitions/entities.Suggestion"}}
            }
        },
        "ports.BreakdownRequest": {
            "type": "object",
            "properties": {
                "taskTitle": {"type": "string", "minLength": 10, "maxLength": 500},
                "taskDescription": {"type": "string", "maxLength": 5000}
            }
        },
        "ports.SmartPlanRequest": {
            "type": "object",
            "properties": {
                "tasks": {
                    "type": "array",
                    "maxItems": 100,
                    "items": {
                        "type": "object",
                        "required": ["id"],
                        "properties": {
                            "id": {"type": "string"},
                            "title": {"type": "string"},
                            "description": {"type": "string"},
                            "priority": {"type": "string"},
                            "dueDate": {"type": "string", "format": "date-time"},
                            "estimatedTime": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "ports.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "ports.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "issues": {"type": "array", "items": {"$ref": "#/definitions/entities.FieldIssue"}}
            }
        },
        "ports.ParseErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "rawResponse": {"type": "string"}
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
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Focusboard API",
	Description:      "Personal todo board with gamified analytics and an AI planning assistant",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
