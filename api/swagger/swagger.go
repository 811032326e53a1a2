package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduSpark API",
        "description": "Backend for the EduSpark online learning marketplace",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Health"},
        {"name": "Authentication"},
        {"name": "Users"},
        {"name": "Classes"},
        {"name": "TeacherRequests"},
        {"name": "Assignments"},
        {"name": "Enrollments"},
        {"name": "Feedback"},
        {"name": "Articles"},
        {"name": "Reports"},
        {"name": "Payments"}
    ],
    "paths": {
        "/": {"get": {"tags": ["Health"], "summary": "Liveness text", "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["Health"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "MongoDB unreachable"}}
            }
        },
        "/jwt": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Issue access token",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/Identity"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}}}
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer", "description": "Zero-indexed page"},
                    {
                        "name": "size",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size; all results when omitted"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Register user on first sign-in",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateUserRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/InsertResult"}}}
            }
        },
        "/users_count": {
            "get": {
                "tags": ["Users"],
                "summary": "Count users",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "search", "in": "query", "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CountResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get own profile",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "patch": {
                "tags": ["Users"],
                "summary": "Promote user to admin",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UpdateResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/role/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get own role",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {"role": {"type": "string", "enum": ["admin", "teacher", "student", "unknown"]}}
                        }
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List all classes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "description": "Zero-indexed page"},
                    {
                        "name": "size",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size; all results when omitted"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateClassRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InsertResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes_count": {
            "get": {
                "tags": ["Classes"],
                "summary": "Count all classes",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CountResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Update own class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateClassRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UpdateResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete own class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DeleteResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/status/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Review class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/StatusRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UpdateResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/approved_classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List approved classes",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer", "description": "Zero-indexed page"},
                    {
                        "name": "size",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size; all results when omitted"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}
                    }
                }
            }
        },
        "/approved_classes_count": {
            "get": {
                "tags": ["Classes"],
                "summary": "Count approved classes",
                "parameters": [{"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CountResult"}}}
            }
        },
        "/teacher_classes/{email}": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes owned by a teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer", "description": "Zero-indexed page"},
                    {
                        "name": "size",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size; all results when omitted"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/single_class/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Class"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/popular_classes": {
            "get": {
                "tags": ["Reports"],
                "summary": "Top approved classes by enrollment",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}
                    }
                }
            }
        },
        "/site_totals": {
            "get": {
                "tags": ["Reports"],
                "summary": "Platform totals",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SiteTotals"}}}
            }
        },
        "/total_classes_data/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Class totals",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassTotals"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/per_day_assignment_submissions/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Submissions made today",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CountResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/reports/popular_classes/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export popular classes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": ["csv", "pdf"],
                        "default": "csv"
                    }
                ],
                "responses": {
                    "200": {"description": "File attachment", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                },
                "produces": ["text/csv", "application/pdf"]
            }
        },
        "/teacher_requests": {
            "get": {
                "tags": ["TeacherRequests"],
                "summary": "List teacher requests",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "description": "Zero-indexed page"},
                    {
                        "name": "size",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size; all results when omitted"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/TeacherRequest"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["TeacherRequests"],
                "summary": "Apply to teach",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SubmitTeacherRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InsertResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/teacher_requests_count": {
            "get": {
                "tags": ["TeacherRequests"],
                "summary": "Count teacher requests",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CountResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/teacher_requests/{id}": {
            "patch": {
                "tags": ["TeacherRequests"],
                "summary": "Review teacher request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/StatusRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UpdateResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assignments": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Create assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InsertResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assignments/{id}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments of a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer", "description": "Zero-indexed page"},
                    {
                        "name": "size",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size; all results when omitted"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "patch": {
                "tags": ["Assignments"],
                "summary": "Submit assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UpdateResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assignments_count/{id}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Count assignments of a class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CountResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/enrolled_classes": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollment records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "description": "Zero-indexed page"},
                    {
                        "name": "size",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size; all results when omitted"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrolledClass"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll in a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/EnrollRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InsertResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/enrolled_classes_ids/{email}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Enrolled class ids",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/my_enrolled_classes/{email}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Enrolled classes",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/feedbacks": {
            "get": {
                "tags": ["Feedback"],
                "summary": "List feedback",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Feedback"}}
                    }
                }
            },
            "post": {
                "tags": ["Feedback"],
                "summary": "Rate a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateFeedbackRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InsertResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/feedback/{id}": {
            "get": {
                "tags": ["Feedback"],
                "summary": "List feedback of a class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Feedback"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/articles": {
            "get": {
                "tags": ["Articles"],
                "summary": "List articles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Article"}}
                    }
                }
            }
        },
        "/create-payment-intent": {
            "post": {
                "tags": ["Payments"],
                "summary": "Create payment intent",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PaymentIntentRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PaymentIntentResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "502": {"description": "Payment provider error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorBody": {"type": "object", "properties": {"message": {"type": "string"}}},
        "Identity": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "photo": {"type": "string"}},
            "required": ["email"]
        },
        "TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "CreateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "photo": {"type": "string"},
                "phone": {"type": "string"}
            },
            "required": ["email"]
        },
        "User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "photo": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "teacher", "student"]},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "image": {"type": "string"}
            },
            "required": ["title"]
        },
        "UpdateClassRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "StatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["pending", "approved", "rejected"]}},
            "required": ["status"]
        },
        "Class": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "title": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "totalEnrollment": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "SubmitTeacherRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "image": {"type": "string"},
                "title": {"type": "string"},
                "experience": {"type": "string", "enum": ["beginner", "mid-level", "experienced"]},
                "category": {"type": "string"}
            },
            "required": ["title", "experience", "category"]
        },
        "TeacherRequest": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "image": {"type": "string"},
                "title": {"type": "string"},
                "experience": {"type": "string"},
                "category": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateAssignmentRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"}
            },
            "required": ["classId", "title", "deadline"]
        },
        "Assignment": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "classId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "submittedEmails": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"email": {"type": "string"}, "date": {"type": "string", "format": "date-time"}}
                    }
                },
                "total_submitted": {"type": "integer"}
            }
        },
        "EnrollRequest": {
            "type": "object",
            "properties": {
                "enrolledClassId": {"type": "string"},
                "transactionId": {"type": "string"},
                "price": {"type": "number"}
            },
            "required": ["enrolledClassId", "transactionId"]
        },
        "EnrolledClass": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "enrolledEmail": {"type": "string"},
                "enrolledClassId": {"type": "string"},
                "transactionId": {"type": "string"},
                "price": {"type": "number"},
                "enrolledAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateFeedbackRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"},
                "title": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "description": {"type": "string"}
            },
            "required": ["classId", "rating", "description"]
        },
        "Feedback": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "classId": {"type": "string"},
                "title": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string"},
                "rating": {"type": "integer"},
                "description": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "Article": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "image": {"type": "string"},
                "author": {"type": "string"},
                "publishedAt": {"type": "string", "format": "date-time"}
            }
        },
        "PaymentIntentRequest": {"type": "object", "properties": {"price": {"type": "number"}}, "required": ["price"]},
        "PaymentIntentResponse": {"type": "object", "properties": {"clientSecret": {"type": "string"}}},
        "SiteTotals": {
            "type": "object",
            "properties": {
                "totalUsers": {"type": "integer"},
                "totalClasses": {"type": "integer"},
                "totalEnrollment": {"type": "integer"}
            }
        },
        "ClassTotals": {
            "type": "object",
            "properties": {
                "totalEnrollment": {"type": "integer"},
                "totalAssignment": {"type": "integer"},
                "totalSubmission": {"type": "integer"}
            }
        },
        "CountResult": {"type": "object", "properties": {"count": {"type": "integer"}}},
        "InsertResult": {
            "type": "object",
            "properties": {
                "acknowledged": {"type": "boolean"},
                "insertedId": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "UpdateResult": {
            "type": "object",
            "properties": {
                "acknowledged": {"type": "boolean"},
                "matchedCount": {"type": "integer"},
                "modifiedCount": {"type": "integer"}
            }
        },
        "DeleteResult": {
            "type": "object",
            "properties": {"acknowledged": {"type": "boolean"}, "deletedCount": {"type": "integer"}}
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
