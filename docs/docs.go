// Package docs registers the OpenAPI description of the directory API.
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
        "/v1/auth/register": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Register a new account",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.registerRequest"
                        }
                    }
                ]
            }
        },
        "/v1/auth/login": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Login",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.loginRequest"
                        }
                    }
                ]
            }
        },
        "/v1/auth/otp": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Send a one-time code",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "202": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.otpRequest"
                        }
                    }
                ]
            }
        },
        "/v1/auth/logout": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Logout",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/auth/recover": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Request a password reset",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "202": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.recoverRequest"
                        }
                    }
                ]
            }
        },
        "/v1/auth/recover/username": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Recover username",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "202": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.recoverUsernameRequest"
                        }
                    }
                ]
            }
        },
        "/v1/auth/reset": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Reset password",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.resetRequest"
                        }
                    }
                ]
            }
        },
        "/v1/me": {
            "get": {
                "tags": [
                    "me"
                ],
                "summary": "Current principal",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/me/link": {
            "post": {
                "tags": [
                    "me"
                ],
                "summary": "Link a sign-in channel",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.linkRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/me/admin-mode": {
            "put": {
                "tags": [
                    "me"
                ],
                "summary": "Toggle admin mode",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.adminModeRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/businesses": {
            "get": {
                "tags": [
                    "directory"
                ],
                "summary": "List published businesses",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "category",
                        "type": "string"
                    },
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "tags": [
                    "directory"
                ],
                "summary": "Submit a business for review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.businessRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/meetings": {
            "get": {
                "tags": [
                    "directory"
                ],
                "summary": "List published meetings",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "view",
                        "type": "string"
                    },
                    {
                        "in": "query",
                        "name": "type",
                        "type": "string"
                    },
                    {
                        "in": "query",
                        "name": "from",
                        "type": "string"
                    },
                    {
                        "in": "query",
                        "name": "to",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "tags": [
                    "directory"
                ],
                "summary": "Submit a meeting for review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.meetingRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/achievements": {
            "get": {
                "tags": [
                    "directory"
                ],
                "summary": "List published achievements",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "directory"
                ],
                "summary": "Submit an achievement for review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.achievementRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/pending": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Review queue",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/pending/{kind}": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Review queue of one kind",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "kind",
                        "type": "string",
                        "required": true,
                        "description": "businesses, meetings or achievements"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/{kind}/{id}/approve": {
            "post": {
                "tags": [
                    "admin"
                ],
                "summary": "Approve one review level",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "kind",
                        "type": "string",
                        "required": true,
                        "description": "businesses, meetings or achievements"
                    },
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/{kind}/{id}/reject": {
            "post": {
                "tags": [
                    "admin"
                ],
                "summary": "Reject an item",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "kind",
                        "type": "string",
                        "required": true,
                        "description": "businesses, meetings or achievements"
                    },
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/{kind}/{id}/status": {
            "put": {
                "tags": [
                    "admin"
                ],
                "summary": "Override an item's status",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "kind",
                        "type": "string",
                        "required": true,
                        "description": "businesses, meetings or achievements"
                    },
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.statusRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/owner/users": {
            "get": {
                "tags": [
                    "owner"
                ],
                "summary": "List accounts",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/owner/users/{id}/promote": {
            "post": {
                "tags": [
                    "owner"
                ],
                "summary": "Promote to admin",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/owner/users/{id}/demote": {
            "post": {
                "tags": [
                    "owner"
                ],
                "summary": "Demote to user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/owner/users/{id}": {
            "delete": {
                "tags": [
                    "owner"
                ],
                "summary": "Remove an account",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {
                "channel": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "mobile": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            },
            "required": [
                "channel",
                "name"
            ]
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "channel": {
                    "type": "string"
                },
                "identifier": {
                    "type": "string"
                },
                "secret": {
                    "type": "string"
                }
            },
            "required": [
                "channel",
                "identifier",
                "secret"
            ]
        },
        "handler.otpRequest": {
            "type": "object",
            "properties": {
                "mobile": {
                    "type": "string"
                }
            },
            "required": [
                "mobile"
            ]
        },
        "handler.recoverRequest": {
            "type": "object",
            "properties": {
                "identifier": {
                    "type": "string"
                }
            },
            "required": [
                "identifier"
            ]
        },
        "handler.recoverUsernameRequest": {
            "type": "object",
            "properties": {
                "mobile": {
                    "type": "string"
                }
            },
            "required": [
                "mobile"
            ]
        },
        "handler.resetRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "token",
                "password"
            ]
        },
        "handler.linkRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "mobile": {
                    "type": "string"
                }
            }
        },
        "handler.adminModeRequest": {
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                }
            },
            "required": [
                "enabled"
            ]
        },
        "handler.businessRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "owner": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "website": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "category"
            ]
        },
        "handler.meetingRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "time": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "title",
                "date"
            ]
        },
        "handler.achievementRequest": {
            "type": "object",
            "properties": {
                "person": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                }
            },
            "required": [
                "person",
                "title"
            ]
        },
        "handler.statusRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "Community Directory API",
	Description:      "Business, meeting and achievement directory with three-level review.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
