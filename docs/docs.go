// Package docs registers the OpenAPI 2.0 document served at /swagger/*.
// Keep it in sync with the handler annotations when routes change.
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
        "/auth/login": {
            "post": {
                "description": "Returns a session token and sets it as the http-only \"jwt\" cookie.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "description": "Clears the session cookie. Tokens are stateless and stay valid until they expire.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "description": "An already registered email is rejected with 400 USER_ALREADY_EXISTS.",
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "Registration data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/movies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List all movies",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MovieListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "The caller becomes the movie's owner.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Add a movie",
                "parameters": [
                    {
                        "description": "Movie data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.CreateMovieRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MovieResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get a movie by id",
                "parameters": [
                    {"type": "string", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MovieResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Movies owned by other users are reported as not found.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Update one of your movies",
                "parameters": [
                    {"type": "string", "description": "Movie ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.UpdateMovieRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MovieResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Also removes the movie from every watchlist.",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Delete one of your movies",
                "parameters": [
                    {"type": "string", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MovieResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/watchlist": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "List your watchlist",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.WatchlistResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Add a movie to your watchlist",
                "parameters": [
                    {
                        "description": "Watchlist entry",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.AddToWatchlistRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.WatchlistItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/watchlist/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Only the provided fields change.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Update a watchlist item",
                "parameters": [
                    {"type": "string", "description": "Watchlist item ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.UpdateWatchlistRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.WatchlistItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Remove a watchlist item",
                "parameters": [
                    {"type": "string", "description": "Watchlist item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.WatchlistItemResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "debug": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.AddToWatchlistRequest": {
            "type": "object",
            "required": ["movieId"],
            "properties": {
                "movieId": {"type": "string"},
                "note": {"type": "string"},
                "rating": {"type": "integer", "maximum": 10, "minimum": 1},
                "status": {"type": "string"}
            }
        },
        "handler.CreateMovieRequest": {
            "type": "object",
            "required": ["releaseYear", "title"],
            "properties": {
                "genre": {"type": "array", "maxItems": 5, "minItems": 1, "items": {"type": "string"}},
                "overview": {"type": "string", "maxLength": 255, "minLength": 1},
                "posterUrl": {"type": "string"},
                "releaseYear": {"type": "integer", "maximum": 2100, "minimum": 1900},
                "runtime": {"type": "integer", "maximum": 300, "minimum": 1},
                "title": {"type": "string", "maxLength": 255}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.MeResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.MovieListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Movie"}},
                "message": {"type": "string"}
            }
        },
        "handler.MovieResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/model.Movie"},
                "message": {"type": "string"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "minLength": 2},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handler.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.UpdateMovieRequest": {
            "type": "object",
            "properties": {
                "genre": {"type": "array", "maxItems": 5, "minItems": 1, "items": {"type": "string"}},
                "overview": {"type": "string", "maxLength": 255, "minLength": 1},
                "posterUrl": {"type": "string"},
                "releaseYear": {"type": "integer", "maximum": 2100, "minimum": 1900},
                "runtime": {"type": "integer", "maximum": 300, "minimum": 1},
                "title": {"type": "string", "maxLength": 255, "minLength": 1}
            }
        },
        "handler.UpdateWatchlistRequest": {
            "type": "object",
            "properties": {
                "note": {"type": "string"},
                "rating": {"type": "integer", "maximum": 10, "minimum": 1},
                "status": {"type": "string"}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.WatchlistItemResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/model.WatchlistItem"},
                "message": {"type": "string"}
            }
        },
        "handler.WatchlistResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.WatchlistItem"}},
                "message": {"type": "string"}
            }
        },
        "model.Movie": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "genre": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "string"},
                "overview": {"type": "string"},
                "posterUrl": {"type": "string"},
                "releaseYear": {"type": "integer"},
                "runtime": {"type": "integer"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.WatchlistItem": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "movie": {"$ref": "#/definitions/model.Movie"},
                "movieId": {"type": "string"},
                "note": {"type": "string"},
                "rating": {"type": "integer"},
                "status": {"type": "string"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
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
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Movie Watchlist API",
	Description:      "Movie catalogue and personal watchlists with JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
