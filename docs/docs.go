// Package docs registra el documento OpenAPI que sirve /swagger/*.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login con celular + password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sessions.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessions.loginResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "401": {"description": "Invalid mobile number or password", "schema": {"type": "string"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/api/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Sesión actual",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessions.meResponse"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/api/pets": {
            "get": {
                "tags": ["pets"],
                "summary": "Listar mis mascotas",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "500": {"description": "Error fetching pets", "schema": {"type": "string"}}
                }
            },
            "post": {
                "tags": ["pets"],
                "summary": "Crear perfil",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "409": {"description": "That username is already taken", "schema": {"type": "string"}},
                    "500": {"description": "Error submitting pet profile", "schema": {"type": "string"}}
                }
            }
        },
        "/api/pets/{petID}": {
            "get": {
                "tags": ["pets"],
                "summary": "Obtener perfil propio",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"},
                    {"type": "string", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "tags": ["pets"],
                "summary": "Reemplazar perfil propio",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"},
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}},
                    "409": {"description": "That username is already taken", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Borrar perfil propio",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"},
                    {"type": "string", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "pet not found", "schema": {"type": "string"}},
                    "500": {"description": "Error deleting pet profile", "schema": {"type": "string"}}
                }
            }
        },
        "/api/uploads": {
            "post": {
                "tags": ["uploads"],
                "summary": "Subir imagen",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header"},
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/uploads.uploadResponse"}},
                    "400": {"description": "Error uploading file", "schema": {"type": "string"}},
                    "413": {"description": "Error uploading file", "schema": {"type": "string"}},
                    "415": {"description": "Error uploading file", "schema": {"type": "string"}}
                }
            }
        },
        "/api/public/pets/{username}": {
            "get": {
                "tags": ["public"],
                "summary": "Perfil público por username",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.PublicProfile"}},
                    "404": {"description": "Pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/api/public/pets/{username}/contact.vcf": {
            "get": {
                "tags": ["public"],
                "summary": "vCard del contacto",
                "produces": ["text/vcard"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/api/public/pets/{username}/share-location": {
            "get": {
                "tags": ["public"],
                "summary": "Link de WhatsApp con la ubicación",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true},
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lng", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Unable to get your location. Please try again.", "schema": {"type": "string"}},
                    "404": {"description": "Pet not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "sessions.loginRequest": {
            "type": "object",
            "properties": {
                "mobile_number": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "sessions.sessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "sessions.loginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_at": {"type": "string"},
                "session": {"$ref": "#/definitions/sessions.sessionResponse"}
            }
        },
        "sessions.meResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string"},
                "username": {"type": "string"},
                "expires_at": {"type": "string"},
                "home_view": {"type": "string"},
                "capabilities": {"type": "object", "additionalProperties": {"type": "boolean"}}
            }
        },
        "pets.petRequest": {
            "type": "object",
            "properties": {
                "pet_unique_username": {"type": "string"},
                "pet_name": {"type": "string"},
                "mobile_number": {"type": "string"},
                "pet_image_url": {"type": "string"},
                "description": {"type": "string"},
                "whatsapp": {"type": "string"},
                "location": {"type": "string"},
                "instagram": {"type": "string"},
                "gallery": {"type": "string"},
                "address": {"type": "string"},
                "description_visibility": {"type": "boolean"},
                "whatsapp_visibility": {"type": "boolean"},
                "location_visibility": {"type": "boolean"},
                "instagram_visibility": {"type": "boolean"},
                "gallery_visibility": {"type": "boolean"},
                "address_visibility": {"type": "boolean"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "pet_unique_username": {"type": "string"},
                "pet_name": {"type": "string"},
                "mobile_number": {"type": "string"},
                "pet_image_url": {"type": "string"},
                "description": {"type": "string"},
                "whatsapp": {"type": "string"},
                "location": {"type": "string"},
                "instagram": {"type": "string"},
                "gallery": {"type": "string"},
                "address": {"type": "string"},
                "description_visibility": {"type": "boolean"},
                "whatsapp_visibility": {"type": "boolean"},
                "location_visibility": {"type": "boolean"},
                "instagram_visibility": {"type": "boolean"},
                "gallery_visibility": {"type": "boolean"},
                "address_visibility": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "pets.PublicField": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "value": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "pets.PublicProfile": {
            "type": "object",
            "properties": {
                "pet_unique_username": {"type": "string"},
                "pet_name": {"type": "string"},
                "pet_image_url": {"type": "string"},
                "phone": {"$ref": "#/definitions/pets.PublicField"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/pets.PublicField"}}
            }
        },
        "uploads.uploadResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "path": {"type": "string"},
                "content_type": {"type": "string"},
                "size": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "pet-profiles API",
	Description:      "Perfiles públicos de mascotas: login, gestor de perfiles, uploads y visor público.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
