// Package docs registra o documento OpenAPI da API Imobiliária.
// Mantido à mão no mesmo formato gerado pelo swag init; atualize junto com as anotações dos handlers.
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
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Autentica um usuário",
                "parameters": [
                    {"description": "Credenciais", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Sessão emitida", "schema": {"$ref": "#/definitions/domain.Session"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registra um novo usuário",
                "parameters": [
                    {"description": "Dados de cadastro", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}
                ],
                "responses": {
                    "201": {"description": "Usuário criado e autenticado", "schema": {"$ref": "#/definitions/domain.Session"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Email ou username já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/imoveis": {
            "get": {
                "produces": ["application/json"],
                "tags": ["imoveis"],
                "summary": "Lista os imóveis",
                "parameters": [
                    {"type": "string", "name": "tipoImovel", "in": "query", "enum": ["casa", "apartamento", "terreno"]},
                    {"type": "string", "name": "tipo", "in": "query", "enum": ["venda", "aluguel"]},
                    {"type": "string", "name": "cidade", "in": "query"},
                    {"type": "number", "name": "valorMin", "in": "query"},
                    {"type": "number", "name": "valorMax", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Imovel"}}},
                    "400": {"description": "Filtro inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["imoveis"],
                "summary": "Cria um imóvel",
                "parameters": [
                    {"type": "string", "name": "titulo", "in": "formData"},
                    {"type": "string", "name": "descricao", "in": "formData"},
                    {"type": "number", "name": "valor", "in": "formData"},
                    {"type": "string", "name": "tipo", "in": "formData", "enum": ["venda", "aluguel"]},
                    {"type": "string", "name": "tipoImovel", "in": "formData", "enum": ["casa", "apartamento", "terreno"]},
                    {"type": "string", "name": "estadoImovel", "in": "formData", "enum": ["novo", "semi-novo"]},
                    {"type": "boolean", "name": "aceitaFinanciamento", "in": "formData"},
                    {"type": "string", "name": "endereco", "in": "formData"},
                    {"type": "string", "name": "cidade", "in": "formData"},
                    {"type": "string", "name": "estado", "in": "formData"},
                    {"type": "string", "name": "cep", "in": "formData"},
                    {"type": "number", "name": "area", "in": "formData"},
                    {"type": "integer", "name": "quartos", "in": "formData"},
                    {"type": "integer", "name": "banheiros", "in": "formData"},
                    {"type": "integer", "name": "vagasGaragem", "in": "formData"},
                    {"type": "file", "name": "fotos", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Imovel"}},
                    "400": {"description": "Dados ou arquivos inválidos", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Requer admin", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/imoveis/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["imoveis"],
                "summary": "Agregados do painel administrativo",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Dashboard"}},
                    "401": {"description": "Token ausente ou inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Requer admin", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/imoveis/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["imoveis"],
                "summary": "Busca um imóvel por ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Imovel"}},
                    "404": {"description": "Imóvel não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["imoveis"],
                "summary": "Atualiza um imóvel",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "fotos", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Imovel"}},
                    "400": {"description": "Dados ou arquivos inválidos", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Imóvel não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["imoveis"],
                "summary": "Remove um imóvel",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "404": {"description": "Imóvel não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/imoveis/{id}/fotos/{foto}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["imoveis"],
                "summary": "Remove uma foto do imóvel",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "foto", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Imovel"}},
                    "400": {"description": "Nome de arquivo inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Imóvel não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Lista os usuários",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}},
                    "403": {"description": "Requer superuser", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Cria um usuário com qualquer role",
                "parameters": [
                    {"description": "Dados do usuário", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "409": {"description": "Email ou username já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users/superuser": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Cria o primeiro superuser",
                "parameters": [
                    {"description": "Dados do superuser", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "403": {"description": "Já existem usuários", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Busca um usuário por ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "Usuário não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Remove um usuário",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Usuário removido"},
                    "404": {"description": "Usuário não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer"},
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "domain.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "domain.LoginRequest": {
            "type": "object",
            "properties": {
                "identifier": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "domain.UserRegistration": {
            "type": "object",
            "required": ["username", "password", "nome"],
            "properties": {
                "username": {"type": "string", "minLength": 4},
                "password": {"type": "string", "minLength": 6},
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["superuser", "admin", "user"]}
            }
        },
        "domain.UserSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "domain.Session": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.UserSummary"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "isActive": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Imovel": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "titulo": {"type": "string"},
                "descricao": {"type": "string"},
                "valor": {"type": "number"},
                "tipo": {"type": "string"},
                "tipoImovel": {"type": "string"},
                "estadoImovel": {"type": "string"},
                "aceitaFinanciamento": {"type": "boolean"},
                "fotos": {"type": "array", "items": {"type": "string"}},
                "endereco": {"type": "string"},
                "cidade": {"type": "string"},
                "estado": {"type": "string"},
                "cep": {"type": "string"},
                "area": {"type": "number"},
                "quartos": {"type": "integer"},
                "banheiros": {"type": "integer"},
                "vagasGaragem": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Dashboard": {
            "type": "object",
            "properties": {
                "tiposImoveis": {"type": "array", "items": {"type": "object", "properties": {"tipo": {"type": "string"}, "quantidade": {"type": "integer"}}}},
                "valoresMedios": {"type": "array", "items": {"type": "object", "properties": {"tipo": {"type": "string"}, "valorMedio": {"type": "integer"}}}},
                "statusImoveis": {"type": "array", "items": {"type": "object", "properties": {"status": {"type": "string"}, "quantidade": {"type": "integer"}}}}
            }
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
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "API Imobiliária",
	Description:      "Cadastro de imóveis e usuários com autenticação JWT e controle por role.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
