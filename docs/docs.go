// Package docs holds the Swagger document served at /swagger. It is kept
// by hand alongside the handlers; update it when a route or DTO changes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "API Support",
			"url": "http://www.swagger.io/support",
			"email": "support@swagger.io"
		},
		"license": {
			"name": "Apache 2.0",
			"url": "http://www.apache.org/licenses/LICENSE-2.0.html"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/ping": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Log in as the admin",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.LoginRequest"
						}
					}
				]
			}
		},
		"/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/customers": {
			"get": {
				"tags": [
					"customers"
				],
				"summary": "List customers",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"customers"
				],
				"summary": "Create",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.CustomerRequest"
						}
					}
				]
			}
		},
		"/customers/{id}": {
			"get": {
				"tags": [
					"customers"
				],
				"summary": "Get by id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"customers"
				],
				"summary": "Update",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.CustomerRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"customers"
				],
				"summary": "Delete",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/vehicles": {
			"get": {
				"tags": [
					"vehicles"
				],
				"summary": "List vehicles",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"vehicles"
				],
				"summary": "Create",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.VehicleRequest"
						}
					}
				]
			}
		},
		"/vehicles/{id}": {
			"get": {
				"tags": [
					"vehicles"
				],
				"summary": "Get by id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"vehicles"
				],
				"summary": "Update",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.VehicleRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"vehicles"
				],
				"summary": "Delete",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/services": {
			"get": {
				"tags": [
					"services"
				],
				"summary": "List services",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"services"
				],
				"summary": "Create",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.ServiceRequest"
						}
					}
				]
			}
		},
		"/services/{id}": {
			"get": {
				"tags": [
					"services"
				],
				"summary": "Get by id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"services"
				],
				"summary": "Update",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.ServiceRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"services"
				],
				"summary": "Delete",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/jobitems": {
			"get": {
				"tags": [
					"jobitems"
				],
				"summary": "List jobitems",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"jobitems"
				],
				"summary": "Create",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.JobItemRequest"
						}
					}
				]
			}
		},
		"/jobitems/{id}": {
			"get": {
				"tags": [
					"jobitems"
				],
				"summary": "Get by id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"jobitems"
				],
				"summary": "Update",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.JobItemRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"jobitems"
				],
				"summary": "Delete",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/jobcards": {
			"get": {
				"tags": [
					"jobcards"
				],
				"summary": "List jobcards",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"jobcards"
				],
				"summary": "Create",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.JobCardRequest"
						}
					}
				]
			}
		},
		"/jobcards/{id}": {
			"get": {
				"tags": [
					"jobcards"
				],
				"summary": "Get by id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"jobcards"
				],
				"summary": "Update",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.JobCardRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"jobcards"
				],
				"summary": "Delete",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/payments": {
			"get": {
				"tags": [
					"payments"
				],
				"summary": "List payments",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"payments"
				],
				"summary": "Create",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.PaymentRequest"
						}
					}
				]
			}
		},
		"/payments/{id}": {
			"get": {
				"tags": [
					"payments"
				],
				"summary": "Get by id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"payments"
				],
				"summary": "Update",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.PaymentRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"payments"
				],
				"summary": "Delete",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/invoices": {
			"get": {
				"tags": [
					"invoices"
				],
				"summary": "List invoices",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"invoices"
				],
				"summary": "Create",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.InvoiceRequest"
						}
					}
				]
			}
		},
		"/invoices/{id}": {
			"get": {
				"tags": [
					"invoices"
				],
				"summary": "Get by id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"invoices"
				],
				"summary": "Update",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.InvoiceRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"invoices"
				],
				"summary": "Delete",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/invoices/{id}/settle": {
			"post": {
				"tags": [
					"invoices"
				],
				"summary": "Record payment and complete the invoice",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/pkg.HTTPError"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.SettleRequest"
						}
					}
				]
			}
		}
	},
	"definitions": {
		"pkg.HTTPError": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"request.LoginRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"request.CustomerRequest": {
			"type": "object",
			"required": [
				"name"
			],
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				}
			}
		},
		"request.VehicleRequest": {
			"type": "object",
			"required": [
				"plateNumber"
			],
			"properties": {
				"plateNumber": {
					"type": "string"
				},
				"brand": {
					"type": "string"
				},
				"model": {
					"type": "string"
				},
				"fuelType": {
					"type": "string"
				},
				"customerId": {
					"type": "string"
				}
			}
		},
		"request.ServiceRequest": {
			"type": "object",
			"required": [
				"name"
			],
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "number"
				}
			}
		},
		"request.JobItemRequest": {
			"type": "object",
			"required": [
				"description"
			],
			"properties": {
				"description": {
					"type": "string"
				},
				"qty": {
					"type": "number"
				},
				"rate": {
					"type": "number"
				}
			}
		},
		"request.JobCardRequest": {
			"type": "object",
			"required": [
				"customerId",
				"vehicleId",
				"serviceId"
			],
			"properties": {
				"customerId": {
					"type": "string"
				},
				"vehicleId": {
					"type": "string"
				},
				"serviceId": {
					"type": "string"
				},
				"createdDate": {
					"type": "string",
					"example": "2025-06-01"
				},
				"status": {
					"type": "string",
					"enum": [
						"PENDING",
						"IN_PROGRESS",
						"COMPLETED",
						"CANCELLED"
					]
				}
			}
		},
		"request.PaymentRequest": {
			"type": "object",
			"required": [
				"invoiceId",
				"method"
			],
			"properties": {
				"invoiceId": {
					"type": "string"
				},
				"amount": {
					"type": "number"
				},
				"method": {
					"type": "string",
					"enum": [
						"cash",
						"card",
						"bank",
						"upi"
					]
				},
				"paymentDate": {
					"type": "string",
					"example": "2025-06-01"
				}
			}
		},
		"request.InvoiceRequest": {
			"type": "object",
			"properties": {
				"customerId": {
					"type": "string"
				},
				"vehicleId": {
					"type": "string"
				},
				"serviceIds": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"services": {
					"type": "string",
					"description": "comma-separated service names, used when serviceIds is empty",
					"example": "Oil Change, Tire Rotation"
				},
				"status": {
					"type": "string",
					"enum": [
						"pending",
						"completed",
						"cancelled"
					]
				},
				"invoiceDate": {
					"type": "string",
					"example": "2025-06-01"
				}
			}
		},
		"request.SettleRequest": {
			"type": "object",
			"required": [
				"method"
			],
			"properties": {
				"method": {
					"type": "string",
					"enum": [
						"cash",
						"card",
						"bank",
						"upi"
					]
				},
				"idempotencyKey": {
					"type": "string"
				},
				"providerPayload": {
					"type": "object"
				}
			}
		}
	},
	"securityDefinitions": {
		"Bearer": {
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
	Schemes:          []string{},
	Title:            "Garage Admin API",
	Description:      "Garage back office: customers, vehicles, services, job cards, invoices and payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
