// Package docs serves the OpenAPI description of the storefront API at
// /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/products": {
            "get": {
                "summary": "List available products",
                "parameters": [{"type": "string", "name": "category", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid category"}}
            }
        },
        "/products/{id}": {
            "get": {
                "summary": "Get a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/options": {
            "get": {
                "summary": "Sizes, borders, extras, sauces and delivery fee",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pricing/quote": {
            "post": {
                "summary": "Price a custom pizza",
                "parameters": [{"type": "string", "name": "X-Session-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid composition"}}
            }
        },
        "/cart": {
            "get": {
                "summary": "Show the session cart",
                "parameters": [{"type": "string", "name": "X-Session-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "summary": "Empty the session cart",
                "parameters": [{"type": "string", "name": "X-Session-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cart/items": {
            "post": {
                "summary": "Add a menu item",
                "parameters": [{"type": "string", "name": "X-Session-ID", "in": "header", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad request"}, "404": {"description": "Unknown product"}}
            }
        },
        "/cart/custom": {
            "post": {
                "summary": "Add a custom pizza",
                "parameters": [{"type": "string", "name": "X-Session-ID", "in": "header", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid composition"}}
            }
        },
        "/cart/items/{id}/{size}": {
            "put": {
                "summary": "Change a line quantity; zero or less removes it",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "summary": "Remove a line",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/coupons/validate": {
            "post": {
                "summary": "Quote the cart with a coupon",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Coupon not applicable"}, "404": {"description": "Unknown coupon"}}
            }
        },
        "/checkout": {
            "post": {
                "summary": "Place the order for the session cart",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid request or empty cart"}}
            }
        },
        "/orders": {
            "get": {
                "summary": "Orders of a customer, newest first",
                "parameters": [{"type": "string", "name": "phone", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/orders/number/{number}": {
            "get": {"summary": "Find an order by its number", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/orders/{id}": {
            "get": {"summary": "Get an order", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/orders/{id}/tracking": {
            "get": {"summary": "Current tracking stage", "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{id}/events": {
            "get": {"summary": "Server-sent stream of tracking stages", "produces": ["text/event-stream"], "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{id}/status": {
            "put": {"summary": "Set the order status", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/orders/{id}/history": {
            "get": {"summary": "Audit trail of an order (only when the audit store is enabled)", "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{id}/cancel": {
            "post": {"summary": "Cancel a pending order", "responses": {"200": {"description": "OK"}, "409": {"description": "Already in progress"}}}
        },
        "/cep/{cep}": {
            "get": {"summary": "Resolve a CEP to an address", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid CEP"}, "404": {"description": "Not found"}}}
        },
        "/favorites": {
            "get": {"summary": "Favorite product ids of a customer", "responses": {"200": {"description": "OK"}}},
            "post": {"summary": "Add a favorite", "responses": {"204": {"description": "No content"}}}
        },
        "/addresses": {
            "get": {"summary": "Saved addresses of a customer", "responses": {"200": {"description": "OK"}}},
            "post": {"summary": "Save an address", "responses": {"201": {"description": "Created"}}}
        },
        "/timeclock/{employee}/in": {
            "post": {"summary": "Open a shift", "responses": {"201": {"description": "Created"}, "409": {"description": "Shift already open"}}}
        },
        "/timeclock/{employee}/out": {
            "post": {"summary": "Close the open shift", "responses": {"200": {"description": "OK"}, "409": {"description": "No open shift"}}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pizzaria Storefront API",
	Description:      "Catalog, cart, checkout and order tracking for the pizzeria storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
