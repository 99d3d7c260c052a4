// Package docs holds the OpenAPI description served at /swagger.
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
        "/api/me/subscription": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Subscription"],
                "summary": "Get the caller's plan and token balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/subscription/sync": {
            "post": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Subscription"],
                "summary": "Reconcile the caller's plan with the billing provider",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "503": {"description": "Billing provider unavailable; data carries the last known plan", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/entitlements": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Entitlements"],
                "summary": "List access tier and token cost for every feature",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/usage": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Usage"],
                "summary": "List the caller's usage log",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"},
                    {"type": "string", "name": "feature", "in": "query"},
                    {"type": "string", "format": "date-time", "name": "from", "in": "query"},
                    {"type": "string", "format": "date-time", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/usage/summary": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Usage"],
                "summary": "Tokens spent per feature over a range",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/contents": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Contents"],
                "summary": "List generated content",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/contents/{sid}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["Contents"],
                "summary": "Delete generated content",
                "parameters": [{"type": "string", "name": "sid", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/brand-profiles": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Brand Profiles"],
                "summary": "List brand profiles and the plan limit",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Brand Profiles"],
                "summary": "Create a brand profile",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "403": {"description": "Plan limit reached", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/me/brand-profiles/{sid}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["Brand Profiles"],
                "summary": "Delete a brand profile",
                "parameters": [{"type": "string", "name": "sid", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/features/thumbnails": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Features"],
                "summary": "Generate thumbnails",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "402": {"description": "Insufficient tokens", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "403": {"description": "Plan does not include the feature", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "503": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/features/video-ideas": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["Features"],
                "summary": "Generate video ideas",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/features/branding-kit": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["Features"],
                "summary": "Generate a branding kit",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/features/niche-analysis": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["Features"],
                "summary": "Analyze a niche",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/features/chat": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["Features"],
                "summary": "Ask the assistant",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/features/channel-analytics": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["Features"],
                "summary": "Summarize usage for the current cycle",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/admin/feature-costs": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["Admin"],
                "summary": "List token costs with overrides",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/admin/feature-costs/{feature}": {
            "put": {
                "security": [{"Bearer": []}],
                "tags": ["Admin"],
                "summary": "Override a feature's token cost",
                "parameters": [{"type": "string", "name": "feature", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["Admin"],
                "summary": "Restore a feature's default token cost",
                "parameters": [{"type": "string", "name": "feature", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/admin/policy": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["Admin"],
                "summary": "Entitlements of every plan",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/webhooks/stripe": {
            "post": {
                "tags": ["Webhooks"],
                "summary": "Receive a Stripe event",
                "parameters": [{"type": "string", "name": "Stripe-Signature", "in": "header", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid signature"},
                    "503": {"description": "Processing failed, redeliver"}
                }
            }
        }
    },
    "definitions": {
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/utils.ErrorInfo"},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorInfo": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "meta": {"type": "object", "additionalProperties": true},
                "retryable": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
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
	Title:            "CreatorHub API",
	Description:      "Plan entitlements, token metering and generation features for creators.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
