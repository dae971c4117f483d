// Package docs registra o documento Swagger servido em /swagger/*.
// Mantido à mão a partir das anotações de internal/handler/http/handler.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Will Cristo",
            "url": "https://linkedin.com/in/willjrcristo",
            "email": "willjrcristo@gmail.com"
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
        "/api/agreement/store": {
            "post": {
                "description": "Valida e grava o aceite do cliente antes do checkout",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "checkout"
                ],
                "summary": "Registra o aceite dos termos",
                "parameters": [
                    {
                        "description": "Dados do aceite",
                        "name": "agreement",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.AgreementInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.agreementResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "405": {
                        "description": "Method Not Allowed",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/checkout/create": {
            "post": {
                "description": "Monta a configuração da sessão de Checkout para o plano escolhido",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "checkout"
                ],
                "summary": "Cria uma sessão de checkout",
                "parameters": [
                    {
                        "description": "Plano e curso",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.CheckoutRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.CheckoutSession"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "405": {
                        "description": "Method Not Allowed",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/stripe/webhook": {
            "post": {
                "description": "Verifica o cabeçalho Stripe-Signature e processa o evento",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "webhooks"
                ],
                "summary": "Recebe eventos da Stripe",
                "parameters": [
                    {
                        "type": "string",
                        "description": "t=<timestamp>,v1=<assinatura>",
                        "name": "Stripe-Signature",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "boolean"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "405": {
                        "description": "Method Not Allowed",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.CheckoutSession": {
            "type": "object",
            "properties": {
                "checkoutUrl": {
                    "type": "string"
                },
                "config": {
                    "$ref": "#/definitions/domain.SessionConfig"
                },
                "sessionId": {
                    "type": "string"
                }
            }
        },
        "domain.LineItem": {
            "type": "object",
            "properties": {
                "price": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "domain.PaymentIntentData": {
            "type": "object",
            "properties": {
                "setup_future_usage": {
                    "type": "string"
                }
            }
        },
        "domain.SessionConfig": {
            "type": "object",
            "properties": {
                "allow_promotion_codes": {
                    "type": "boolean"
                },
                "billing_address_collection": {
                    "type": "string"
                },
                "cancel_url": {
                    "type": "string"
                },
                "customer_creation": {
                    "type": "string"
                },
                "line_items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                },
                "metadata": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "mode": {
                    "type": "string",
                    "enum": [
                        "one-time",
                        "recurring"
                    ]
                },
                "payment_intent_data": {
                    "$ref": "#/definitions/domain.PaymentIntentData"
                },
                "payment_method_types": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "payment_plan": {
                    "type": "string",
                    "enum": [
                        "full",
                        "monthly"
                    ]
                },
                "shipping_address_collection": {
                    "type": "string"
                },
                "success_url": {
                    "type": "string"
                }
            }
        },
        "http.agreementResponse": {
            "type": "object",
            "properties": {
                "agreementId": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "service.AgreementInput": {
            "type": "object",
            "properties": {
                "agreementAccepted": {
                    "type": "boolean"
                },
                "course": {
                    "type": "string"
                },
                "customerEmail": {
                    "type": "string"
                },
                "customerName": {
                    "type": "string"
                },
                "ipAddress": {
                    "type": "string"
                },
                "paymentPlan": {
                    "type": "string"
                }
            }
        },
        "service.CheckoutRequest": {
            "type": "object",
            "properties": {
                "courseId": {
                    "type": "string"
                },
                "paymentPlan": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "API de Checkout de Cursos",
	Description:      "Aceite dos termos, criação de sessões de Checkout e webhooks da Stripe para matrícula nos cursos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
