// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go`.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/transactions": {
            "get": {
                "tags": ["Transactions"], "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "integer", "name": "month", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MonthlyStatement"}}, "400": {"$ref": "#/responses/Error"}}
            },
            "post": {
                "tags": ["Transactions"], "summary": "Create transaction",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransactionInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Transaction"}}, "400": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}, "503": {"$ref": "#/responses/Error"}}
            }
        },
        "/transactions/{id}": {
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
            "get": {"tags": ["Transactions"], "summary": "Get transaction", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Transaction"}}, "404": {"$ref": "#/responses/Error"}}},
            "put": {
                "tags": ["Transactions"], "summary": "Update transaction",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransactionInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Transaction"}}, "400": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            },
            "delete": {"tags": ["Transactions"], "summary": "Delete transaction", "responses": {"204": {"description": "No Content"}, "403": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/accounts": {
            "get": {"tags": ["Accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Account"}}}}},
            "post": {
                "tags": ["Accounts"], "summary": "Create account",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAccountInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Account"}}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/accounts/{id}": {
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
            "get": {"tags": ["Accounts"], "summary": "Get account", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Account"}}, "404": {"$ref": "#/responses/Error"}}},
            "put": {
                "tags": ["Accounts"], "summary": "Update account",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAccountInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Account"}}, "400": {"$ref": "#/responses/Error"}}
            },
            "delete": {"tags": ["Accounts"], "summary": "Close account", "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{id}/reconcile": {
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
            "get": {"tags": ["Accounts"], "summary": "Reconcile account", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Reconciliation"}}}}
        },
        "/categories": {
            "get": {"tags": ["Categories"], "summary": "List categories", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Category"}}}}},
            "post": {
                "tags": ["Categories"], "summary": "Create category",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Category"}}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/categories/{id}": {
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
            "put": {
                "tags": ["Categories"], "summary": "Update category",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Category"}}, "400": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}}
            },
            "delete": {"tags": ["Categories"], "summary": "Delete category", "responses": {"204": {"description": "No Content"}, "400": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}}}
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"], "summary": "Dashboard",
                "parameters": [{"type": "string", "format": "date", "name": "date", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Dashboard"}}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/recurring-transactions": {
            "get": {
                "tags": ["Recurring"], "summary": "List recurring rules",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "enum": ["income", "expense", "transfer"], "name": "type", "in": "query"},
                    {"type": "string", "enum": ["daily", "weekly", "monthly", "yearly"], "name": "frequency", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RecurringTransaction"}}}, "400": {"$ref": "#/responses/Error"}}
            },
            "post": {
                "tags": ["Recurring"], "summary": "Create recurring rule",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecurringInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/RecurringTransaction"}}, "400": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}}
            }
        },
        "/recurring-transactions/{id}": {
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
            "get": {"tags": ["Recurring"], "summary": "Get recurring rule", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/RecurringTransaction"}}, "404": {"$ref": "#/responses/Error"}}},
            "put": {
                "tags": ["Recurring"], "summary": "Update recurring rule",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecurringInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/RecurringTransaction"}}, "400": {"$ref": "#/responses/Error"}}
            },
            "delete": {"tags": ["Recurring"], "summary": "Delete recurring rule", "responses": {"204": {"description": "No Content"}}}
        },
        "/recurring-transactions/{id}/occurrences": {
            "get": {
                "tags": ["Recurring"], "summary": "Preview occurrences",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "format": "date", "name": "from", "in": "query", "required": true},
                    {"type": "string", "format": "date", "name": "to", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string", "format": "date"}}}, "400": {"$ref": "#/responses/Error"}}
            }
        }
    },
    "responses": {
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
    },
    "definitions": {
        "MonthTotals": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"}, "month": {"type": "integer"},
                "income": {"type": "string"}, "expense": {"type": "string"}, "net": {"type": "string"}
            }
        },
        "Dashboard": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "total_balance": {"type": "string"},
                "current_month": {"$ref": "#/definitions/MonthTotals"},
                "previous_month": {"$ref": "#/definitions/MonthTotals"},
                "income_growth": {"type": "string"},
                "expense_growth": {"type": "string"},
                "savings_rate": {"type": "string"},
                "expense_ratio": {"type": "string"},
                "recent_transactions": {"type": "array", "items": {"$ref": "#/definitions/Transaction"}},
                "top_categories": {"type": "array", "items": {"type": "object", "properties": {
                    "category_id": {"type": "integer"}, "name": {"type": "string"}, "icon": {"type": "string"}, "total": {"type": "string"}
                }}},
                "daily_spending": {"type": "array", "items": {"type": "object", "properties": {
                    "date": {"type": "string", "format": "date"}, "total": {"type": "string"}
                }}},
                "monthly_trends": {"type": "array", "items": {"$ref": "#/definitions/MonthTotals"}},
                "stats": {"type": "object", "properties": {
                    "total_accounts": {"type": "integer"}, "total_categories": {"type": "integer"}, "total_transactions": {"type": "integer"}
                }}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "TransactionInput": {
            "type": "object",
            "required": ["account_id", "type", "amount", "transaction_date"],
            "properties": {
                "account_id": {"type": "integer"},
                "category_id": {"type": "integer"},
                "type": {"type": "string", "enum": ["income", "expense", "transfer"]},
                "destination_account_id": {"type": "integer"},
                "amount": {"type": "string", "example": "12.50"},
                "description": {"type": "string", "maxLength": 500},
                "transaction_date": {"type": "string", "format": "date"}
            }
        },
        "Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "account_id": {"type": "integer"},
                "category_id": {"type": "integer"},
                "type": {"type": "string", "enum": ["income", "expense", "transfer"]},
                "amount": {"type": "string"},
                "description": {"type": "string"},
                "transaction_date": {"type": "string", "format": "date"},
                "destination_account_id": {"type": "integer"},
                "recurring_transaction_id": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "MonthlyStatement": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/Transaction"}},
                "totals": {
                    "type": "object",
                    "properties": {
                        "income": {"type": "string"},
                        "expense": {"type": "string"},
                        "transfer": {"type": "string"},
                        "net": {"type": "string"}
                    }
                }
            }
        },
        "CreateAccountInput": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["checking", "savings", "credit", "investment", "cash", "other"]},
                "balance": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "UpdateAccountInput": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["checking", "savings", "credit", "investment", "cash", "other"]},
                "description": {"type": "string"}
            }
        },
        "Account": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "balance": {"type": "string"},
                "opening_balance": {"type": "string"},
                "description": {"type": "string"},
                "version": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "Reconciliation": {
            "type": "object",
            "properties": {
                "account_id": {"type": "integer"},
                "balance": {"type": "string"},
                "derived": {"type": "string"},
                "drift": {"type": "string"},
                "consistent": {"type": "boolean"}
            }
        },
        "CategoryInput": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "icon": {"type": "string", "maxLength": 50}
            }
        },
        "Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "icon": {"type": "string"},
                "is_default": {"type": "boolean"}
            }
        },
        "RecurringInput": {
            "type": "object",
            "required": ["account_id", "type", "amount", "frequency", "start_date"],
            "properties": {
                "account_id": {"type": "integer"},
                "category_id": {"type": "integer"},
                "type": {"type": "string", "enum": ["income", "expense", "transfer"]},
                "destination_account_id": {"type": "integer"},
                "amount": {"type": "string"},
                "description": {"type": "string", "maxLength": 480},
                "frequency": {"type": "string", "enum": ["daily", "weekly", "monthly", "yearly"]},
                "day_of_month": {"type": "integer", "minimum": 1, "maximum": 31},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            }
        },
        "RecurringTransaction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "account_id": {"type": "integer"},
                "category_id": {"type": "integer"},
                "type": {"type": "string"},
                "destination_account_id": {"type": "integer"},
                "amount": {"type": "string"},
                "description": {"type": "string"},
                "frequency": {"type": "string"},
                "day_of_month": {"type": "integer"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kasflow Personal Finance API",
	Description:      "Accounts, categories, transactions and recurring transactions for a personal finance ledger",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
