// Package docs registers the OpenAPI document served under /swagger.
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
        "/budgets": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "List budgets",
                "parameters": [{"type": "string", "default": "active", "description": "active, archived or all", "name": "status", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BudgetResponse"}}}}},
            "post": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Create a budget",
                "parameters": [{"description": "Budget", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBudgetRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreateBudgetResponse"}},
                    "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "422": {"description": "Allocation mismatch"}}}
        },
        "/budgets/preview": {
            "post": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Preview an allocation",
                "parameters": [{"description": "Allocation draft", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PreviewAllocationRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AllocationPreviewResponse"}}}}
        },
        "/budgets/archived": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Budget history",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BudgetResponse"}}}}}
        },
        "/budgets/{id}": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Get a budget",
                "parameters": [{"type": "string", "description": "Budget ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BudgetResponse"}}, "404": {"description": "Not Found"}}}
        },
        "/budgets/{id}/archive": {
            "post": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Archive a budget",
                "parameters": [{"type": "string", "description": "Budget ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BudgetResponse"}}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/budgets/{id}/accounts/{accountId}/history": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Account history", "description": "Applied spending on one account (logged entries and approved requests), newest first",
                "parameters": [{"type": "string", "description": "Budget ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Account ID", "name": "accountId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}}}}
        },
        "/accounts": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Spending accounts",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountOptionResponse"}}}}}
        },
        "/spending": {
            "post": {"security": [{"Bearer": []}], "tags": ["spending"], "summary": "Log spending",
                "parameters": [{"description": "Spending", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SpendingRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}
        },
        "/requests": {
            "post": {"security": [{"Bearer": []}], "tags": ["requests"], "summary": "Submit a spending request",
                "parameters": [{"description": "Spending request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SpendingRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}}}
        },
        "/requests/pending": {
            "get": {"security": [{"Bearer": []}], "tags": ["requests"], "summary": "Pending requests",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PendingRequestsResponse"}}, "403": {"description": "Forbidden"}}}
        },
        "/requests/{id}/decision": {
            "post": {"security": [{"Bearer": []}], "tags": ["requests"], "summary": "Decide a request",
                "parameters": [{"type": "string", "description": "Request ID", "name": "id", "in": "path", "required": true},
                    {"description": "Decision", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DecisionRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}, "409": {"description": "Already decided"}}}
        },
        "/summary": {
            "get": {"security": [{"Bearer": []}], "tags": ["summary"], "summary": "Balance summary",
                "parameters": [{"type": "string", "description": "Comma-separated budget IDs to include", "name": "budget_id", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SummaryResponse"}}}}
        }
    },
    "definitions": {
        "dto.AllocationRequest": {"type": "object", "properties": {"name": {"type": "string"}, "amount": {"type": "string", "example": "100000"}}},
        "dto.CreateBudgetRequest": {"type": "object", "properties": {
            "title": {"type": "string"}, "total_amount": {"type": "string", "example": "150000"},
            "allocations": {"type": "array", "items": {"$ref": "#/definitions/dto.AllocationRequest"}},
            "details": {"type": "string"}, "date": {"type": "string"}, "policy": {"type": "string"}}},
        "dto.PreviewAllocationRequest": {"type": "object", "properties": {
            "total_amount": {"type": "string"}, "allocations": {"type": "array", "items": {"$ref": "#/definitions/dto.AllocationRequest"}}}},
        "dto.AllocationPreviewResponse": {"type": "object", "properties": {
            "total": {"type": "string"}, "allocated": {"type": "string"}, "remaining": {"type": "string"},
            "state": {"type": "string"}, "balanced": {"type": "boolean"}}},
        "dto.AccountResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "budgeted": {"type": "string"},
            "spent": {"type": "string"}, "remaining": {"type": "string"}}},
        "dto.BudgetResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "title": {"type": "string"}, "total_amount": {"type": "string"},
            "details": {"type": "string"}, "date": {"type": "string"}, "status": {"type": "string"},
            "creator_id": {"type": "string"}, "accounts": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountResponse"}},
            "created_at": {"type": "string"}, "archived_at": {"type": "string"}}},
        "dto.CreateBudgetResponse": {"type": "object", "properties": {
            "budget": {"$ref": "#/definitions/dto.BudgetResponse"},
            "warning": {"type": "object", "properties": {"expected": {"type": "string"}, "actual": {"type": "string"}, "difference": {"type": "string"}}}}},
        "dto.AccountOptionResponse": {"type": "object", "properties": {
            "budget_id": {"type": "string"}, "budget_title": {"type": "string"}, "account_id": {"type": "string"}, "name": {"type": "string"}}},
        "dto.SpendingRequest": {"type": "object", "properties": {
            "budget_id": {"type": "string"}, "account_id": {"type": "string"}, "amount": {"type": "string", "example": "25000"},
            "description": {"type": "string"}, "date": {"type": "string"}}},
        "dto.DecisionRequest": {"type": "object", "properties": {"decision": {"type": "string", "enum": ["approve", "reject"]}}},
        "dto.TransactionResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "budget_id": {"type": "string"}, "account_id": {"type": "string"},
            "kind": {"type": "string"}, "amount": {"type": "string"}, "description": {"type": "string"},
            "date": {"type": "string"}, "author_id": {"type": "string"}, "author_name": {"type": "string"},
            "status": {"type": "string"}, "decided_by": {"type": "string"}, "decided_at": {"type": "string"},
            "created_at": {"type": "string"}}},
        "dto.PendingRequestsResponse": {"type": "object", "properties": {
            "count": {"type": "integer"}, "requests": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}}},
        "dto.AccountSummaryResponse": {"type": "object", "properties": {
            "budget_id": {"type": "string"}, "budget_title": {"type": "string"}, "account_id": {"type": "string"},
            "name": {"type": "string"}, "budgeted": {"type": "string"}, "spent": {"type": "string"},
            "remaining": {"type": "string"}, "state": {"type": "string"}, "remaining_display": {"type": "string"}}},
        "dto.SummaryResponse": {"type": "object", "properties": {
            "total_budgeted": {"type": "string"}, "total_spent": {"type": "string"}, "total_remaining": {"type": "string"},
            "display": {"type": "object", "properties": {"total_budgeted": {"type": "string"}, "total_spent": {"type": "string"}, "total_remaining": {"type": "string"}}},
            "accounts": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountSummaryResponse"}}}}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Budget Ledger API",
	Description:      "Budgets split into named accounts, spending and approval workflow, balance summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
