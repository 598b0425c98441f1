// Package docs registers the API description served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {"summary": "Staff login", "tags": ["auth"], "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}}}
        },
        "/auth/otp/request": {
            "post": {"summary": "Send a one-time code to a phone number", "tags": ["auth"], "responses": {"200": {"description": "sent"}, "400": {"description": "invalid phone"}}}
        },
        "/auth/otp/verify": {
            "post": {"summary": "Exchange a one-time code for a patient token", "tags": ["auth"], "responses": {"200": {"description": "token"}, "401": {"description": "invalid code"}}}
        },
        "/departments": {
            "get": {"summary": "List departments", "tags": ["catalog"], "responses": {"200": {"description": "departments"}}}
        },
        "/questions": {
            "get": {
                "summary": "Questions for the selected departments",
                "tags": ["catalog"],
                "parameters": [{"name": "departments", "in": "query", "type": "string", "required": true, "description": "comma separated department IDs"}],
                "responses": {"200": {"description": "questions"}, "400": {"description": "no or unknown departments"}}
            }
        },
        "/categorize": {
            "post": {"summary": "Categorize answers without storing them", "tags": ["feedback"], "responses": {"200": {"description": "verdict"}}}
        },
        "/feedback": {
            "post": {"summary": "Submit feedback", "tags": ["feedback"], "security": [{"Bearer": []}], "responses": {"201": {"description": "stored submission"}}},
            "get": {"summary": "Own submission history", "tags": ["feedback"], "security": [{"Bearer": []}], "responses": {"200": {"description": "submissions"}}}
        },
        "/feedback/draft": {
            "put": {"summary": "Save the unfinished questionnaire", "tags": ["feedback"], "security": [{"Bearer": []}], "responses": {"200": {"description": "draft"}}},
            "get": {"summary": "Load the unfinished questionnaire", "tags": ["feedback"], "security": [{"Bearer": []}], "responses": {"200": {"description": "draft"}, "404": {"description": "no draft"}}},
            "delete": {"summary": "Discard the unfinished questionnaire", "tags": ["feedback"], "security": [{"Bearer": []}], "responses": {"200": {"description": "discarded"}}}
        },
        "/feedback/{id}": {
            "get": {"summary": "One own submission", "tags": ["feedback"], "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "submission"}, "404": {"description": "not found"}}},
            "delete": {"summary": "Delete one own submission", "tags": ["feedback"], "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "deleted"}, "404": {"description": "not found"}}}
        },
        "/admin/feedback": {
            "get": {
                "summary": "Review submissions",
                "tags": ["admin"],
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "overall", "in": "query", "type": "string", "enum": ["positive", "neutral", "negative"]},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "submissions"}}
            }
        },
        "/admin/feedback/{id}": {
            "get": {"summary": "One submission", "tags": ["admin"], "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "submission"}, "404": {"description": "not found"}}}
        },
        "/admin/attention": {
            "get": {"summary": "Departments ranked by negative verdicts", "tags": ["admin"], "security": [{"Bearer": []}], "parameters": [{"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "ranking"}}}
        },
        "/admin/stats": {
            "get": {"summary": "Verdict counts per department", "tags": ["admin"], "security": [{"Bearer": []}], "responses": {"200": {"description": "stats"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Patient Feedback API",
	Description:      "Hospital patient feedback collection and categorization.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
