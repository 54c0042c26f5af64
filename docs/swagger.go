package docs

import "github.com/swaggo/swag"

// @tag.name Tasks
// @tag.description Task board, submission and status updates

// @tag.name Steps
// @tag.description Per-user task and collaboration setup checklists

// @tag.name AI
// @tag.description Task estimates and generated steps

// @tag.name Chat
// @tag.description Task chat messages, pins and typing indicators

// @tag.name Demo
// @tag.description Product tour sessions

// @tag.name Content
// @tag.description Marketing pages

// @tag.name Dashboards
// @tag.description Earnings and analytics

// @tag.name Projects
// @tag.description Vibe coder projects

// @tag.name Users
// @tag.description Signup, login and sessions

// @tag.name Onboarding
// @tag.description Role wizards after the first sign-in

// @tag.name Auth
// @tag.description OAuth login and callback

// @tag.name Health
// @tag.description Dependency checks

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
    "paths": {},
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
// Regenerate the paths with `swag init -g cmd/server/main.go`.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "VibeAlong API",
	Description:      "Task collaboration between vibe coders and developers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
