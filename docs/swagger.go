package docs

import "github.com/swaggo/swag"

// @title           TaskPilot API
// @version         1.0
// @description     Multi-tenant family task management API with activity history and AI suggestions

// @contact.name   API Support
// @contact.email  support@taskpilot.app

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:4000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Tasks
// @tag.description Family task operations with activity history

// @tag.name Projects
// @tag.description Project grouping operations

// @tag.name Settings
// @tag.description Family-wide preference operations

// @tag.name Profile
// @tag.description Member profile and roster operations

// @tag.name AI
// @tag.description Task description suggestions

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "TaskPilot API",
	Description:      "Multi-tenant family task management API with activity history and AI suggestions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
