package cli

import (
	"github.com/mizanapp/mizan/internal/planner/application"
	"github.com/mizanapp/mizan/internal/planner/domain"
)

// App holds the CLI application dependencies.
type App struct {
	// Dispatcher is the single entry point for all schedule intents.
	Dispatcher *application.Dispatcher

	// Anchors is consulted directly by export, which needs raw anchor
	// events rather than dispatcher outcomes.
	Anchors domain.AnchorSource
}

var app *App

// SetApp installs the application container used by all commands.
func SetApp(a *App) {
	app = a
}

// GetApp returns the installed application container.
func GetApp() *App {
	return app
}
