package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/modernaudio/converter/internal/config"
	"github.com/modernaudio/converter/internal/download"
	"github.com/modernaudio/converter/internal/job"
	"github.com/modernaudio/converter/internal/platform"
	"github.com/modernaudio/converter/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.modernaudio.converter"
	AppName = "Modern Audio Converter"

	WindowWidth  = 900
	WindowHeight = 600
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.EnsureDir(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	runner := job.NewRunner()
	client := download.NewYTDLPClient()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, settings, runner, client)

	// Show and run
	myWindow.ShowAndRun()
}
