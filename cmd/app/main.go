// mDNA Viewer: paired Cy3/Cy5 fluorescence image viewer

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/config"
	"mdna-viewer/internal/gui"
	"mdna-viewer/internal/io"
	"mdna-viewer/internal/io/opencv"
)

const (
	AppName    = "mDNA Viewer"
	AppID      = "com.mdna.viewer"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	cy3Path := flag.String("cy3", "", "Cy3 image to open at startup (requires -cy5)")
	cy5Path := flag.String("cy5", "", "Cy5 image to open at startup (requires -cy3)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	logger := initLogger(cfg, *debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"decoder":    cfg.Loader.Decoder,
		"coupled":    cfg.Viewer.Coupled,
	}).Info("Starting " + AppName)

	loader := io.NewImageLoader(newDecoder(cfg), logger)

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp, err := gui.NewApplication(myApp, cfg, loader, logger, *debugMode)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create application")
	}

	switch {
	case *cy3Path != "" && *cy5Path != "":
		if err := mainApp.LoadPair(*cy3Path, *cy5Path); err != nil {
			logger.WithError(err).Error("Failed to open startup pair")
		}
	case *cy3Path != "" || *cy5Path != "":
		logger.Warn("Both -cy3 and -cy5 are needed to open a pair at startup")
	}

	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

func newDecoder(cfg *config.Config) io.Decoder {
	if cfg.Loader.Decoder == config.DecoderOpenCV {
		return opencv.NewDecoder()
	}
	return io.NewNativeDecoder()
}

// initLogger initializes the logger from the config; -debug overrides it
func initLogger(cfg *config.Config, debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
		return logger
	}

	logger.SetLevel(cfg.LogLevel())
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
