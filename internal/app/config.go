package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	VariablesFile   string
	CredentialsFile string
	SpreadsheetID   string
	PublishURL      string
	PublishKeyFile  string
	OutputDir       string
}

// SetupEnvironment loads .env file, configures zerolog output and log level,
// and returns the logger handle the rest of the application receives through
// the Context. The package-level logger is configured identically for the
// bootstrap phase in main.
func SetupEnvironment() zerolog.Logger {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}

	return log.Logger
}

// LoadConfig loads configuration from environment variables. Every setting
// has a default; settings a command cannot run without are validated by the
// Require helpers at the point of use.
func LoadConfig() *Config {
	variablesFile := os.Getenv("VARIABLES_FILE")
	if variablesFile == "" {
		variablesFile = "variables.yaml"
	}

	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	publishKeyFile := os.Getenv("PUBLISH_KEY_FILE")
	if publishKeyFile == "" {
		publishKeyFile = "publish.pem"
	}

	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "."
	}

	return &Config{
		VariablesFile:   variablesFile,
		CredentialsFile: credentialsFile,
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		PublishURL:      os.Getenv("PUBLISH_URL"),
		PublishKeyFile:  publishKeyFile,
		OutputDir:       outputDir,
	}
}

// RequireSpreadsheetID returns the configured spreadsheet ID or an error
// when the Google Sheets source cannot be used
func (c *Config) RequireSpreadsheetID() (string, error) {
	if c.SpreadsheetID == "" {
		return "", fmt.Errorf("SPREADSHEET_ID environment variable is required for the Google Sheets source")
	}
	return c.SpreadsheetID, nil
}

// RequirePublishURL returns the configured publish destination or an error
// when publishing cannot proceed
func (c *Config) RequirePublishURL() (string, error) {
	if c.PublishURL == "" {
		return "", fmt.Errorf("PUBLISH_URL environment variable is required for publishing (format: user@host:path)")
	}
	return c.PublishURL, nil
}
