// Package logging owns the shared logrus instance. Level and format come
// from the environment so scripted use can turn on debug output without
// touching the config file.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Commands and packages log through it instead
// of constructing their own.
var Log = logrus.New()

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory if one exists and
// then applies LOG_LEVEL / LOG_FORMAT. Safe to call more than once.
func LoadEnv() {
	envOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(".env"); err != nil {
				Log.Warnf("could not load .env: %v", err)
			}
		}
		Configure()
	})
}

// Configure applies LOG_LEVEL and LOG_FORMAT from the environment.
func Configure() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		Log.Warnf("invalid log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Silence routes log output away from the terminal. The full-screen UI
// owns the screen, so logs either go to BUDGETBUDDY_LOG_FILE or nowhere.
func Silence() {
	if path := os.Getenv("BUDGETBUDDY_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			Log.SetOutput(f)
			return
		}
	}
	Log.SetOutput(io.Discard)
}
