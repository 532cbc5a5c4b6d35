package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := NewLogger()
	if logger.Level != logrus.InfoLevel {
		t.Fatalf("expected info level, got %v", logger.Level)
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter, got %T", logger.Formatter)
	}
}

func TestNewLoggerRespectsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := NewLogger()
	if logger.Level != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %v", logger.Level)
	}
}

func TestNewLoggerWithService(t *testing.T) {
	logger := NewLoggerWithService("planner")
	if logger == nil {
		t.Fatal("expected logger instance")
	}
}
