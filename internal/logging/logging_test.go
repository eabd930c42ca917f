package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "", want: zapcore.InfoLevel},
		{input: "debug", want: zapcore.DebugLevel},
		{input: "WARN", want: zapcore.WarnLevel},
		{input: " error ", want: zapcore.ErrorLevel},
		{input: "loud", want: zapcore.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	logger, err := New(Options{Level: "info", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("Server starting", zap.String("port", "8080"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected the log file to contain the entry")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "shouting"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
