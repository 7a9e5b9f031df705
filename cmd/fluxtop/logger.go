// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SessionLogger logs a dashboard session to a file. The TUI owns the
// terminal, so diagnostics go to ~/.fluxtop/logs instead of stderr.
type SessionLogger struct {
	file      *os.File
	path      string
	startTime time.Time
}

// NewSessionLogger creates a timestamped log file for this session.
func NewSessionLogger() (*SessionLogger, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	logDir := filepath.Join(home, ".fluxtop", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02-150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("session-%s.log", timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	l := &SessionLogger{
		file:      file,
		path:      logPath,
		startTime: time.Now(),
	}
	l.writeHeader()
	return l, nil
}

func (l *SessionLogger) writeHeader() {
	l.file.WriteString(strings.Repeat("=", 80) + "\n")
	l.file.WriteString("fluxtop session\n")
	l.file.WriteString(fmt.Sprintf("Started: %s\n", l.startTime.Format(time.RFC3339)))
	l.file.WriteString(strings.Repeat("=", 80) + "\n\n")
}

// Logf writes a timestamped message to the log file.
func (l *SessionLogger) Logf(format string, args ...interface{}) {
	if l == nil || l.file == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	l.file.WriteString(fmt.Sprintf("[%s] %s\n", timestamp, msg))
}

// Close flushes and closes the log, returning its path.
func (l *SessionLogger) Close() string {
	if l == nil || l.file == nil {
		return ""
	}
	elapsed := time.Since(l.startTime).Round(time.Second)
	l.file.WriteString(fmt.Sprintf("\nSession ended after %s\n", elapsed))
	l.file.Close()
	return l.path
}
