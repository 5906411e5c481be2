// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package logging builds the shell's debug logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to file at the given level. If debug
// is set, the level is forced to debug, and the log goes to standard error
// when file is empty. With neither a file nor debug, nothing is logged.
func New(file, level string, debug bool) (*zap.Logger, error) {
	if file == "" && !debug {
		return zap.NewNop(), nil
	}
	lvl := zapcore.DebugLevel
	if !debug && level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	if file == "" {
		file = "stderr"
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
