package utils

import "go.uber.org/zap"

// NewLogger returns the logger used by the palette server and CLI commands.
// Debug selects the development encoder at debug level; otherwise JSON at info level.
// Every entry carries app=palette so the lines can be picked out of shared log streams.
func NewLogger(debug bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("app", "palette")), nil
}

// NewFileLogger returns a debug logger writing to path, for the interactive palette
// where stderr belongs to the terminal UI. An empty path yields a no-op logger.
func NewFileLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("app", "palette")), nil
}
