package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/danieljhkim/vpath/internal/config"
	"github.com/danieljhkim/vpath/internal/engine"
	"github.com/danieljhkim/vpath/internal/log"
)

// newEngine loads configuration, sets up logging and returns an engine with
// every configured scheme registered.
func newEngine() (*engine.Engine, error) {
	cfgPath := configFile
	optional := false
	if cfgPath == "" {
		paths, err := defaultPaths()
		if err != nil {
			return nil, err
		}
		cfgPath = paths.Config
		optional = true
	}

	cfg, err := config.Load(cfgPath, optional)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(cfg.Log); err != nil {
		return nil, err
	}

	return engine.Setup(cfg, baseDir)
}

// defaultPaths returns the default vpath locations.
func defaultPaths() (*config.Paths, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	return paths, nil
}

// setupLogging routes logs to stderr with --debug, to the configured file
// when one is set, and nowhere otherwise.
func setupLogging(cfg config.LogConfig) error {
	if debugLog {
		log.Init(os.Stderr, log.LevelDebug)
		return nil
	}
	if cfg.File == "" {
		return nil
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	cleanup, err := log.InitFile(cfg.File, level)
	if err != nil {
		return err
	}
	closeLog = cleanup
	return nil
}

// outputJSON outputs a value as JSON to w.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
