package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"firesim/internal/config"
	"firesim/internal/game"
	"firesim/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	configDir := pflag.StringP("config", "c", ".", "directory containing firesim.{json,yaml,toml}")
	pflag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logFile = f
	}
	log := logging.New(cfg.LogLevel, os.Stdout, logFile)
	log.Info().Str("loglevel", log.GetLevel().String()).Str("config", *configDir).Msg("Logging set up")

	if err := game.Run(cfg, log); err != nil {
		log.Error().Err(err).Msg("Run failed")
		return 1
	}
	return 0
}
