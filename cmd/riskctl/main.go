package main

import (
	"os"

	"github.com/Skufu/maternalrisk/internal/config"
	"github.com/Skufu/maternalrisk/internal/logging"
	"github.com/Skufu/maternalrisk/internal/predictor"
)

func main() {
	a := &app{
		load: func(cfg config.Config) (predictor.Artifacts, error) {
			if err := cfg.Validate(); err != nil {
				return predictor.Artifacts{}, err
			}
			return predictor.LoadArtifacts(cfg)
		},
		logger: logging.New(os.Stderr, false, logging.ParseLevel(os.Getenv("LOG_LEVEL"))),
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
