package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Skufu/maternalrisk/internal/config"
	"github.com/Skufu/maternalrisk/internal/predictor"
)

type app struct {
	load   func(cfg config.Config) (predictor.Artifacts, error)
	logger *slog.Logger

	modelPath  string
	scalerPath string
}

// config reads the environment and applies command-line overrides. A
// --scaler path always switches the scaler mode to file.
func (a *app) config() config.Config {
	cfg := config.Load()
	if a.modelPath != "" {
		cfg.Model.Path = a.modelPath
	}
	if a.scalerPath != "" {
		cfg.Scaler = config.ScalerConfig{Mode: config.ScalerFile, Path: a.scalerPath}
	}
	return cfg
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "riskctl",
		Short:        "Maternal health risk predictions from the command line",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.modelPath, "model", "", "Path to the ONNX model (overrides RISK_MODEL_PATH)")
	root.PersistentFlags().StringVar(&a.scalerPath, "scaler", "", "Path to a scaler artifact; implies RISK_SCALER_MODE=file")

	root.AddCommand(newPredictCmd(a))
	root.AddCommand(newSchemaCmd())
	root.AddCommand(versionCmd)
	return root
}
