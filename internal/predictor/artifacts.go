package predictor

import (
	"fmt"

	"github.com/Skufu/maternalrisk/internal/classifier"
	"github.com/Skufu/maternalrisk/internal/config"
	"github.com/Skufu/maternalrisk/internal/scaler"
)

// LoadArtifacts loads the scaler (only when RISK_SCALER_MODE=file) and then
// the classifier. Callers treat any error as fatal.
func LoadArtifacts(cfg config.Config) (Artifacts, error) {
	var norm scaler.Normalizer = scaler.Identity{}
	if cfg.Scaler.Mode == config.ScalerFile {
		s, err := scaler.Load(cfg.Scaler.Path)
		if err != nil {
			return Artifacts{}, fmt.Errorf("scaler artifact: %w", err)
		}
		norm = s
	}

	cls, err := classifier.Open(cfg.ClassifierOptions())
	if err != nil {
		return Artifacts{}, err
	}

	return Artifacts{Classifier: cls, Normalizer: norm}, nil
}
