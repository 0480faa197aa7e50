package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Skufu/maternalrisk/internal/classifier"
	"github.com/Skufu/maternalrisk/internal/observation"
	"github.com/Skufu/maternalrisk/internal/risk"
	"github.com/Skufu/maternalrisk/internal/scaler"
)

// Artifacts is the model and scaler pair loaded at startup. Both are
// read-only for the life of the process.
type Artifacts struct {
	Classifier classifier.Classifier
	Normalizer scaler.Normalizer
}

// Assessment is the outcome of one prediction.
type Assessment struct {
	Observation observation.Observation   `json:"observation"`
	Features    observation.FeatureVector `json:"features"`
	Output      classifier.Output         `json:"output"`
	Label       risk.Label                `json:"label"`
	Advice      risk.Advice               `json:"advice"`
	Soft        bool                      `json:"soft"`
	Model       string                    `json:"model"`
	Scaler      string                    `json:"scaler"`
}

// PredictionError reports a failed model call together with the input
// that caused it.
type PredictionError struct {
	Observation observation.Observation
	Err         error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed for %+v: %v", e.Observation, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

// Predictor runs validate → assemble → normalize → classify → label → advise.
type Predictor struct {
	art    Artifacts
	logger *slog.Logger
}

// New builds a Predictor. A nil Normalizer means pass-through.
func New(art Artifacts, logger *slog.Logger) (*Predictor, error) {
	if art.Classifier == nil {
		return nil, errors.New("predictor: classifier is required")
	}
	if art.Normalizer == nil {
		art.Normalizer = scaler.Identity{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Predictor{art: art, logger: logger}, nil
}

// ModelName identifies the loaded classifier.
func (p *Predictor) ModelName() string { return p.art.Classifier.Name() }

// ScalerName identifies the configured normalizer.
func (p *Predictor) ScalerName() string { return p.art.Normalizer.Name() }

// Predict scores one observation. Validation failures are returned as
// *observation.ValidationError and model failures as *PredictionError.
// An unrecognised model output is not an error: it yields LabelUnknown
// with Soft set.
func (p *Predictor) Predict(ctx context.Context, o observation.Observation) (Assessment, error) {
	if err := o.Validate(); err != nil {
		return Assessment{}, err
	}

	features := observation.Assemble(o)

	scaled, err := p.art.Normalizer.Transform(features)
	if err != nil {
		return Assessment{}, &PredictionError{Observation: o, Err: err}
	}

	out, err := p.art.Classifier.Predict(ctx, scaled)
	if err != nil {
		return Assessment{}, &PredictionError{Observation: o, Err: err}
	}

	label := risk.Normalize(out)
	a := Assessment{
		Observation: o,
		Features:    features,
		Output:      out,
		Label:       label,
		Advice:      risk.Advise(label),
		Soft:        label == risk.LabelUnknown,
		Model:       p.ModelName(),
		Scaler:      p.ScalerName(),
	}

	if a.Soft {
		p.logger.WarnContext(ctx, "unrecognised model output", "output", out.String(), "model", a.Model)
	} else {
		p.logger.DebugContext(ctx, "prediction", "label", string(label), "model", a.Model)
	}
	return a, nil
}
