package scaler

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/Skufu/maternalrisk/internal/observation"
)

// Normalizer transforms an assembled feature vector into the scale the
// classifier was trained on.
type Normalizer interface {
	Transform(v observation.FeatureVector) (observation.FeatureVector, error)
	Name() string
}

// Identity passes vectors through unchanged.
type Identity struct{}

func (Identity) Transform(v observation.FeatureVector) (observation.FeatureVector, error) {
	return v, nil
}

func (Identity) Name() string { return "none" }

// Kind names a fitted transform.
type Kind string

const (
	KindStandard Kind = "standard"
	KindMinMax   Kind = "minmax"
)

// Artifact is the on-disk form of a fitted scaler. It mirrors the fitted
// attributes of scikit-learn's StandardScaler (mean_, scale_) and
// MinMaxScaler (min_, scale_).
type Artifact struct {
	Kind         Kind      `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean,omitempty"`
	Scale        []float64 `json:"scale"`
	Min          []float64 `json:"min,omitempty"`
}

// Fitted applies a loaded Artifact.
type Fitted struct {
	art  Artifact
	path string
}

// Load reads and checks a scaler artifact.
func Load(path string) (*Fitted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("scaler: failed to parse %s: %w", path, err)
	}

	f, err := New(art)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// New checks an artifact against the model feature schema.
func New(art Artifact) (*Fitted, error) {
	n := len(observation.FeatureNames)

	if len(art.FeatureNames) > 0 && !slices.Equal(art.FeatureNames, observation.FeatureNames) {
		return nil, fmt.Errorf("scaler: feature names %v do not match model schema %v",
			art.FeatureNames, observation.FeatureNames)
	}
	if len(art.Scale) != n {
		return nil, fmt.Errorf("scaler: expected %d scale values, got %d", n, len(art.Scale))
	}

	switch art.Kind {
	case KindStandard:
		if len(art.Mean) != n {
			return nil, fmt.Errorf("scaler: expected %d mean values, got %d", n, len(art.Mean))
		}
		for i, s := range art.Scale {
			if s == 0 {
				return nil, fmt.Errorf("scaler: zero scale for feature %s", observation.FeatureNames[i])
			}
		}
	case KindMinMax:
		if len(art.Min) != n {
			return nil, fmt.Errorf("scaler: expected %d min values, got %d", n, len(art.Min))
		}
	default:
		return nil, fmt.Errorf("scaler: unknown kind %q", art.Kind)
	}

	return &Fitted{art: art}, nil
}

// Name reports the transform kind.
func (f *Fitted) Name() string { return string(f.art.Kind) }

// Path is the artifact file the scaler was loaded from, if any.
func (f *Fitted) Path() string { return f.path }

// Transform returns a new vector; the input is left untouched.
func (f *Fitted) Transform(v observation.FeatureVector) (observation.FeatureVector, error) {
	if v.Len() != len(f.art.Scale) {
		return observation.FeatureVector{}, fmt.Errorf("scaler: expected %d features, got %d", len(f.art.Scale), v.Len())
	}

	out := v.Clone()
	for i, x := range v.Values {
		switch f.art.Kind {
		case KindStandard:
			out.Values[i] = (x - f.art.Mean[i]) / f.art.Scale[i]
		case KindMinMax:
			out.Values[i] = x*f.art.Scale[i] + f.art.Min[i]
		}
	}
	return out, nil
}
