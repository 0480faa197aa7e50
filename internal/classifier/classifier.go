package classifier

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skufu/maternalrisk/internal/observation"
)

// Classifier is an externally trained model exposing a single predict
// operation. Implementations are read-only after construction.
type Classifier interface {
	Predict(ctx context.Context, v observation.FeatureVector) (Output, error)
	Name() string
	Close() error
}

// Kind tags the variant held by an Output.
type Kind int

const (
	KindStringLabel Kind = iota + 1
	KindIntCode
)

func (k Kind) String() string {
	switch k {
	case KindStringLabel:
		return "string"
	case KindIntCode:
		return "int"
	default:
		return "invalid"
	}
}

// Output is the raw prediction: either a text label or an integer class code.
type Output struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label,omitempty"`
	Code  int64  `json:"code,omitempty"`
}

// StringLabel wraps a text label such as "High Risk".
func StringLabel(s string) Output { return Output{Kind: KindStringLabel, Label: s} }

// IntCode wraps an integer class code.
func IntCode(c int64) Output { return Output{Kind: KindIntCode, Code: c} }

func (o Output) String() string {
	switch o.Kind {
	case KindStringLabel:
		return strconv.Quote(o.Label)
	case KindIntCode:
		return strconv.FormatInt(o.Code, 10)
	default:
		return "<empty>"
	}
}

// Func adapts a plain function to Classifier.
type Func func(ctx context.Context, v observation.FeatureVector) (Output, error)

func (f Func) Predict(ctx context.Context, v observation.FeatureVector) (Output, error) {
	return f(ctx, v)
}

func (f Func) Name() string  { return "func" }
func (f Func) Close() error { return nil }

// Static always returns the same output. Useful as a stub.
func Static(out Output) Classifier {
	return Func(func(context.Context, observation.FeatureVector) (Output, error) {
		return out, nil
	})
}

func checkWidth(v observation.FeatureVector) error {
	if v.Len() != len(observation.FeatureNames) {
		return fmt.Errorf("classifier: expected %d features, got %d", len(observation.FeatureNames), v.Len())
	}
	return nil
}
