package audit

import (
	"context"
	"time"
)

// Entry is one prediction outcome. It carries no measurements.
type Entry struct {
	RequestID string
	Label     string
	Tier      string
	Model     string
	Scaler    string
	Soft      bool // unrecognised model output
	Failed    bool
	CreatedAt time.Time
}

// Recorder stores prediction outcomes.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Nop discards entries.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
