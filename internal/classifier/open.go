package classifier

import (
	"fmt"
	"os"
	"time"
)

// Backends understood by Open.
const (
	BackendONNX   = "onnx"
	BackendRemote = "remote"
)

// Options selects and configures a model backend.
type Options struct {
	Backend   string
	ModelPath string
	LibPath   string
	URL       string
	Token     string
	Timeout   time.Duration
}

// Open loads the configured model. Any failure here means no prediction is
// possible and the caller should refuse to start.
func Open(opts Options) (Classifier, error) {
	switch opts.Backend {
	case BackendONNX:
		if _, err := os.Stat(opts.ModelPath); err != nil {
			return nil, fmt.Errorf("model artifact: %w", err)
		}
		m, err := NewONNX(opts.ModelPath, opts.LibPath)
		if err != nil {
			return nil, fmt.Errorf("model artifact %s: %w", opts.ModelPath, err)
		}
		return m, nil
	case BackendRemote:
		if opts.URL == "" {
			return nil, fmt.Errorf("model artifact: remote backend requires a URL")
		}
		var ropts []RemoteOption
		if opts.Timeout > 0 {
			ropts = append(ropts, WithTimeout(opts.Timeout))
		}
		if opts.Token != "" {
			ropts = append(ropts, WithToken(opts.Token))
		}
		return NewRemote(opts.URL, ropts...), nil
	default:
		return nil, fmt.Errorf("model artifact: unknown backend %q", opts.Backend)
	}
}
