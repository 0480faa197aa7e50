package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Skufu/maternalrisk/internal/observation"
)

// RemoteError is a non-2xx response from the model server.
type RemoteError struct {
	StatusCode int
	Body       string // first 512 bytes
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("model server HTTP %d: %s", e.StatusCode, e.Body)
}

// Remote calls a model-serving process over HTTP. The request body uses the
// pandas "split" layout under "dataframe_split", which MLflow-style scoring
// servers accept. Calls are never retried.
type Remote struct {
	url        string
	token      string
	httpClient *http.Client
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		r.httpClient.Timeout = d
	}
}

// WithToken sends a Bearer token on every call.
func WithToken(token string) RemoteOption {
	return func(r *Remote) {
		r.token = token
	}
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) {
		r.httpClient = c
	}
}

// NewRemote creates a Remote posting to url.
func NewRemote(url string, opts ...RemoteOption) *Remote {
	r := &Remote{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type splitFrame struct {
	Columns []string    `json:"columns"`
	Data    [][]float64 `json:"data"`
}

type remoteRequest struct {
	DataframeSplit splitFrame `json:"dataframe_split"`
}

type remoteResponse struct {
	Prediction  json.RawMessage   `json:"prediction"`
	Predictions []json.RawMessage `json:"predictions"`
}

func (r *Remote) Name() string { return "remote:" + r.url }

func (r *Remote) Close() error {
	r.httpClient.CloseIdleConnections()
	return nil
}

// Predict posts a single row and decodes the returned label or class code.
func (r *Remote) Predict(ctx context.Context, v observation.FeatureVector) (Output, error) {
	if err := checkWidth(v); err != nil {
		return Output{}, err
	}

	body, err := json.Marshal(remoteRequest{DataframeSplit: splitFrame{
		Columns: v.Names,
		Data:    [][]float64{v.Values},
	}})
	if err != nil {
		return Output{}, fmt.Errorf("remote: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return Output{}, fmt.Errorf("remote: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Output{}, fmt.Errorf("remote: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Output{}, fmt.Errorf("remote: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s := string(data)
		if len(s) > 512 {
			s = s[:512]
		}
		return Output{}, &RemoteError{StatusCode: resp.StatusCode, Body: s}
	}

	var out remoteResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return Output{}, fmt.Errorf("remote: decode response: %w", err)
	}

	raw := out.Prediction
	if len(raw) == 0 {
		if len(out.Predictions) != 1 {
			return Output{}, fmt.Errorf("remote: expected 1 prediction, got %d", len(out.Predictions))
		}
		raw = out.Predictions[0]
	}
	return DecodeOutput(raw)
}

// DecodeOutput turns a JSON prediction value into an Output. Strings become
// labels, integral numbers become class codes, and a one-element array is
// unwrapped. Anything else is an error.
func DecodeOutput(raw json.RawMessage) (Output, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Output{}, fmt.Errorf("remote: decode prediction: %w", err)
	}
	return outputFrom(v)
}

func outputFrom(v any) (Output, error) {
	switch x := v.(type) {
	case string:
		return StringLabel(x), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return IntCode(n), nil
		}
		f, err := x.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
			return Output{}, fmt.Errorf("remote: non-integral class code %s", x)
		}
		return IntCode(int64(f)), nil
	case []any:
		if len(x) != 1 {
			return Output{}, fmt.Errorf("remote: expected 1 prediction, got %d", len(x))
		}
		return outputFrom(x[0])
	case nil:
		return Output{}, errors.New("remote: null prediction")
	default:
		return Output{}, fmt.Errorf("remote: unsupported prediction value %s", strings.TrimSpace(fmt.Sprint(x)))
	}
}
