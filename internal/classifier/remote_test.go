package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/maternalrisk/internal/observation"
)

func TestRemote_SendsSplitFrame(t *testing.T) {
	var got remoteRequest
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"predictions":["High Risk"]}`))
	}))
	defer srv.Close()

	c := NewRemote(srv.URL, WithToken("tok"))
	out, err := c.Predict(context.Background(), observation.Assemble(observation.Default()))
	require.NoError(t, err)

	assert.Equal(t, StringLabel("High Risk"), out)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, observation.FeatureNames, got.DataframeSplit.Columns)
	require.Len(t, got.DataframeSplit.Data, 1)
	assert.Equal(t, []float64{30, 120, 80, 100, 98.6, 75}, got.DataframeSplit.Data[0])
}

func TestRemote_SinglePrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prediction": 2}`))
	}))
	defer srv.Close()

	out, err := NewRemote(srv.URL).Predict(context.Background(), observation.Assemble(observation.Default()))
	require.NoError(t, err)
	assert.Equal(t, IntCode(2), out)
}

func TestRemote_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"prediction": 0}`))
	}))
	defer srv.Close()

	_, err := NewRemote(srv.URL).Predict(context.Background(), observation.Assemble(observation.Default()))
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRemote_ErrorStatusNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	_, err := NewRemote(srv.URL).Predict(context.Background(), observation.Assemble(observation.Default()))
	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusInternalServerError, rerr.StatusCode)
	assert.Len(t, rerr.Body, 512)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemote_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `oops`},
		{"empty object", `{}`},
		{"two predictions", `{"predictions":[0,1]}`},
		{"fractional", `{"prediction":0.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRemote(srv.URL).Predict(context.Background(), observation.Assemble(observation.Default()))
			require.Error(t, err)
		})
	}
}

func TestRemote_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewRemote(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Predict(context.Background(), observation.Assemble(observation.Default()))
	require.Error(t, err)
}

func TestRemote_RejectsWrongWidth(t *testing.T) {
	c := NewRemote("http://127.0.0.1:1")
	_, err := c.Predict(context.Background(), observation.FeatureVector{Values: []float64{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 6 features")
}
