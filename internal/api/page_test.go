package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/maternalrisk/internal/classifier"
	"github.com/Skufu/maternalrisk/internal/observation"
)

func postForm(r http.Handler, values url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func defaultForm() url.Values {
	return url.Values{
		"age":         {"30"},
		"systolicBP":  {"120"},
		"diastolicBP": {"80"},
		"bs":          {"100"},
		"bodyTemp":    {"98.6"},
		"heartRate":   {"75"},
	}
}

func TestIndex_PrefillsDefaults(t *testing.T) {
	r := newRouter(t, classifier.Static(classifier.IntCode(0)), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `name="age" id="age" value="30"`)
	assert.Contains(t, body, `name="bodyTemp" id="bodyTemp" value="98.6"`)
	assert.Contains(t, body, "Body Temperature (°F)")
	assert.Contains(t, body, "Model: func")
	assert.NotContains(t, body, "Predicted Maternal Risk Level")
}

func TestPredictForm_RendersResult(t *testing.T) {
	r := newRouter(t, classifier.Static(classifier.StringLabel("High Risk")), nil)

	form := defaultForm()
	form.Set("age", "42")
	w := postForm(r, form)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Predicted Maternal Risk Level: HIGH RISK")
	assert.Contains(t, body, `class="advice tier-urgent"`)
	assert.Contains(t, body, "Immediate medical attention is recommended.")
	assert.Contains(t, body, "Summary of Your Inputs")
	assert.Contains(t, body, "<td>42</td>")
	assert.Contains(t, body, `value="42"`)
}

func TestPredictForm_UnknownShowsWarning(t *testing.T) {
	r := newRouter(t, classifier.Static(classifier.IntCode(9)), nil)

	w := postForm(r, defaultForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Predicted Maternal Risk Level: UNKNOWN")
	assert.Contains(t, w.Body.String(), "tier-neutral")
}

func TestPredictForm_ValidationErrors(t *testing.T) {
	r := newRouter(t, classifier.Static(classifier.IntCode(0)), nil)

	form := defaultForm()
	form.Set("heartRate", "250")
	w := postForm(r, form)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Heart Rate must be between 40 and 200 bpm")
	assert.Contains(t, body, `class="field invalid"`)
	assert.Contains(t, body, `value="250"`)
	assert.NotContains(t, body, "Predicted Maternal Risk Level")
}

func TestPredictForm_NotNumeric(t *testing.T) {
	r := newRouter(t, classifier.Static(classifier.IntCode(0)), nil)

	form := defaultForm()
	form.Set("bs", "lots")
	w := postForm(r, form)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter numeric values for every field.")
}

func TestPredictForm_ModelFailure(t *testing.T) {
	cls := classifier.Func(func(context.Context, observation.FeatureVector) (classifier.Output, error) {
		return classifier.Output{}, errors.New("runtime unavailable")
	})
	r := newRouter(t, cls, nil)

	w := postForm(r, defaultForm())
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Prediction failed: runtime unavailable")
	assert.Contains(t, body, "<td>98.6</td>")
}

func TestFormatValue(t *testing.T) {
	fields := observation.Fields()
	assert.Equal(t, "30", formatValue(fields[0], 30))
	assert.Equal(t, "98.6", formatValue(fields[4], 98.6))
	assert.Equal(t, "99", formatValue(fields[4], 99))
}
