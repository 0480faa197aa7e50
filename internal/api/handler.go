package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/maternalrisk/internal/audit"
	"github.com/Skufu/maternalrisk/internal/classifier"
	"github.com/Skufu/maternalrisk/internal/observation"
	"github.com/Skufu/maternalrisk/internal/predictor"
	"github.com/Skufu/maternalrisk/internal/risk"
)

// Predictor is the pipeline the handlers drive.
type Predictor interface {
	Predict(ctx context.Context, o observation.Observation) (predictor.Assessment, error)
	ModelName() string
	ScalerName() string
}

// Handler serves the prediction form and JSON API.
type Handler struct {
	predictor Predictor
	audit     audit.Recorder
	logger    *slog.Logger
}

// NewHandler wires a Handler. A nil recorder disables auditing.
func NewHandler(p Predictor, rec audit.Recorder, logger *slog.Logger) *Handler {
	if rec == nil {
		rec = audit.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{predictor: p, audit: rec, logger: logger}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.index)
	r.POST("/predict", h.predictForm)
	r.GET("/api/schema", h.schema)
	r.POST("/api/predict", h.predictJSON)
}

// PredictResponse is the JSON body of a successful prediction.
type PredictResponse struct {
	RequestID string                    `json:"requestId"`
	Label     risk.Label                `json:"label"`
	Tier      risk.Tier                 `json:"tier"`
	Headline  string                    `json:"headline"`
	Message   string                    `json:"message"`
	Soft      bool                      `json:"soft"`
	Warning   string                    `json:"warning,omitempty"`
	Output    classifier.Output         `json:"output"`
	Input     observation.Observation   `json:"input"`
	Features  observation.FeatureVector `json:"features"`
	Model     string                    `json:"model"`
	Scaler    string                    `json:"scaler"`
}

const unknownWarning = "The model output was not recognised; the result is shown as unknown."

func newPredictResponse(requestID string, a predictor.Assessment) PredictResponse {
	resp := PredictResponse{
		RequestID: requestID,
		Label:     a.Label,
		Tier:      a.Advice.Tier,
		Headline:  a.Advice.Headline,
		Message:   a.Advice.Message,
		Soft:      a.Soft,
		Output:    a.Output,
		Input:     a.Observation,
		Features:  a.Features,
		Model:     a.Model,
		Scaler:    a.Scaler,
	}
	if a.Soft {
		resp.Warning = unknownWarning
	}
	return resp
}

func (h *Handler) schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"features": observation.FeatureNames,
		"fields":   observation.Fields(),
		"defaults": observation.Default(),
		"model":    h.predictor.ModelName(),
		"scaler":   h.predictor.ScalerName(),
	})
}

func (h *Handler) predictJSON(c *gin.Context) {
	var in observation.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	o, err := in.Observation()
	if err != nil {
		h.writeError(c, o, err)
		return
	}

	a, err := h.run(c, o)
	if err != nil {
		h.writeError(c, o, err)
		return
	}
	c.JSON(http.StatusOK, newPredictResponse(RequestID(c), a))
}

func (h *Handler) writeError(c *gin.Context, o observation.Observation, err error) {
	var verr *observation.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation_failed",
			"fields": verr.Fields,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "prediction_failed",
		"message":   failureMessage(err),
		"input":     o,
		"requestId": RequestID(c),
	})
}

// run predicts and records the outcome. Audit failures are logged only.
func (h *Handler) run(c *gin.Context, o observation.Observation) (predictor.Assessment, error) {
	ctx := c.Request.Context()
	reqID := RequestID(c)

	a, err := h.predictor.Predict(ctx, o)

	var verr *observation.ValidationError
	if errors.As(err, &verr) {
		return a, err
	}

	entry := audit.Entry{
		RequestID: reqID,
		Model:     h.predictor.ModelName(),
		Scaler:    h.predictor.ScalerName(),
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		entry.Label = string(risk.LabelUnknown)
		entry.Tier = string(risk.TierNeutral)
		entry.Failed = true
		h.logger.ErrorContext(ctx, "prediction failed", "request_id", reqID, "error", err)
	} else {
		entry.Label = string(a.Label)
		entry.Tier = string(a.Advice.Tier)
		entry.Soft = a.Soft
		h.logger.InfoContext(ctx, "prediction", "request_id", reqID, "label", string(a.Label), "soft", a.Soft)
	}

	if aerr := h.audit.Record(ctx, entry); aerr != nil {
		h.logger.WarnContext(ctx, "audit record failed", "request_id", reqID, "error", aerr)
	}
	return a, err
}

func failureMessage(err error) string {
	var perr *predictor.PredictionError
	if errors.As(err, &perr) {
		return "Prediction failed: " + perr.Err.Error()
	}
	return "Prediction failed: " + err.Error()
}
