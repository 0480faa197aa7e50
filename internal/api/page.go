package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/Skufu/maternalrisk/internal/observation"
)

type pageField struct {
	observation.Field
	Value string
	Error string
}

type summaryRow struct {
	Name  string
	Value string
}

type pageData struct {
	Fields  []pageField
	Summary []summaryRow
	Result  *PredictResponse
	Failure string
	Model   string
	Scaler  string
}

func (h *Handler) page(o observation.Observation) pageData {
	values := observation.Assemble(o).Values
	fields := lo.Map(observation.Fields(), func(f observation.Field, i int) pageField {
		return pageField{Field: f, Value: formatValue(f, values[i])}
	})
	return pageData{
		Fields: fields,
		Model:  h.predictor.ModelName(),
		Scaler: h.predictor.ScalerName(),
	}
}

func (d *pageData) fillSummary() {
	d.Summary = lo.Map(d.Fields, func(f pageField, _ int) summaryRow {
		return summaryRow{Name: f.Name, Value: f.Value}
	})
}

func formatValue(f observation.Field, v float64) string {
	if f.Integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page(observation.Default()))
}

func (h *Handler) predictForm(c *gin.Context) {
	var o observation.Observation
	if err := c.ShouldBind(&o); err != nil {
		data := h.page(observation.Default())
		data.Failure = "Please enter numeric values for every field."
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}

	data := h.page(o)
	data.fillSummary()

	a, err := h.run(c, o)
	if err != nil {
		var verr *observation.ValidationError
		if errors.As(err, &verr) {
			byKey := lo.SliceToMap(verr.Fields, func(fe observation.FieldError) (string, string) {
				return fe.Field, fe.Message
			})
			for i := range data.Fields {
				data.Fields[i].Error = byKey[data.Fields[i].Key]
			}
			data.Summary = nil
			c.HTML(http.StatusUnprocessableEntity, "index.html", data)
			return
		}

		data.Failure = failureMessage(err)
		c.HTML(http.StatusInternalServerError, "index.html", data)
		return
	}

	resp := newPredictResponse(RequestID(c), a)
	data.Result = &resp
	c.HTML(http.StatusOK, "index.html", data)
}
