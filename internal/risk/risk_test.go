package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skufu/maternalrisk/internal/classifier"
)

func TestNormalize_Codes(t *testing.T) {
	assert.Equal(t, LabelLow, Normalize(classifier.IntCode(0)))
	assert.Equal(t, LabelMid, Normalize(classifier.IntCode(1)))
	assert.Equal(t, LabelHigh, Normalize(classifier.IntCode(2)))
}

func TestNormalize_StringCaseVariants(t *testing.T) {
	tests := []struct {
		in   string
		want Label
	}{
		{"low risk", LabelLow},
		{"Low Risk", LabelLow},
		{"LOW RISK", LabelLow},
		{"lOw RiSk", LabelLow},
		{"mid risk", LabelMid},
		{"Mid Risk", LabelMid},
		{"MID RISK", LabelMid},
		{"high risk", LabelHigh},
		{"High Risk", LabelHigh},
		{"HIGH RISK", LabelHigh},
		{"  High Risk\n", LabelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(classifier.StringLabel(tt.in)))
		})
	}
}

func TestNormalize_Unknown(t *testing.T) {
	outs := []classifier.Output{
		classifier.IntCode(9),
		classifier.IntCode(3),
		classifier.IntCode(-1),
		classifier.IntCode(math.MaxInt64),
		classifier.IntCode(math.MinInt64),
		classifier.StringLabel(""),
		classifier.StringLabel("moderate"),
		classifier.StringLabel("lowrisk"),
		classifier.StringLabel("unknown"),
		classifier.StringLabel("2"),
		{},
		{Kind: classifier.Kind(42), Code: 1},
	}
	for _, out := range outs {
		t.Run(out.String(), func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, LabelUnknown, Normalize(out))
			})
		})
	}
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		label    Label
		tier     Tier
		contains string
	}{
		{LabelLow, TierInformational, "balanced diet"},
		{LabelMid, TierWarning, "Consult your doctor"},
		{LabelHigh, TierUrgent, "Immediate medical attention"},
		{LabelUnknown, TierNeutral, "verify the entered values"},
	}
	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			a := Advise(tt.label)
			assert.Equal(t, tt.label, a.Label)
			assert.Equal(t, tt.tier, a.Tier)
			assert.Contains(t, a.Message, tt.contains)
		})
	}
}

func TestAdvise_Pure(t *testing.T) {
	for _, l := range []Label{LabelLow, LabelMid, LabelHigh, LabelUnknown} {
		assert.Equal(t, Advise(l), Advise(l))
	}
}

func TestAdvise_Headline(t *testing.T) {
	assert.Equal(t, "Predicted Maternal Risk Level: HIGH RISK", Advise(LabelHigh).Headline)
}

func TestAdvise_NonCanonicalFallsBackToNeutral(t *testing.T) {
	a := Advise(Label("Low Risk"))
	assert.Equal(t, LabelUnknown, a.Label)
	assert.Equal(t, TierNeutral, a.Tier)
}
