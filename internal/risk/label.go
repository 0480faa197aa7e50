package risk

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Skufu/maternalrisk/internal/classifier"
)

// Label is a canonical, lower-case risk level.
type Label string

const (
	LabelLow     Label = "low risk"
	LabelMid     Label = "mid risk"
	LabelHigh    Label = "high risk"
	LabelUnknown Label = "unknown"
)

// Labels lists the recognised levels in code order.
var Labels = []Label{LabelLow, LabelMid, LabelHigh}

// Known reports whether l is one of the recognised levels.
func (l Label) Known() bool {
	return l == LabelLow || l == LabelMid || l == LabelHigh
}

// Normalize maps a raw model output to a canonical label. It is total:
// codes 0-2 and case variants of the three level names resolve, anything
// else is LabelUnknown.
func Normalize(out classifier.Output) Label {
	switch out.Kind {
	case classifier.KindIntCode:
		if out.Code >= 0 && out.Code < int64(len(Labels)) {
			return Labels[out.Code]
		}
	case classifier.KindStringLabel:
		// Casers are stateful, so one is made per call.
		s := Label(strings.TrimSpace(cases.Fold().String(out.Label)))
		if s.Known() {
			return s
		}
	}
	return LabelUnknown
}
