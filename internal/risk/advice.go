package risk

import "strings"

// Tier controls how an advisory is styled.
type Tier string

const (
	TierInformational Tier = "informational"
	TierWarning       Tier = "warning"
	TierUrgent        Tier = "urgent"
	TierNeutral       Tier = "neutral"
)

// Advice is the display content for a label.
type Advice struct {
	Label    Label  `json:"label"`
	Tier     Tier   `json:"tier"`
	Headline string `json:"headline"`
	Message  string `json:"message"`
}

var advisories = map[Label]struct {
	tier Tier
	text string
}{
	LabelLow: {TierInformational, "You are currently at low risk. Maintain a balanced diet, stay hydrated, take prenatal vitamins, and engage in light physical activity like walking or yoga."},
	LabelMid: {TierWarning, "You are at moderate risk. Please monitor your blood pressure, sugar levels, and heart rate regularly. Consult your doctor to review your prenatal care plan."},
	LabelHigh: {TierUrgent, "You are at high risk. Immediate medical attention is recommended. Contact your healthcare provider for a full clinical assessment."},
	LabelUnknown: {TierNeutral, "The model returned a result that could not be interpreted. Please verify the entered values and try again, or consult your healthcare provider."},
}

// Advise returns the advisory for a canonical label. Labels outside the
// known set get the neutral advisory.
func Advise(l Label) Advice {
	if !l.Known() {
		l = LabelUnknown
	}
	a := advisories[l]
	return Advice{
		Label:    l,
		Tier:     a.tier,
		Headline: "Predicted Maternal Risk Level: " + strings.ToUpper(string(l)),
		Message:  a.text,
	}
}
