package observation

// Observation is one set of clinical measurements submitted for a risk
// prediction. It is built fresh per request and never mutated afterwards.
type Observation struct {
	Age         int     `json:"age" form:"age" validate:"gte=10,lte=100"`
	SystolicBP  int     `json:"systolicBP" form:"systolicBP" validate:"gte=80,lte=200"`
	DiastolicBP int     `json:"diastolicBP" form:"diastolicBP" validate:"gte=50,lte=130"`
	BS          int     `json:"bs" form:"bs" validate:"gte=50,lte=300"`
	BodyTemp    float64 `json:"bodyTemp" form:"bodyTemp" validate:"gte=90,lte=110"`
	HeartRate   int     `json:"heartRate" form:"heartRate" validate:"gte=40,lte=200"`
}

// Field describes one input of the collection form.
type Field struct {
	Name    string  `json:"name"`    // model feature name
	Key     string  `json:"key"`     // json / form key
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
	Integer bool    `json:"integer"`
}

var fields = []Field{
	{Name: "Age", Key: "age", Label: "Age", Unit: "years", Min: 10, Max: 100, Step: 1, Default: 30, Integer: true},
	{Name: "SystolicBP", Key: "systolicBP", Label: "Systolic Blood Pressure", Unit: "mmHg", Min: 80, Max: 200, Step: 1, Default: 120, Integer: true},
	{Name: "DiastolicBP", Key: "diastolicBP", Label: "Diastolic Blood Pressure", Unit: "mmHg", Min: 50, Max: 130, Step: 1, Default: 80, Integer: true},
	{Name: "BS", Key: "bs", Label: "Blood Sugar", Unit: "mg/dL", Min: 50, Max: 300, Step: 1, Default: 100, Integer: true},
	{Name: "BodyTemp", Key: "bodyTemp", Label: "Body Temperature", Unit: "°F", Min: 90, Max: 110, Step: 0.1, Default: 98.6},
	{Name: "HeartRate", Key: "heartRate", Label: "Heart Rate", Unit: "bpm", Min: 40, Max: 200, Step: 1, Default: 75, Integer: true},
}

// Fields returns the form fields in model feature order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Default returns the observation the form is prefilled with.
func Default() Observation {
	return Observation{
		Age:         30,
		SystolicBP:  120,
		DiastolicBP: 80,
		BS:          100,
		BodyTemp:    98.6,
		HeartRate:   75,
	}
}

func fieldByName(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Input is the wire form of an Observation. Pointer fields let a missing
// value be told apart from a zero.
type Input struct {
	Age         *int     `json:"age"`
	SystolicBP  *int     `json:"systolicBP"`
	DiastolicBP *int     `json:"diastolicBP"`
	BS          *int     `json:"bs"`
	BodyTemp    *float64 `json:"bodyTemp"`
	HeartRate   *int     `json:"heartRate"`
}

// Observation converts the input, reporting every missing field.
func (in Input) Observation() (Observation, error) {
	var missing []FieldError
	need := func(ok bool, name string) {
		if !ok {
			f, _ := fieldByName(name)
			missing = append(missing, FieldError{Field: f.Key, Message: f.Label + " is required"})
		}
	}
	need(in.Age != nil, "Age")
	need(in.SystolicBP != nil, "SystolicBP")
	need(in.DiastolicBP != nil, "DiastolicBP")
	need(in.BS != nil, "BS")
	need(in.BodyTemp != nil, "BodyTemp")
	need(in.HeartRate != nil, "HeartRate")
	if len(missing) > 0 {
		return Observation{}, &ValidationError{Fields: missing}
	}

	return Observation{
		Age:         *in.Age,
		SystolicBP:  *in.SystolicBP,
		DiastolicBP: *in.DiastolicBP,
		BS:          *in.BS,
		BodyTemp:    *in.BodyTemp,
		HeartRate:   *in.HeartRate,
	}, nil
}
