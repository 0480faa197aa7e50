package observation

// FeatureNames is the column order the classifier was trained on.
var FeatureNames = []string{"Age", "SystolicBP", "DiastolicBP", "BS", "BodyTemp", "HeartRate"}

// FeatureVector is a single named row in FeatureNames order.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// Assemble lays the observation out in model feature order.
func Assemble(o Observation) FeatureVector {
	names := make([]string, len(FeatureNames))
	copy(names, FeatureNames)
	return FeatureVector{
		Names: names,
		Values: []float64{
			float64(o.Age),
			float64(o.SystolicBP),
			float64(o.DiastolicBP),
			float64(o.BS),
			o.BodyTemp,
			float64(o.HeartRate),
		},
	}
}

// Len returns the number of features.
func (v FeatureVector) Len() int { return len(v.Values) }

// Float32 returns the values narrowed for tensor inputs.
func (v FeatureVector) Float32() []float32 {
	out := make([]float32, len(v.Values))
	for i, x := range v.Values {
		out[i] = float32(x)
	}
	return out
}

// Clone returns a deep copy.
func (v FeatureVector) Clone() FeatureVector {
	names := make([]string, len(v.Names))
	copy(names, v.Names)
	values := make([]float64, len(v.Values))
	copy(values, v.Values)
	return FeatureVector{Names: names, Values: values}
}
