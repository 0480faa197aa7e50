package observation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble_FixedOrder(t *testing.T) {
	o := Observation{Age: 41, SystolicBP: 140, DiastolicBP: 95, BS: 180, BodyTemp: 101.2, HeartRate: 88}
	v := Assemble(o)

	assert.Equal(t, []string{"Age", "SystolicBP", "DiastolicBP", "BS", "BodyTemp", "HeartRate"}, v.Names)
	assert.Equal(t, []float64{41, 140, 95, 180, 101.2, 88}, v.Values)
	assert.Equal(t, 6, v.Len())
}

func TestAssemble_OrderStableAcrossRange(t *testing.T) {
	for age := 10; age <= 100; age += 15 {
		for _, temp := range []float64{90.0, 98.6, 110.0} {
			o := Default()
			o.Age = age
			o.BodyTemp = temp
			v := Assemble(o)
			assert.Equal(t, FeatureNames, v.Names)
			assert.Equal(t, float64(age), v.Values[0])
			assert.Equal(t, temp, v.Values[4])
		}
	}
}

func TestAssemble_DoesNotAliasFeatureNames(t *testing.T) {
	v := Assemble(Default())
	v.Names[0] = "changed"
	assert.Equal(t, "Age", FeatureNames[0])
}

func TestFeatureVector_Float32(t *testing.T) {
	v := Assemble(Default())
	f := v.Float32()
	assert.Len(t, f, 6)
	assert.Equal(t, float32(30), f[0])
	assert.InDelta(t, 98.6, float64(f[4]), 1e-4)
}

func TestFeatureVector_Clone(t *testing.T) {
	v := Assemble(Default())
	c := v.Clone()
	c.Values[0] = 99
	c.Names[0] = "x"
	assert.Equal(t, 30.0, v.Values[0])
	assert.Equal(t, "Age", v.Names[0])
}
