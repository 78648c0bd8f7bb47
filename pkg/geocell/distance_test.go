package geocell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForIdenticalPoint(t *testing.T) {
	p, _ := NewPoint(47.291288, 8.56613)
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistanceContinentalAccuracy(t *testing.T) {
	a, _ := NewPoint(37, -122)
	b, _ := NewPoint(42, -75)
	d := Distance(a, b)
	assert.InDelta(t, 4_024_365.0, d, 4_024_365.0*0.005)
}

func TestDistanceTransContinentalAccuracy(t *testing.T) {
	a, _ := NewPoint(36.12, -86.67)
	b, _ := NewPoint(33.94, -118.40)
	d := Distance(a, b)
	assert.InDelta(t, 2_889_677.0, d, 2_889_677.0*0.005)
}

func TestDistanceSymmetric(t *testing.T) {
	a, _ := NewPoint(10, 10)
	b, _ := NewPoint(-10, -10)
	assert.Equal(t, Distance(a, b), Distance(b, a))
}
