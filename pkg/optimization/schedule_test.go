package optimization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometric(t *testing.T) {
	s := Geometric(0.5)
	assert.Equal(t, 10.0, s(10, 0))
	assert.Equal(t, 5.0, s(10, 1))
	assert.Equal(t, 2.5, s(10, 2))
}

func TestFast(t *testing.T) {
	s := Fast()
	assert.Equal(t, 10.0, s(10, 0))
	assert.Equal(t, 5.0, s(10, 1))
	assert.InDelta(t, 10.0/3.0, s(10, 2), 1e-9)
}
