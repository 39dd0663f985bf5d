package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(120, 40)
	assert.Equal(t, 2, l.HeaderHeight)
	assert.Equal(t, 1, l.StatusHeight)
	assert.Equal(t, 120, l.BodyWidth)
	assert.Equal(t, 37, l.BodyHeight)

	tiny := ComputeLayout(10, 4)
	assert.Equal(t, minBodyHeight, tiny.BodyHeight)
}
