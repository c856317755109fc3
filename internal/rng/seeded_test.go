package rng

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewSeeded(t *testing.T) {
	a := assert.New(t)

	g1 := NewSeeded(42)
	g2 := NewSeeded(42)
	for i := 0; i < 100; i++ {
		n := g1.Intn(52)
		a.Equal(n, g2.Intn(52))
		a.True(n >= 0 && n < 52)
	}
}
