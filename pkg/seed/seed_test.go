package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemoRange(t *testing.T) {
	d := NewDemo(42)
	for id := 0; id < 500; id++ {
		likes, dislikes := d.Seed(id)
		assert.GreaterOrEqual(t, likes, MinLikes)
		assert.LessOrEqual(t, likes, MaxLikes)
		assert.GreaterOrEqual(t, dislikes, MinDislikes)
		assert.LessOrEqual(t, dislikes, MaxDislikes)
	}
}

func TestDemoDeterministicForSeed(t *testing.T) {
	a, b := NewDemo(7), NewDemo(7)
	for id := 0; id < 20; id++ {
		la, da := a.Seed(id)
		lb, db := b.Seed(id)
		assert.Equal(t, la, lb)
		assert.Equal(t, da, db)
	}
}

func TestFor(t *testing.T) {
	likes, dislikes := For(false, 0).Seed(1)
	assert.Zero(t, likes)
	assert.Zero(t, dislikes)

	_, ok := For(true, 1).(*Demo)
	assert.True(t, ok)
}
