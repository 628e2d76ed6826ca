package tally_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
)

func TestCounter_ZeroValue(t *testing.T) {
	t.Parallel()

	var c tally.Counter[string]

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Get("x"))
	assert.Empty(t, c.MostCommon())

	c.Inc("x")
	assert.Equal(t, 1, c.Get("x"))
}

func TestCounter_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	c := tally.NewCounter[string]()
	c.Inc("b")
	c.Inc("a")
	c.Add("b", 2)
	c.Add("c", 0)

	assert.Equal(t, []string{"b", "a", "c"}, c.Keys())
	assert.Equal(t, 0, c.Get("c"))
	assert.Equal(t, 4, c.Total())
	assert.Equal(t, 3, c.Len())
}

func TestCounter_MostCommonStable(t *testing.T) {
	t.Parallel()

	c := tally.NewCounter[string]()

	for _, k := range []string{"q", "w", "e", "w", "e", "r"} {
		c.Inc(k)
	}

	assert.Equal(t, []tally.Entry[string]{
		{Key: "w", Count: 2},
		{Key: "e", Count: 2},
		{Key: "q", Count: 1},
		{Key: "r", Count: 1},
	}, c.MostCommon())

	assert.Equal(t, []tally.Entry[string]{
		{Key: "w", Count: 2},
		{Key: "e", Count: 2},
	}, c.AtLeast(2))
}

func TestCounter_Merge(t *testing.T) {
	t.Parallel()

	a := tally.NewCounter[string]()
	a.Inc("x")

	b := tally.NewCounter[string]()
	b.Add("y", 3)
	b.Inc("x")

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, 2, a.Get("x"))
	assert.Equal(t, 3, a.Get("y"))
	assert.Equal(t, []string{"x", "y"}, a.Keys())
}
