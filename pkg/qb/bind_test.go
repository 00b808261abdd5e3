package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinderTags(t *testing.T) {
	b := newBinder()

	assert.Equal(t, "id", b.bind("id", 1))
	assert.Equal(t, "t_age", b.bind("t.age", 2))
	assert.Equal(t, []string{"id", "t_age"}, b.tags)
	assert.Equal(t, map[string]any{"id": 1, "t_age": 2}, b.values)
}

func TestBinderCollision(t *testing.T) {
	b := newBinder()

	first := b.bind("id", 1)
	second := b.bind("id", 2)
	third := b.bind("id", 3)

	assert.Equal(t, "id", first)
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)

	// Both values stay retrievable under their own tags.
	assert.Equal(t, 1, b.values[first])
	assert.Equal(t, 2, b.values[second])
	assert.Equal(t, 3, b.values[third])
}

func TestBinderCollisionDeterministic(t *testing.T) {
	mint := func() []string {
		b := newBinder()
		return []string{b.bind("a.b", 1), b.bind("a.b", 2), b.bind("a.b", 3)}
	}
	assert.Equal(t, mint(), mint())
	assert.Equal(t, []string{"a_b", "a_b1", "a_b2"}, mint())
}
