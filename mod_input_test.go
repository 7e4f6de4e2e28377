package spiral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_setKeyEdges(t *testing.T) {
	input := &Input{}

	input.setKey(KeyG, true)
	assert.True(t, input.Pressed[KeyG])
	assert.True(t, input.JustPressed[KeyG])
	assert.False(t, input.JustReleased[KeyG])

	input.setKey(KeyG, true)
	assert.True(t, input.Pressed[KeyG])
	assert.False(t, input.JustPressed[KeyG], "held key is not pressed again")

	input.setKey(KeyG, false)
	assert.False(t, input.Pressed[KeyG])
	assert.True(t, input.JustReleased[KeyG])

	input.setKey(KeyG, false)
	assert.False(t, input.JustReleased[KeyG])
}

func TestInput_ScrollIsPerFrame(t *testing.T) {
	input := &Input{}

	input.addScroll(0, 1)
	input.addScroll(0.5, 2)
	input.takeScroll()
	assert.Equal(t, 0.5, input.ScrollX)
	assert.Equal(t, 3.0, input.ScrollY)

	input.takeScroll()
	assert.Zero(t, input.ScrollX)
	assert.Zero(t, input.ScrollY)
}

func TestKeyMapsCoverEveryKey(t *testing.T) {
	for key := 0; key < keyCount; key++ {
		_, isKey := keyToGlfw[key]
		_, isButton := buttonToGlfw[key]
		assert.True(t, isKey != isButton, "key %d must be mapped exactly once", key)
	}
}
