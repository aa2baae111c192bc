package state_store

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/stretchr/testify/assert"
)

func TestTypedAccessors(t *testing.T) {
	s := NewStore()
	assert.Equal(t, camera.AxisNone, s.SelectedAxis())
	assert.False(t, s.Animating())

	s.SetSelectedAxis(camera.AxisNegY, OriginWidget)
	s.SetAnimating(true, OriginExternal)
	assert.Equal(t, camera.AxisNegY, s.SelectedAxis())
	assert.True(t, s.Animating())
	assert.Equal(t, 1, s.Writes(KeySelectedAxis))
	assert.Equal(t, 1, s.Writes(KeyAnimating))
}

func TestLastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetSelectedAxis(camera.AxisPosX, "a")
	s.SetSelectedAxis(camera.AxisPosZ, "b")
	assert.Equal(t, camera.AxisPosZ, s.SelectedAxis())
	assert.Equal(t, 2, s.Writes(KeySelectedAxis))
}

func TestSubscribersSeeOriginAndUnsubscribe(t *testing.T) {
	s := NewStore()
	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Set("editor.dirty", true, "editor")
	s.SetSelectedAxis(camera.AxisPosX, OriginWidget)
	unsubscribe()
	s.SetAnimating(true, "engine")

	assert.Equal(t, []Change{
		{Key: "editor.dirty", Value: true, Origin: "editor"},
		{Key: KeySelectedAxis, Value: camera.AxisPosX, Origin: OriginWidget},
	}, changes)

	v, ok := s.Get("editor.dirty")
	assert.True(t, ok)
	assert.Equal(t, true, v)
	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestWrongTypeReadsAsZero(t *testing.T) {
	s := NewStore()
	s.Set(KeySelectedAxis, "not an axis", OriginExternal)
	s.Set(KeyAnimating, 1, OriginExternal)
	assert.Equal(t, camera.AxisNone, s.SelectedAxis())
	assert.False(t, s.Animating())
}
