package view_sync

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/stretchr/testify/assert"
)

func TestMergeOverlaysDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), merge(nil))

	got := merge(&Config{UpdateThrottle: 40 * time.Millisecond, DisableBidirectionalSync: true})
	assert.Equal(t, DefaultAnimationDuration, got.AnimationDuration)
	assert.Equal(t, 40*time.Millisecond, got.UpdateThrottle)
	assert.Equal(t, animation.EasingCubic, got.Easing)
	assert.True(t, got.DisableBidirectionalSync)

	got = merge(&Config{Easing: animation.EasingLinear})
	assert.Equal(t, animation.EasingLinear, got.Easing)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := Config{AnimationDuration: 0, UpdateThrottle: -1, Easing: animation.Easing(7)}
	err := bad.Validate()
	assert.ErrorContains(t, err, "animation duration")
	assert.ErrorContains(t, err, "update throttle")
	assert.ErrorContains(t, err, "unknown easing")
}

func TestSyncErrorMatching(t *testing.T) {
	cause := errors.New("boom")
	err := newSyncError(CodeAnimationFailed, "animation aborted", map[string]any{"axis": "+X"}).withCause(cause)

	assert.Equal(t, "ANIMATION_FAILED: animation aborted: boom", err.Error())
	assert.ErrorIs(t, err, ErrAnimationFailed)
	assert.NotErrorIs(t, err, ErrWidgetInvalid)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("viewer: %w", err)
	assert.ErrorIs(t, wrapped, ErrAnimationFailed)
	assert.Equal(t, "WIDGET_INVALID", ErrWidgetInvalid.Error())
}
