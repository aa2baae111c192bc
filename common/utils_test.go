package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 16*time.Millisecond, Coalesce(0, 16*time.Millisecond, time.Second))
	assert.Equal(t, "", Coalesce("", ""))
}

func TestDeref(t *testing.T) {
	v := false
	assert.False(t, Deref(&v, true))
	assert.True(t, Deref[bool](nil, true))
}
