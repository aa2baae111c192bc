package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListenersNotifyInOrder(t *testing.T) {
	var l Listeners[int]
	var got []string
	l.Add(func(v int) { got = append(got, "a") })
	l.Add(func(v int) { got = append(got, "b") })
	l.Notify(1)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, l.Len())
}

func TestListenersRemoveDuringNotify(t *testing.T) {
	var l Listeners[int]
	calls := 0
	var removeSecond func()
	l.Add(func(int) {
		calls++
		removeSecond()
	})
	removeSecond = l.Add(func(int) { calls += 100 })

	l.Notify(0)
	assert.Equal(t, 1, calls, "removed listener must not run in the same notification")
	assert.Equal(t, 1, l.Len())

	removeSecond()
	assert.Equal(t, 1, l.Len(), "remover is idempotent")
}

func TestListenersNilAndClear(t *testing.T) {
	var l Listeners[struct{}]
	remove := l.Add(nil)
	remove()
	assert.Equal(t, 0, l.Len())

	l.Add(func(struct{}) {})
	l.Clear()
	assert.Equal(t, 0, l.Len())
}
