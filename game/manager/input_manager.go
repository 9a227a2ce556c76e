package manager

import (
	"rsnake/game/types"
)

const DefaultInputBuffer = 3

// InputManager buffers turn requests between ticks. Requests are consumed
// first-in first-out, one per tick.
type InputManager struct {
	queue    []types.Direction
	capacity int
}

func NewInputManager(capacity int) *InputManager {
	if capacity <= 0 {
		capacity = DefaultInputBuffer
	}
	return &InputManager{
		queue:    make([]types.Direction, 0, capacity),
		capacity: capacity,
	}
}

// Push queues dir. It is dropped when the queue is full or when it repeats or
// reverses the heading the snake will have once the queue drains, current
// being the heading right now. Returns whether dir was queued.
func (im *InputManager) Push(dir, current types.Direction) bool {
	last := current
	if n := len(im.queue); n > 0 {
		last = im.queue[n-1]
	}
	if dir == last || dir == last.Opposite() {
		return false
	}
	if len(im.queue) >= im.capacity {
		return false
	}
	im.queue = append(im.queue, dir)
	return true
}

// Pop returns the oldest queued turn.
func (im *InputManager) Pop() (types.Direction, bool) {
	if len(im.queue) == 0 {
		return 0, false
	}
	dir := im.queue[0]
	copy(im.queue, im.queue[1:])
	im.queue = im.queue[:len(im.queue)-1]
	return dir, true
}

func (im *InputManager) Len() int {
	return len(im.queue)
}

func (im *InputManager) Clear() {
	im.queue = im.queue[:0]
}
