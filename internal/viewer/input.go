package viewer

import (
	"sync"
	"time"

	"github.com/daniel-roulin/trusk/pkg/render"
)

// holdTime is how long a key counts as held after its last press or
// repeat. Terminals do not always report releases.
const holdTime = 150 * time.Millisecond

// keyState is the keyboard and mouse state fed by terminal events. It is
// written by the event goroutine and read by the render loop.
type keyState struct {
	mu     sync.Mutex
	now    func() time.Time
	held   map[string]time.Time
	mx, my int
}

var _ render.Input = (*keyState)(nil)

func newKeyState() *keyState {
	return &keyState{now: time.Now, held: make(map[string]time.Time)}
}

func (k *keyState) press(key string) {
	k.mu.Lock()
	k.held[key] = k.now()
	k.mu.Unlock()
}

func (k *keyState) release(key string) {
	k.mu.Lock()
	delete(k.held, key)
	k.mu.Unlock()
}

func (k *keyState) move(x, y int) {
	k.mu.Lock()
	k.mx, k.my = x, y
	k.mu.Unlock()
}

// KeyPressed reports whether key was pressed within holdTime.
func (k *keyState) KeyPressed(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	t, ok := k.held[key]
	if !ok {
		return false
	}
	if k.now().Sub(t) > holdTime {
		delete(k.held, key)
		return false
	}
	return true
}

// MousePosition returns the last reported mouse cell.
func (k *keyState) MousePosition() (x, y int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.mx, k.my
}
