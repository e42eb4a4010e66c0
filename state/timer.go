package state

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type timerEntry struct {
	timer     *time.Timer
	expiresAt time.Time
}

// Timer 基于 time.AfterFunc 的延时任务，可单独或全部取消
type Timer struct {
	mu      sync.Mutex
	timers  map[string]*timerEntry
	nextID  int64
	stopped bool
}

func NewTimer() *Timer {
	return &Timer{timers: make(map[string]*timerEntry)}
}

// ScheduleAfter 在 delay 之后执行 fn；Stop 之后不再接受新任务，返回空 id
func (t *Timer) ScheduleAfter(delay time.Duration, fn func()) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return ""
	}

	t.nextID++
	id := fmt.Sprintf("timer_%d", t.nextID)
	t.timers[id] = &timerEntry{
		expiresAt: time.Now().Add(delay),
		timer: time.AfterFunc(delay, func() {
			t.mu.Lock()
			_, pending := t.timers[id]
			delete(t.timers, id)
			t.mu.Unlock()

			if pending {
				fn()
			}
		}),
	}
	return id
}

// Cancel 取消一个延时任务，不存在时忽略
func (t *Timer) Cancel(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, exists := t.timers[id]; exists {
		entry.timer.Stop()
		delete(t.timers, id)
	}
}

// Stop 取消所有延时任务
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, entry := range t.timers {
		entry.timer.Stop()
	}
	if len(t.timers) > 0 {
		log.Printf("🛑 已取消 %d 个延时任务", len(t.timers))
	}
	t.timers = make(map[string]*timerEntry)
	t.stopped = true
}

// Pending 尚未执行的任务数
func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}
