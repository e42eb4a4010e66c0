package state

import (
	"sync"
	"testing"
	"time"

	"leds/define"
)

// fakeStarter 记录被启动的动画
type fakeStarter struct {
	mu      sync.Mutex
	started []define.AnimationName
	noSink  bool
}

func (f *fakeStarter) Start(name define.AnimationName) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, name)
}

func (f *fakeStarter) HasSink() bool { return !f.noSink }

func (f *fakeStarter) names() []define.AnimationName {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]define.AnimationName, len(f.started))
	copy(out, f.started)
	return out
}

func equalNames(a, b []define.AnimationName) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStateMapping(t *testing.T) {
	tests := []struct {
		state define.SystemState
		want  define.AnimationName
	}{
		{define.StateGoodbye, define.AnimationNone},
		{define.StateHotwordToggleOn, define.AnimationStandby},
		{define.StateHotwordDetected, define.AnimationListening},
		{define.StateAsrStartListening, define.AnimationListening},
		{define.StateAsrTextCaptured, define.AnimationLoading},
		{define.StateNluIntentParsed, define.AnimationIntentParsed},
		{define.StateSay, define.AnimationSpeak},
		{define.StateError, define.AnimationError},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			starter := &fakeStarter{}
			h := NewHandler(starter)
			defer h.Stop()

			h.OnStateChange(tt.state)
			if got := starter.names(); !equalNames(got, []define.AnimationName{tt.want}) {
				t.Errorf("started = %v, want [%s]", got, tt.want)
			}
			if state, _ := h.State(); state != tt.state {
				t.Errorf("State() = %s", state)
			}
		})
	}
}

func TestNoOpStates(t *testing.T) {
	states := []define.SystemState{
		define.StateSessionQueued,
		define.StateSessionStarted,
		define.StateSessionEnded,
		define.StateIdle,
		define.StateNone,
		define.SystemState(99),
	}
	starter := &fakeStarter{}
	h := NewHandler(starter)
	defer h.Stop()

	for _, s := range states {
		h.OnStateChange(s)
	}
	if got := starter.names(); len(got) != 0 {
		t.Errorf("这些状态不应启动动画, got %v", got)
	}
}

func TestWelcomeSequence(t *testing.T) {
	starter := &fakeStarter{}
	h := NewHandler(starter, WithWelcomeDelay(30*time.Millisecond))
	defer h.Stop()

	h.OnStateChange(define.StateWelcome)
	if got := starter.names(); !equalNames(got, []define.AnimationName{define.AnimationWakingUp}) {
		t.Fatalf("welcome 应立即启动 wakingUp, got %v", got)
	}
	if !h.Pending() {
		t.Error("应有待执行的 standby")
	}

	time.Sleep(80 * time.Millisecond)
	want := []define.AnimationName{define.AnimationWakingUp, define.AnimationStandby}
	if got := starter.names(); !equalNames(got, want) {
		t.Errorf("started = %v, want %v", got, want)
	}
	if h.Pending() {
		t.Error("standby 执行后不应再有待执行任务")
	}
}

func TestLaterStateCancelsWelcomeFollowUp(t *testing.T) {
	starter := &fakeStarter{}
	h := NewHandler(starter, WithWelcomeDelay(30*time.Millisecond))
	defer h.Stop()

	h.OnStateChange(define.StateWelcome)
	h.OnStateChange(define.StateHotwordDetected)

	time.Sleep(80 * time.Millisecond)
	want := []define.AnimationName{define.AnimationWakingUp, define.AnimationListening}
	if got := starter.names(); !equalNames(got, want) {
		t.Errorf("started = %v, want %v", got, want)
	}
}

func TestSessionStateKeepsWelcomeFollowUp(t *testing.T) {
	starter := &fakeStarter{}
	h := NewHandler(starter, WithWelcomeDelay(30*time.Millisecond))
	defer h.Stop()

	h.OnStateChange(define.StateWelcome)
	h.OnStateChange(define.StateSessionStarted)

	time.Sleep(80 * time.Millisecond)
	want := []define.AnimationName{define.AnimationWakingUp, define.AnimationStandby}
	if got := starter.names(); !equalNames(got, want) {
		t.Errorf("started = %v, want %v", got, want)
	}
}

func TestStopCancelsFollowUp(t *testing.T) {
	starter := &fakeStarter{}
	h := NewHandler(starter, WithWelcomeDelay(20*time.Millisecond))

	h.OnStateChange(define.StateWelcome)
	h.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := starter.names(); len(got) != 1 {
		t.Errorf("Stop 后不应再启动动画, got %v", got)
	}

	// Stop 之后的 welcome 也不会再排期
	h.OnStateChange(define.StateWelcome)
	if h.Pending() {
		t.Error("Stop 之后不应有待执行任务")
	}
}

func TestNoSinkSkipsStart(t *testing.T) {
	starter := &fakeStarter{noSink: true}
	h := NewHandler(starter, WithWelcomeDelay(10*time.Millisecond))
	defer h.Stop()

	h.OnStateChange(define.StateWelcome)
	h.OnStateChange(define.StateSay)
	time.Sleep(30 * time.Millisecond)

	if got := starter.names(); len(got) != 0 {
		t.Errorf("没有设备时不应启动动画, got %v", got)
	}
	if state, at := h.State(); state != define.StateSay || at.IsZero() {
		t.Errorf("状态仍应被记录, got %s %v", state, at)
	}
}

func TestOnStateChangeDoesNotBlock(t *testing.T) {
	starter := &fakeStarter{}
	h := NewHandler(starter)
	defer h.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.OnStateChange(define.StateSay)
			h.OnStateChange(define.StateWelcome)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnStateChange 阻塞")
	}
}
