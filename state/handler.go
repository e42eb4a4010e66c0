package state

import (
	"log"
	"sync"
	"time"

	"leds/define"
)

// DefaultWelcomeDelay welcome 动画之后切换到 standby 的延时
const DefaultWelcomeDelay = 2200 * time.Millisecond

// Starter 能够启动动画的引擎
type Starter interface {
	Start(name define.AnimationName)
	HasSink() bool
}

// 状态到动画的映射；不在表中的状态不改变灯环
var stateAnimations = map[define.SystemState]define.AnimationName{
	define.StateGoodbye:           define.AnimationNone,
	define.StateHotwordToggleOn:   define.AnimationStandby,
	define.StateHotwordDetected:   define.AnimationListening,
	define.StateAsrStartListening: define.AnimationListening,
	define.StateAsrTextCaptured:   define.AnimationLoading,
	define.StateNluIntentParsed:   define.AnimationIntentParsed,
	define.StateSay:               define.AnimationSpeak,
	define.StateError:             define.AnimationError,
}

// AnimationFor 返回状态对应的动画
func AnimationFor(state define.SystemState) (define.AnimationName, bool) {
	name, ok := stateAnimations[state]
	return name, ok
}

// Handler 把对话状态转换成动画
type Handler struct {
	starter      Starter
	timer        *Timer
	welcomeDelay time.Duration

	mu         sync.Mutex
	state      define.SystemState
	changedAt  time.Time
	generation uint64 // 每次启动动画加一，用于作废 welcome 的后续动画
	followUp   string
}

type Option func(*Handler)

// WithWelcomeDelay 设置 welcome 之后切换到 standby 的延时
func WithWelcomeDelay(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.welcomeDelay = d
		}
	}
}

func NewHandler(starter Starter, opts ...Option) *Handler {
	h := &Handler{
		starter:      starter,
		timer:        NewTimer(),
		welcomeDelay: DefaultWelcomeDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnStateChange 处理一次状态变化，不会阻塞
func (h *Handler) OnStateChange(state define.SystemState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state = state
	h.changedAt = time.Now()

	switch state {
	case define.StateWelcome:
		if !h.starter.HasSink() {
			return
		}
		h.startLocked(define.AnimationWakingUp)
		gen := h.generation
		h.followUp = h.timer.ScheduleAfter(h.welcomeDelay, func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			// 期间有其它动画启动过，放弃
			if h.generation != gen {
				return
			}
			h.followUp = ""
			h.startLocked(define.AnimationStandby)
		})
		return

	case define.StateSessionQueued, define.StateSessionStarted, define.StateSessionEnded:
		return
	}

	name, ok := AnimationFor(state)
	if !ok {
		log.Printf("ℹ️ 状态 %s 没有对应的动画", state)
		return
	}
	if !h.starter.HasSink() {
		return
	}
	h.startLocked(name)
}

// startLocked 调用方持有 h.mu
func (h *Handler) startLocked(name define.AnimationName) {
	h.generation++
	if h.followUp != "" {
		h.timer.Cancel(h.followUp)
		h.followUp = ""
	}
	h.starter.Start(name)
}

// State 返回最近一次收到的状态及其时间
func (h *Handler) State() (define.SystemState, time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state, h.changedAt
}

// Pending 是否有尚未执行的 welcome 后续动画
func (h *Handler) Pending() bool {
	return h.timer.Pending() > 0
}

// Stop 取消所有延时动画
func (h *Handler) Stop() {
	h.timer.Stop()
}
