package device

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"leds/define"
)

// Token 标识一次动画激活
type Token uint64

// activation 当前生效的动画；整体通过一个原子指针替换
type activation struct {
	token     Token
	name      define.AnimationName
	startedAt time.Time
}

// retired 关闭后发布的哨兵，任何 token 都不会与之相等
var retired = &activation{}

// AnimationEngine 管理和调度动画：同一时刻只有一个 token 是当前的
type AnimationEngine struct {
	sink       Sink                                // 关联的设备，可能为 nil
	animations map[define.AnimationName]*Animation // 注册的动画
	registry   *WorkerRegistry                     // 所有播放 goroutine
	current    atomic.Pointer[activation]          // 当前 token
	nextToken  atomic.Uint64                       // token 计数器
	stats      engineCounters                      // 写入统计
}

type engineCounters struct {
	framesWritten atomic.Uint64
	writeErrors   atomic.Uint64
	doaReads      atomic.Uint64
	mu            sync.Mutex
	lastError     string
	lastUpdate    time.Time
}

// EngineOption 引擎选项
type EngineOption func(*AnimationEngine)

// WithAnimations 替换默认帧表
func WithAnimations(anims map[define.AnimationName]*Animation) EngineOption {
	return func(e *AnimationEngine) { e.animations = anims }
}

// WithRegistry 使用外部传入的 worker 注册表
func WithRegistry(r *WorkerRegistry) EngineOption {
	return func(e *AnimationEngine) { e.registry = r }
}

// NewAnimationEngine 创建一个新的动画引擎；sink 可以为 nil
func NewAnimationEngine(sink Sink, opts ...EngineOption) *AnimationEngine {
	e := &AnimationEngine{sink: sink}
	for _, opt := range opts {
		opt(e)
	}
	if e.animations == nil {
		e.animations = BuildAnimations()
	}
	if e.registry == nil {
		e.registry = NewWorkerRegistry()
	}

	if sink == nil {
		log.Printf("⚠️ 未检测到 LED 设备，动画引擎将不执行任何操作")
	} else {
		log.Printf("✅ 动画引擎已就绪，共 %d 个动画", len(e.animations))
	}
	return e
}

// HasSink 是否接入了设备
func (e *AnimationEngine) HasSink() bool { return e.sink != nil }

// Registry 返回 worker 注册表
func (e *AnimationEngine) Registry() *WorkerRegistry { return e.registry }

// Start 启动一个动画，旧动画的 worker 会在下一帧前发现自己已过期并退出
// Start 不等待旧动画结束
func (e *AnimationEngine) Start(name define.AnimationName) {
	if e.sink == nil {
		return
	}

	anim, exists := e.animations[name]
	if !exists {
		log.Printf("⚠️ 动画 %s 未注册，忽略", name)
		return
	}

	token := Token(e.nextToken.Add(1))
	act := &activation{token: token, name: name, startedAt: time.Now()}
	e.current.Store(act)

	p := &player{engine: e, anim: anim, token: token}
	if _, err := e.registry.Spawn(name.String(), p.run); err != nil {
		e.current.CompareAndSwap(act, retired)
		log.Printf("ℹ️ 动画 %s 未启动: %v", name, err)
		return
	}
	log.Printf("🚀 动画 %s 已启动 (token %d)", name, token)
}

// IsCurrent token 是否仍是当前的
func (e *AnimationEngine) IsCurrent(token Token) bool {
	cur := e.current.Load()
	return cur != nil && cur.token == token
}

// Current 返回当前动画名称和 token
func (e *AnimationEngine) Current() (define.AnimationName, Token, bool) {
	cur := e.current.Load()
	if cur == nil || cur == retired {
		return define.AnimationNone, 0, false
	}
	return cur.name, cur.token, true
}

// GetRegisteredAnimations 获取已注册的动画名称列表
func (e *AnimationEngine) GetRegisteredAnimations() []string {
	names := make([]string, 0, len(e.animations))
	for name := range e.animations {
		names = append(names, name.String())
	}
	sort.Strings(names)
	return names
}

// Stats 返回写入统计
func (e *AnimationEngine) Stats() EngineStats {
	e.stats.mu.Lock()
	defer e.stats.mu.Unlock()
	return EngineStats{
		FramesWritten: e.stats.framesWritten.Load(),
		WriteErrors:   e.stats.writeErrors.Load(),
		DOAReads:      e.stats.doaReads.Load(),
		LastError:     e.stats.lastError,
		LastUpdate:    e.stats.lastUpdate,
	}
}

func (e *AnimationEngine) recordError(err error) {
	e.stats.writeErrors.Add(1)
	e.stats.mu.Lock()
	e.stats.lastError = err.Error()
	e.stats.lastUpdate = time.Now()
	e.stats.mu.Unlock()
}

func (e *AnimationEngine) recordFrame() {
	e.stats.framesWritten.Add(1)
	e.stats.mu.Lock()
	e.stats.lastUpdate = time.Now()
	e.stats.mu.Unlock()
}

// Shutdown 让所有 token 失效，然后等待所有 worker 退出
func (e *AnimationEngine) Shutdown() {
	e.current.Store(retired)
	e.registry.ShutdownAll()
}
