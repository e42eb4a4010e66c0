package device

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRegistryClosed 注册表已关闭，不再接受新的 worker
var ErrRegistryClosed = errors.New("worker 注册表已关闭")

// PlayerState 播放器状态
type PlayerState int32

const (
	PlayerRendering PlayerState = iota
	PlayerStopped
)

func (s PlayerState) String() string {
	if s == PlayerRendering {
		return "rendering"
	}
	return "stopped"
}

// Worker 一个动画播放 goroutine 的句柄
type Worker struct {
	ID        uint64
	Name      string
	StartedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	state  atomic.Int32
}

func newWorker(parent context.Context, name string) *Worker {
	ctx, cancel := context.WithCancel(parent)
	return &Worker{
		Name:      name,
		StartedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// State 返回播放器状态
func (w *Worker) State() PlayerState { return PlayerState(w.state.Load()) }

// Cancel 发送取消信号，不等待退出
func (w *Worker) Cancel() { w.cancel() }

// Done 在 worker 退出后关闭
func (w *Worker) Done() <-chan struct{} { return w.done }

// Wait 阻塞直到 worker 退出
func (w *Worker) Wait() { <-w.done }

func (w *Worker) finish() {
	w.state.Store(int32(PlayerStopped))
	w.cancel()
	close(w.done)
}

// WorkerRegistry 跟踪所有 worker，进程退出时统一取消并等待
type WorkerRegistry struct {
	mu       sync.Mutex
	workers  map[uint64]*Worker
	nextID   uint64
	closed   bool
	wg       sync.WaitGroup
	baseCtx  context.Context
	cancel   context.CancelFunc
	shutdown sync.Once
}

// NewWorkerRegistry 创建 worker 注册表
func NewWorkerRegistry() *WorkerRegistry {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerRegistry{
		workers: make(map[uint64]*Worker),
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Track 登记一个 worker；注册表关闭后返回 ErrRegistryClosed
func (r *WorkerRegistry) Track(w *Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}
	r.nextID++
	w.ID = r.nextID
	r.workers[w.ID] = w
	r.wg.Add(1)
	return nil
}

// Spawn 创建、登记并启动一个 worker
func (r *WorkerRegistry) Spawn(name string, fn func(ctx context.Context)) (*Worker, error) {
	w := newWorker(r.baseCtx, name)
	if err := r.Track(w); err != nil {
		w.cancel()
		return nil, err
	}

	go func() {
		defer r.release(w)
		fn(w.ctx)
	}()
	return w, nil
}

// release 标记 worker 结束并从注册表中移除
func (r *WorkerRegistry) release(w *Worker) {
	r.mu.Lock()
	delete(r.workers, w.ID)
	r.mu.Unlock()

	w.finish()
	r.wg.Done()
}

// Workers 返回仍在登记中的 worker 快照
func (r *WorkerRegistry) Workers() []*Worker {
	r.mu.Lock()
	defer r.mu.Unlock()

	workers := make([]*Worker, 0, len(r.workers))
	for _, w := range r.workers {
		workers = append(workers, w)
	}
	return workers
}

// Running 返回仍在运行的 worker 数量
func (r *WorkerRegistry) Running() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workers)
}

// Closed 注册表是否已关闭
func (r *WorkerRegistry) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// ShutdownAll 取消所有 worker 并等待它们退出，可重复调用
func (r *WorkerRegistry) ShutdownAll() {
	r.shutdown.Do(func() {
		r.mu.Lock()
		r.closed = true
		count := len(r.workers)
		r.mu.Unlock()

		log.Printf("⏳ 正在停止 %d 个动画 worker...", count)
		r.cancel()
	})

	// closed 之后不会再有 Add，Wait 是安全的
	r.wg.Wait()
	log.Printf("✅ 所有动画 worker 已退出")
}
