package device

import (
	"context"
	"log"
	"time"
)

// player 播放一个动画激活，直到被抢占、播完或被关闭
type player struct {
	engine *AnimationEngine
	anim   *Animation
	token  Token
}

// alive 每一帧之前检查：没有被取消，且 token 仍是当前的
func (p *player) alive(ctx context.Context) bool {
	return ctx.Err() == nil && p.engine.IsCurrent(p.token)
}

// run 是播放器的核心循环，在单独的 goroutine 中运行
func (p *player) run(ctx context.Context) {
	name := p.anim.Name

	for _, frame := range p.anim.Setup {
		if !p.alive(ctx) {
			return
		}
		p.push(frame)
	}

	for {
		for _, step := range p.anim.Steps {
			// 过期是常态，静默退出
			if !p.alive(ctx) {
				return
			}

			if step.ReadDOA {
				p.readDOA()
			} else {
				p.push(step.Frame)
			}

			if step.Delay > 0 && !sleep(ctx, step.Delay) {
				return
			}
		}

		if p.anim.Kind != KindLooping || len(p.anim.Steps) == 0 {
			log.Printf("👋 动画 %s 已完成 (token %d)", name, p.token)
			return
		}
	}
}

// push 把一帧的每个 Pixel 写入设备；写失败只记录日志并丢弃本帧剩余部分
func (p *player) push(frame Frame) {
	sink := p.engine.sink
	for _, px := range frame.Pixels {
		if err := sink.Write(px.Index, px.Bytes()); err != nil {
			p.engine.recordError(err)
			log.Printf("❌ 动画 %s 写入地址 %d 失败: %v", p.anim.Name, px.Index, err)
			return
		}
	}
	p.engine.recordFrame()
}

func (p *player) readDOA() {
	if _, err := p.engine.sink.ReadDirectionOfArrival(); err != nil {
		p.engine.recordError(err)
		log.Printf("⚠️ 动画 %s 读取 DOA 失败: %v", p.anim.Name, err)
		return
	}
	p.engine.stats.doaReads.Add(1)
}

// sleep 等待 d，被取消时返回 false
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
