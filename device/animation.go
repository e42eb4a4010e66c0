package device

import (
	"time"

	"leds/define"
)

// AnimationKind 决定播放器如何走完一个动画
type AnimationKind int

const (
	KindStatic  AnimationKind = iota // 只推送一帧
	KindLooping                      // 播完从头再来，直到被抢占
	KindOneShot                      // 按顺序播放一遍后停止
)

func (k AnimationKind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindLooping:
		return "looping"
	case KindOneShot:
		return "oneShot"
	default:
		return "unknown"
	}
}

// Step 动画中的一步：推送一帧后等待 Delay，或者发起一次 DOA 读取
type Step struct {
	Frame   Frame
	Delay   time.Duration
	ReadDOA bool
}

// Animation 定义了一个动画序列
type Animation struct {
	Name  define.AnimationName
	Kind  AnimationKind
	Setup []Frame // 在第一步之前推送一次
	Steps []Step
}

// FrameCount 返回动画中需要写入的帧数（不含 Setup）
func (a *Animation) FrameCount() int {
	n := 0
	for _, s := range a.Steps {
		if !s.ReadDOA {
			n++
		}
	}
	return n
}
