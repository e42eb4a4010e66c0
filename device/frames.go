package device

import (
	"time"

	"leds/define"

	"github.com/lucasb-eyer/go-colorful"
)

// RingLEDs ReSpeaker 灯环上 12 颗灯珠的地址
var RingLEDs = []LEDIndex{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

// 各动画的帧间隔
const (
	wakingUpDelay  = 15 * time.Millisecond
	standbyDelay   = 10 * time.Millisecond
	listeningDelay = 25 * time.Millisecond
	loadingDelay   = 40 * time.Millisecond
	notifyDelay    = 200 * time.Millisecond
	speakDelay     = 50 * time.Millisecond
	teardownDelay  = 200 * time.Millisecond
)

// speakPalette 说话动画依次经过的颜色
var speakPalette = []colorful.Color{
	{R: 1, G: 0, B: 0},
	{R: 1, G: 1, B: 0},
	{R: 0, G: 1, B: 0},
	{R: 0, G: 1, B: 1},
	{R: 1, G: 1, B: 1},
	{R: 1, G: 0, B: 1},
}

const speakStepsPerSegment = 10

// BuildAnimations 生成所有动画的帧表，只在启动时调用一次
func BuildAnimations() map[define.AnimationName]*Animation {
	anims := []*Animation{
		buildTeardown(),
		buildWakingUp(),
		buildStandby(),
		buildListening(),
		buildLoading(),
		buildNotify(),
		buildStatic(define.AnimationError, RGB(255, 0, 0)),
		buildStatic(define.AnimationIntentParsed, RGB(0, 255, 0)),
		buildSpeak(),
	}

	table := make(map[define.AnimationName]*Animation, len(anims))
	for _, a := range anims {
		table[a.Name] = a
	}
	return table
}

// 熄灯，稍等，然后读一次 DOA，让设备回到待听状态
func buildTeardown() *Animation {
	return &Animation{
		Name: define.AnimationNone,
		Kind: KindOneShot,
		Steps: []Step{
			{Frame: Off(), Delay: teardownDelay},
			{ReadDOA: true},
		},
	}
}

func buildWakingUp() *Animation {
	steps := make([]Step, 0, 127)
	for st := 0; st < 127; st++ {
		steps = append(steps, Step{Frame: Fill(RingLEDs, Packed(uint32(2*st))), Delay: wakingUpDelay})
	}
	return &Animation{Name: define.AnimationWakingUp, Kind: KindOneShot, Steps: steps}
}

// standby 是一段单调递增的亮度爬升，停在最后一帧
func buildStandby() *Animation {
	steps := make([]Step, 0, 255)
	for st := 0; st < 255; st++ {
		steps = append(steps, Step{Frame: Fill(RingLEDs, Packed(uint32(st))), Delay: standbyDelay})
	}
	return &Animation{Name: define.AnimationStandby, Kind: KindOneShot, Steps: steps}
}

// cometColor 返回第 frame 帧时第 led 颗灯珠的颜色
func cometColor(frame, led, n int) Color {
	mod := func(v int) int { return ((v % n) + n) % n }
	switch frame {
	case led:
		return RGB(0, 255, 255)
	case mod(led - 1):
		return RGB(0, 128, 255)
	case mod(led + 1):
		return RGB(0, 255, 0)
	case mod(led - 2):
		return RGB(0, 0, 255)
	case mod(led + 2):
		return RGB(255, 0, 0)
	case mod(led + 3):
		return RGB(255, 0, 128)
	default:
		return RGB(0, 0, 0)
	}
}

func buildListening() *Animation {
	n := len(RingLEDs)
	steps := make([]Step, 0, n)
	for i := 0; i < n; i++ {
		pixels := make([]Pixel, n)
		for j, led := range RingLEDs {
			pixels[j] = Pixel{Index: led, Color: cometColor(i, j, n)}
		}
		steps = append(steps, Step{Frame: Frame{Pixels: pixels}, Delay: listeningDelay})
	}
	return &Animation{
		Name:  define.AnimationListening,
		Kind:  KindLooping,
		Setup: []Frame{ModeFrame(ModeLED)},
		Steps: steps,
	}
}

func buildLoading() *Animation {
	levels := make([]int, 0, 30)
	for st := 0; st < 15; st++ {
		levels = append(levels, st)
	}
	for st := 14; st >= 0; st-- {
		levels = append(levels, st)
	}

	steps := make([]Step, 0, len(levels))
	for _, st := range levels {
		steps = append(steps, Step{Frame: Fill(RingLEDs, Packed(uint32(16*st))), Delay: loadingDelay})
	}
	return &Animation{Name: define.AnimationLoading, Kind: KindOneShot, Steps: steps}
}

func buildNotify() *Animation {
	steps := make([]Step, 0, 4)
	for i := 0; i < 2; i++ {
		steps = append(steps,
			Step{Frame: Fill(RingLEDs, Packed(0x0000FF)), Delay: notifyDelay},
			Step{Frame: Fill(RingLEDs, Packed(0x000000)), Delay: notifyDelay},
		)
	}
	return &Animation{Name: define.AnimationNotify, Kind: KindOneShot, Steps: steps}
}

func buildStatic(name define.AnimationName, c Color) *Animation {
	return &Animation{
		Name:  name,
		Kind:  KindStatic,
		Steps: []Step{{Frame: Solid(c)}},
	}
}

func buildSpeak() *Animation {
	var steps []Step
	for i := 0; i < len(speakPalette)-1; i++ {
		for _, c := range hslRange(speakPalette[i], speakPalette[i+1], speakStepsPerSegment) {
			r, g, b := c.RGB255()
			steps = append(steps, Step{Frame: Solid(RGB(r, g, b)), Delay: speakDelay})
		}
	}
	return &Animation{Name: define.AnimationSpeak, Kind: KindLooping, Steps: steps}
}

// hslRange 在 HSL 空间中线性插值，包含起止两端，共 n 个颜色
func hslRange(from, to colorful.Color, n int) []colorful.Color {
	if n < 2 {
		return []colorful.Color{from}
	}
	h1, s1, l1 := from.Hsl()
	h2, s2, l2 := to.Hsl()

	out := make([]colorful.Color, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = colorful.Hsl(
			h1+(h2-h1)*t,
			s1+(s2-s1)*t,
			l1+(l2-l1)*t,
		).Clamped()
	}
	return out
}
