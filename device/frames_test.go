package device

import (
	"bytes"
	"testing"

	"leds/define"
)

func TestBuildAnimationsCoversEveryName(t *testing.T) {
	table := BuildAnimations()
	for _, name := range define.AnimationNames() {
		anim, ok := table[name]
		if !ok {
			t.Errorf("缺少动画 %s", name)
			continue
		}
		if anim.Name != name {
			t.Errorf("动画 %s 的名称字段为 %s", name, anim.Name)
		}
		if len(anim.Steps) == 0 {
			t.Errorf("动画 %s 没有帧", name)
		}
	}
}

func TestAnimationKinds(t *testing.T) {
	table := BuildAnimations()
	want := map[define.AnimationName]AnimationKind{
		define.AnimationNone:         KindOneShot,
		define.AnimationWakingUp:     KindOneShot,
		define.AnimationStandby:      KindOneShot,
		define.AnimationListening:    KindLooping,
		define.AnimationLoading:      KindOneShot,
		define.AnimationNotify:       KindOneShot,
		define.AnimationError:        KindStatic,
		define.AnimationIntentParsed: KindStatic,
		define.AnimationSpeak:        KindLooping,
	}
	for name, kind := range want {
		if got := table[name].Kind; got != kind {
			t.Errorf("%s: kind = %s, want %s", name, got, kind)
		}
	}
}

func TestFrameTableShapes(t *testing.T) {
	table := BuildAnimations()

	counts := map[define.AnimationName]int{
		define.AnimationWakingUp:     127,
		define.AnimationStandby:      255,
		define.AnimationListening:    12,
		define.AnimationLoading:      30,
		define.AnimationNotify:       4,
		define.AnimationError:        1,
		define.AnimationIntentParsed: 1,
		define.AnimationSpeak:        5 * speakStepsPerSegment,
		define.AnimationNone:         1,
	}
	for name, n := range counts {
		if got := table[name].FrameCount(); got != n {
			t.Errorf("%s: 帧数 = %d, want %d", name, got, n)
		}
	}

	// standby 停在最亮的一帧
	standby := table[define.AnimationStandby]
	last := standby.Steps[len(standby.Steps)-1].Frame.Pixels[0]
	if !bytes.Equal(last.Bytes(), []byte{254}) {
		t.Errorf("standby 最后一帧 = %v", last.Bytes())
	}

	// loading 先亮后暗
	loading := table[define.AnimationLoading]
	if first := loading.Steps[0].Frame.Pixels[0].Bytes(); first[0] != 0 {
		t.Errorf("loading 第一帧 = %v", first)
	}
	if peak := loading.Steps[14].Frame.Pixels[0].Bytes(); peak[0] != 224 {
		t.Errorf("loading 峰值 = %v", peak)
	}
}

func TestListeningComet(t *testing.T) {
	listening := BuildAnimations()[define.AnimationListening]

	if len(listening.Setup) != 1 || !bytes.Equal(listening.Setup[0].Pixels[0].Bytes(), ModeLED) {
		t.Fatalf("listening 应先切换到 LED 模式")
	}

	// 第 0 帧：灯 0 为头部青色，灯 1 为 (0,128,255)，灯 11 为绿色
	f := listening.Steps[0].Frame
	if len(f.Pixels) != 12 {
		t.Fatalf("每帧应写 12 颗灯, got %d", len(f.Pixels))
	}
	checks := map[int][]byte{
		0:  {0, 255, 255},
		1:  {0, 128, 255},
		11: {0, 255, 0},
		2:  {0, 0, 255},
		10: {255, 0, 0},
		9:  {255, 0, 128},
		5:  {0, 0, 0},
	}
	for led, want := range checks {
		if got := f.Pixels[led].Bytes(); !bytes.Equal(got, want) {
			t.Errorf("灯 %d = %v, want %v", led, got, want)
		}
	}
}

func TestSpeakPaletteEndpoints(t *testing.T) {
	speak := BuildAnimations()[define.AnimationSpeak]

	first := speak.Steps[0].Frame.Pixels[0].Bytes()
	if !bytes.Equal(first, []byte{1, 0, 0, 255}) {
		t.Errorf("speak 第一帧应为红色, got %v", first)
	}
	end := speak.Steps[speakStepsPerSegment-1].Frame.Pixels[0].Bytes()
	if !bytes.Equal(end, []byte{1, 0, 255, 255}) {
		t.Errorf("第一段结尾应为黄色, got %v", end)
	}
	last := speak.Steps[len(speak.Steps)-1].Frame.Pixels[0].Bytes()
	if !bytes.Equal(last, []byte{1, 255, 0, 255}) {
		t.Errorf("speak 最后一帧应为品红, got %v", last)
	}
}

func TestTeardownEndsWithDOA(t *testing.T) {
	none := BuildAnimations()[define.AnimationNone]
	if len(none.Steps) != 2 {
		t.Fatalf("teardown 步数 = %d", len(none.Steps))
	}
	if !bytes.Equal(none.Steps[0].Frame.Pixels[0].Bytes(), []byte{1, 0, 0, 0}) {
		t.Error("teardown 第一步应熄灯")
	}
	if !none.Steps[1].ReadDOA {
		t.Error("teardown 最后一步应读取 DOA")
	}
}
