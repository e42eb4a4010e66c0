package define

// AnimationName 灯环动画名称
type AnimationName int

const (
	AnimationNone AnimationName = iota
	AnimationWakingUp
	AnimationStandby
	AnimationListening
	AnimationLoading
	AnimationNotify
	AnimationError
	AnimationIntentParsed
	AnimationSpeak
)

var animationNames = map[AnimationName]string{
	AnimationNone:         "none",
	AnimationWakingUp:     "wakingUp",
	AnimationStandby:      "standby",
	AnimationListening:    "listening",
	AnimationLoading:      "loading",
	AnimationNotify:       "notify",
	AnimationError:        "error",
	AnimationIntentParsed: "intentParsed",
	AnimationSpeak:        "speak",
}

func (a AnimationName) String() string {
	if name, ok := animationNames[a]; ok {
		return name
	}
	return "unknown"
}

// AnimationNames 按枚举顺序返回所有动画
func AnimationNames() []AnimationName {
	return []AnimationName{
		AnimationNone,
		AnimationWakingUp,
		AnimationStandby,
		AnimationListening,
		AnimationLoading,
		AnimationNotify,
		AnimationError,
		AnimationIntentParsed,
		AnimationSpeak,
	}
}

// ParseAnimationName 将名称字符串转换为动画枚举
func ParseAnimationName(s string) (AnimationName, bool) {
	for anim, name := range animationNames {
		if name == s {
			return anim, true
		}
	}
	return AnimationNone, false
}
