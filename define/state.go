package define

// SystemState 对话系统的外部可观测状态
type SystemState int

const (
	StateNone SystemState = iota
	StateWelcome
	StateGoodbye
	StateHotwordToggleOn
	StateHotwordDetected
	StateAsrStartListening
	StateAsrTextCaptured
	StateError
	StateIdle
	StateSessionQueued
	StateSessionStarted
	StateSessionEnded
	StateNluIntentParsed
	StateSay
)

var stateNames = []string{
	"none",
	"welcome",
	"goodbye",
	"hotwordToggleOn",
	"hotwordDetected",
	"asrStartListening",
	"asrTextCaptured",
	"error",
	"idle",
	"sessionQueued",
	"sessionStarted",
	"sessionEnded",
	"nluIntentParsed",
	"say",
}

func (s SystemState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// SystemStates 返回所有状态
func SystemStates() []SystemState {
	states := make([]SystemState, len(stateNames))
	for i := range stateNames {
		states[i] = SystemState(i)
	}
	return states
}

// ParseSystemState 将状态名称转换为枚举
func ParseSystemState(s string) (SystemState, bool) {
	for i, name := range stateNames {
		if name == s {
			return SystemState(i), true
		}
	}
	return StateNone, false
}
