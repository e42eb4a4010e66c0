package bus

import (
	"regexp"
	"strings"

	"leds/define"
)

// 订阅的 Hermes 主题
var Subscriptions = []string{
	"hermes/intent/#",
	"hermes/hotword/#",
	"hermes/asr/#",
	"hermes/tts/#",
	"hermes/nlu/#",
	"hermes/dialogueManager/#",
}

// FeedbackToggleOffTopic 第一次检测到唤醒词时关闭提示音
const FeedbackToggleOffTopic = "hermes/feedback/sound/toggleOff"

var hotwordDetected = regexp.MustCompile(`^hermes/hotword(/[a-zA-Z0-9]+)*/detected$`)

var exactTopics = map[string]define.SystemState{
	"hermes/nlu/intentParsed":               define.StateNluIntentParsed,
	"hermes/hotword/toggleOn":               define.StateHotwordToggleOn,
	"hermes/nlu/intentNotRecognized":        define.StateError,
	"hermes/asr/startListening":             define.StateAsrStartListening,
	"hermes/asr/textCaptured":               define.StateAsrTextCaptured,
	"hermes/dialogueManager/sessionQueued":  define.StateSessionQueued,
	"hermes/dialogueManager/sessionStarted": define.StateSessionStarted,
	"hermes/dialogueManager/sessionEnded":   define.StateSessionEnded,
}

// StateForTopic 把 MQTT 主题转换成系统状态
func StateForTopic(topic string) (define.SystemState, bool) {
	if state, ok := exactTopics[topic]; ok {
		return state, true
	}
	if hotwordDetected.MatchString(topic) {
		return define.StateHotwordDetected, true
	}
	if strings.HasPrefix(topic, "hermes/tts/") {
		return define.StateSay, true
	}
	return define.StateNone, false
}
