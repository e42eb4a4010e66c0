package define

import "time"

// 配置结构体
type Config struct {
	MQTTHost     string        `env:"MQTT_HOST"`
	MQTTPort     int           `env:"MQTT_PORT"`
	MQTTUsername string        `env:"MQTT_USERNAME"`
	MQTTPassword string        `env:"MQTT_PASSWORD"`
	WebPort      string        `env:"WEB_PORT"`
	DeviceKind   string        `env:"LED_DEVICE"`     // auto / respeaker / bridge / none
	HIDRawPath   string        `env:"LED_HIDRAW"`     // 例如 /dev/hidraw0，为空时自动探测
	BridgeURL    string        `env:"LED_BRIDGE_URL"` // LED bridge 服务地址
	WelcomeDelay time.Duration `env:"WELCOME_DELAY"`  // welcome 之后切换到 standby 的延时
}
