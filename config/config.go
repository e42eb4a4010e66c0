package config

import (
	"fmt"
	"slices"
	"strconv"

	"leds/define"
	"leds/device"
)

// Validate 检查启动配置，错误只在启动时致命
func Validate(cfg *define.Config) error {
	if !IsValidDeviceKind(cfg.DeviceKind) {
		return fmt.Errorf("无效的设备类型 %s，可用类型: %v", cfg.DeviceKind, device.GetSupportedKinds())
	}
	if cfg.DeviceKind == "bridge" && cfg.BridgeURL == "" {
		return fmt.Errorf("bridge 设备需要 LED bridge 服务 URL")
	}
	if cfg.MQTTPort <= 0 || cfg.MQTTPort > 65535 {
		return fmt.Errorf("无效的 MQTT 端口: %d", cfg.MQTTPort)
	}
	if port, err := strconv.Atoi(cfg.WebPort); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("无效的 Web 端口: %s", cfg.WebPort)
	}
	if cfg.WelcomeDelay < 0 {
		return fmt.Errorf("welcome 延时不能为负数: %s", cfg.WelcomeDelay)
	}
	return nil
}

func IsValidDeviceKind(kind string) bool {
	return slices.Contains(device.GetSupportedKinds(), kind)
}
