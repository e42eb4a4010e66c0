package models

import (
	"fmt"
	"log"

	"leds/communication"
	"leds/define"
	"leds/device"
)

func RegisterSinkTypes() {
	device.RegisterSinkType("respeaker", NewReSpeakerSink)
	device.RegisterSinkType("bridge", NewBridgeSink)
	device.RegisterSinkType("auto", NewAutoSink)
}

// NewReSpeakerSink 打开 hidraw 设备；未指定路径时自动探测
func NewReSpeakerSink(cfg *define.Config) (device.Sink, error) {
	path := cfg.HIDRawPath
	if path == "" {
		found, err := FindReSpeaker(DefaultSysRoot)
		if err != nil {
			return nil, err
		}
		path = found
	}

	transport, err := communication.OpenHIDRaw(path)
	if err != nil {
		return nil, err
	}
	log.Printf("🔗 已连接 ReSpeaker 灯环: %s", path)
	return NewReSpeaker(transport), nil
}

// NewBridgeSink 通过 LED bridge 服务访问 ReSpeaker
func NewBridgeSink(cfg *define.Config) (device.Sink, error) {
	if cfg.BridgeURL == "" {
		return nil, fmt.Errorf("缺少 LED bridge 服务 URL 配置")
	}
	client := communication.NewBridgeClient(cfg.BridgeURL)
	if !client.IsConnected() {
		log.Printf("⚠️ LED bridge 服务 %s 暂不可达，写入将失败直到服务恢复", cfg.BridgeURL)
	}
	return NewReSpeaker(client), nil
}

// NewAutoSink 找到 ReSpeaker 就使用它，否则返回 nil Sink
func NewAutoSink(cfg *define.Config) (device.Sink, error) {
	if cfg.BridgeURL != "" {
		return NewBridgeSink(cfg)
	}
	sink, err := NewReSpeakerSink(cfg)
	if err != nil {
		log.Printf("ℹ️ 未使用 LED 设备: %v", err)
		return nil, nil
	}
	return sink, nil
}
