package device

import (
	"fmt"
	"sort"

	"leds/define"
)

// SinkConstructor 根据配置创建 Sink；返回 nil Sink 且 err 为 nil 表示没有设备
type SinkConstructor func(cfg *define.Config) (Sink, error)

// SinkFactory 设备工厂
type SinkFactory struct {
	constructors map[string]SinkConstructor
}

var defaultFactory = &SinkFactory{
	constructors: make(map[string]SinkConstructor),
}

// RegisterSinkType 注册设备类型
func RegisterSinkType(kind string, constructor SinkConstructor) {
	defaultFactory.constructors[kind] = constructor
}

// CreateSink 创建设备实例，"none" 总是返回 nil Sink
func CreateSink(kind string, cfg *define.Config) (Sink, error) {
	if kind == "none" {
		return nil, nil
	}
	constructor, ok := defaultFactory.constructors[kind]
	if !ok {
		return nil, fmt.Errorf("未知的设备类型: %s", kind)
	}
	return constructor(cfg)
}

// GetSupportedKinds 获取支持的设备类型列表
func GetSupportedKinds() []string {
	kinds := make([]string, 0, len(defaultFactory.constructors)+1)
	kinds = append(kinds, "none")
	for kind := range defaultFactory.constructors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
