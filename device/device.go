package device

import "time"

// Sink 代表灯环硬件的读写边界
// nil Sink 表示没有接入兼容的设备，所有调用方都应将其视为合法配置
type Sink interface {
	// Write 向一个寄存器地址写入数据
	Write(index LEDIndex, data []byte) error
	// ReadDirectionOfArrival 读取声源定位数据，同时让设备回到待听模式
	ReadDirectionOfArrival() ([]byte, error)
}

// Closer 可选接口，持有底层连接的 Sink 实现它
type Closer interface {
	Close() error
}

// EngineStats 动画引擎的写入统计
type EngineStats struct {
	FramesWritten uint64    `json:"framesWritten"`
	WriteErrors   uint64    `json:"writeErrors"`
	DOAReads      uint64    `json:"doaReads"`
	LastError     string    `json:"lastError,omitempty"`
	LastUpdate    time.Time `json:"lastUpdate"`
}
