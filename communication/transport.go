package communication

// Transport 面向字节包的设备连接
type Transport interface {
	// Write 发送一个完整的数据包
	Write(packet []byte) error
	// Read 读取一个报告
	Read() ([]byte, error)
	// Close 释放连接
	Close() error
}
