package communication

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ReportSize ReSpeaker HID 报告长度
const ReportSize = 64

// HIDRawTransport 通过 Linux hidraw 设备文件收发 HID 报告
type HIDRawTransport struct {
	path        string
	file        *os.File
	readTimeout time.Duration
	mutex       sync.Mutex
}

// OpenHIDRaw 打开 hidraw 设备，例如 /dev/hidraw0
func OpenHIDRaw(path string) (*HIDRawTransport, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("打开 HID 设备 %s 失败：%w", path, err)
	}
	return &HIDRawTransport{
		path:        path,
		file:        file,
		readTimeout: 500 * time.Millisecond,
	}, nil
}

// Write 写入一个报告：report id 0 + 数据包，补齐到 ReportSize
func (t *HIDRawTransport) Write(packet []byte) error {
	if len(packet) > ReportSize {
		return fmt.Errorf("数据包过长：%d 字节", len(packet))
	}
	report := make([]byte, ReportSize+1)
	copy(report[1:], packet)

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, err := t.file.Write(report); err != nil {
		return fmt.Errorf("写入 HID 设备 %s 失败：%w", t.path, err)
	}
	return nil
}

// Read 读取一个报告，超过 readTimeout 返回错误
func (t *HIDRawTransport) Read() ([]byte, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	// hidraw 不一定支持 deadline，失败时退化为阻塞读
	_ = t.file.SetReadDeadline(time.Now().Add(t.readTimeout))

	buf := make([]byte, ReportSize)
	n, err := t.file.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("读取 HID 设备 %s 失败：%w", t.path, err)
	}
	return buf[:n], nil
}

func (t *HIDRawTransport) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.file.Close()
}
