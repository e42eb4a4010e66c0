package models

import (
	"fmt"
	"log"
	"sync"

	"leds/communication"
	"leds/device"
)

// 读取时最多跳过的 VAD 报告数
const maxReadAttempts = 6

// doaRegister DOA 数据所在寄存器
const doaRegister device.LEDIndex = 0

// ReSpeaker ReSpeaker USB 麦克风阵列的灯环，实现 device.Sink
type ReSpeaker struct {
	transport communication.Transport
	mutex     sync.Mutex
}

// NewReSpeaker 创建设备并切换到 LED 模式；模式切换失败只记录日志
func NewReSpeaker(transport communication.Transport) *ReSpeaker {
	r := &ReSpeaker{transport: transport}
	if err := r.Write(device.ControlRegister, device.ModeLED); err != nil {
		log.Printf("⚠️ ReSpeaker 切换 LED 模式失败: %v", err)
	}
	return r
}

// header 构造寄存器访问头：地址低位、地址高位（读请求置 0x80）、长度低位、长度高位
func header(address device.LEDIndex, length int, read bool) []byte {
	hi := byte(address>>8) & 0x7F
	if read {
		hi = byte(address>>8) | 0x80
	}
	return []byte{byte(address), hi, byte(length), byte(length >> 8)}
}

// Write 向寄存器写入数据
func (r *ReSpeaker) Write(index device.LEDIndex, data []byte) error {
	packet := append(header(index, len(data), false), data...)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.transport.Write(packet); err != nil {
		return fmt.Errorf("写入寄存器 %d 失败：%w", index, err)
	}
	return nil
}

// Read 读取寄存器，跳过设备主动上报的 VAD 数据
func (r *ReSpeaker) Read(address device.LEDIndex, length int) ([]byte, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.transport.Write(header(address, length, true)); err != nil {
		return nil, fmt.Errorf("发送读请求失败：%w", err)
	}

	for i := 0; i < maxReadAttempts; i++ {
		data, err := r.transport.Read()
		if err != nil {
			return nil, fmt.Errorf("读取寄存器 %d 失败：%w", address, err)
		}
		if len(data) < 2 || data[0] == 0xFF || data[1] == 0xFF {
			continue
		}
		if len(data) < 4+length {
			return nil, fmt.Errorf("寄存器 %d 数据过短：%d 字节", address, len(data))
		}
		return data[4 : 4+length], nil
	}
	return nil, fmt.Errorf("寄存器 %d 连续 %d 次只读到 VAD 数据", address, maxReadAttempts)
}

// ReadDirectionOfArrival 切回 DOA 模式并读取声源方向
func (r *ReSpeaker) ReadDirectionOfArrival() ([]byte, error) {
	if err := r.Write(device.ControlRegister, device.ModeDOA); err != nil {
		return nil, err
	}
	return r.Read(doaRegister, 4)
}

func (r *ReSpeaker) Close() error {
	return r.transport.Close()
}
