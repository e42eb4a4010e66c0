package device

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type write struct {
	index LEDIndex
	data  []byte
}

// recordingSink 记录所有写入的测试设备
type recordingSink struct {
	mu       sync.Mutex
	writes   []write
	doaReads int
	failures int // 前 failures 次写入返回错误
}

func (s *recordingSink) Write(index LEDIndex, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("usb write timeout")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.writes = append(s.writes, write{index: index, data: buf})
	return nil
}

func (s *recordingSink) ReadDirectionOfArrival() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doaReads++
	return []byte{0, 0, 0, 0}, nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

func (s *recordingSink) snapshot() []write {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]write, len(s.writes))
	copy(out, s.writes)
	return out
}

func (s *recordingSink) doa() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doaReads
}

// waitFor 轮询直到 cond 为真或超时
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}
