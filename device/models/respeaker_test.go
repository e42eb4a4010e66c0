package models

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"leds/define"
	"leds/device"
)

// fakeTransport 记录写入的包，按顺序返回预置的报告
type fakeTransport struct {
	written [][]byte
	reports [][]byte
	readErr error
	closed  bool
}

func (f *fakeTransport) Write(packet []byte) error {
	buf := make([]byte, len(packet))
	copy(buf, packet)
	f.written = append(f.written, buf)
	return nil
}

func (f *fakeTransport) Read() ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.reports) == 0 {
		return nil, errors.New("no report")
	}
	r := f.reports[0]
	f.reports = f.reports[1:]
	return r, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func report(header []byte, payload ...byte) []byte {
	out := append([]byte{}, header...)
	out = append(out, payload...)
	for len(out) < 64 {
		out = append(out, 0)
	}
	return out
}

func TestNewReSpeakerSwitchesToLEDMode(t *testing.T) {
	ft := &fakeTransport{}
	NewReSpeaker(ft)

	if len(ft.written) != 1 || !bytes.Equal(ft.written[0], []byte{0, 0, 1, 0, 6}) {
		t.Fatalf("初始化写入 = %v", ft.written)
	}
}

func TestReSpeakerWritePacket(t *testing.T) {
	ft := &fakeTransport{}
	r := NewReSpeaker(ft)

	if err := r.Write(device.LEDIndex(0x0103), []byte{0x10, 0x20, 0x30}); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x03, 0x01, 3, 0, 0x10, 0x20, 0x30}
	if got := ft.written[1]; !bytes.Equal(got, want) {
		t.Errorf("packet = %v, want %v", got, want)
	}
}

func TestHeaderReadFlag(t *testing.T) {
	if got := header(0x8001, 4, false); !bytes.Equal(got, []byte{0x01, 0x00, 4, 0}) {
		t.Errorf("写请求应清除最高位, got %v", got)
	}
	if got := header(0x0001, 0x0102, true); !bytes.Equal(got, []byte{0x01, 0x80, 0x02, 0x01}) {
		t.Errorf("读请求应置 0x80, got %v", got)
	}
}

func TestReSpeakerReadSkipsVAD(t *testing.T) {
	ft := &fakeTransport{
		reports: [][]byte{
			report([]byte{0xFF, 0xFF, 0, 0}),
			report([]byte{0xFF, 0xFF, 0, 0}),
			report([]byte{0, 0, 4, 0}, 0x5A, 0x00, 0x01, 0x02),
		},
	}
	r := NewReSpeaker(ft)

	data, err := r.ReadDirectionOfArrival()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{0x5A, 0x00, 0x01, 0x02}) {
		t.Errorf("DOA = %v", data)
	}

	// LED 模式、DOA 模式、读请求
	if len(ft.written) != 3 {
		t.Fatalf("写入 %d 个包", len(ft.written))
	}
	if !bytes.Equal(ft.written[1], []byte{0, 0, 4, 0, 7, 0, 0, 0}) {
		t.Errorf("DOA 模式包 = %v", ft.written[1])
	}
	if !bytes.Equal(ft.written[2], []byte{0, 0x80, 4, 0}) {
		t.Errorf("读请求包 = %v", ft.written[2])
	}
}

func TestReSpeakerReadGivesUpAfterVADReports(t *testing.T) {
	ft := &fakeTransport{}
	for i := 0; i < maxReadAttempts; i++ {
		ft.reports = append(ft.reports, report([]byte{0xFF, 0xFF}))
	}
	r := NewReSpeaker(ft)

	if _, err := r.Read(0, 4); err == nil {
		t.Fatal("只有 VAD 数据时应返回错误")
	}
}

func TestReSpeakerReadError(t *testing.T) {
	ft := &fakeTransport{readErr: errors.New("timeout")}
	r := NewReSpeaker(ft)

	if _, err := r.Read(0, 4); err == nil {
		t.Fatal("传输层错误应向上返回")
	}
	if err := r.Close(); err != nil || !ft.closed {
		t.Error("Close 应关闭传输层")
	}
}

func writeUevent(t *testing.T, root, name, hidID string) {
	t.Helper()
	dir := filepath.Join(root, name, "device")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "DRIVER=hid-generic\nHID_ID=" + hidID + "\nHID_NAME=test\n"
	if err := os.WriteFile(filepath.Join(dir, "uevent"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindReSpeaker(t *testing.T) {
	root := t.TempDir()
	writeUevent(t, root, "hidraw0", "0003:0000046D:0000C52B")
	writeUevent(t, root, "hidraw1", "0003:00002886:00000007")

	path, err := FindReSpeaker(root)
	if err != nil {
		t.Fatal(err)
	}
	if path != "/dev/hidraw1" {
		t.Errorf("path = %s", path)
	}
}

func TestFindReSpeakerMissing(t *testing.T) {
	root := t.TempDir()
	writeUevent(t, root, "hidraw0", "0003:0000046D:0000C52B")

	if _, err := FindReSpeaker(root); err == nil {
		t.Error("没有 ReSpeaker 时应返回错误")
	}
	if _, err := FindReSpeaker(filepath.Join(root, "missing")); err == nil {
		t.Error("目录不存在时应返回错误")
	}
}

func TestBridgeSinkRequiresURL(t *testing.T) {
	if _, err := NewBridgeSink(&define.Config{}); err == nil {
		t.Error("缺少 URL 时应返回错误")
	}
}

func TestRegisterSinkTypes(t *testing.T) {
	RegisterSinkTypes()

	kinds := device.GetSupportedKinds()
	for _, want := range []string{"auto", "bridge", "none", "respeaker"} {
		found := false
		for _, k := range kinds {
			if k == want {
				found = true
			}
		}
		if !found {
			t.Errorf("缺少设备类型 %s: %v", want, kinds)
		}
	}

	sink, err := device.CreateSink("none", &define.Config{})
	if err != nil || sink != nil {
		t.Errorf("none 应返回 nil Sink, got %v %v", sink, err)
	}
}
