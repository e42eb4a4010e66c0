package models

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReSpeaker USB 麦克风阵列的 vendor / product id
const (
	ReSpeakerVendorID  = 0x2886
	ReSpeakerProductID = 0x0007
)

// DefaultSysRoot hidraw 设备在 sysfs 中的位置
const DefaultSysRoot = "/sys/class/hidraw"

// FindReSpeaker 在 sysRoot 下查找 ReSpeaker 对应的 hidraw 设备，返回 /dev 下的路径
func FindReSpeaker(sysRoot string) (string, error) {
	entries, err := os.ReadDir(sysRoot)
	if err != nil {
		return "", fmt.Errorf("读取 %s 失败：%w", sysRoot, err)
	}

	for _, entry := range entries {
		vendor, product, ok := readHIDID(filepath.Join(sysRoot, entry.Name(), "device", "uevent"))
		if ok && vendor == ReSpeakerVendorID && product == ReSpeakerProductID {
			return "/dev/" + entry.Name(), nil
		}
	}
	return "", fmt.Errorf("未找到 ReSpeaker 设备")
}

// readHIDID 解析 uevent 中的 HID_ID=0003:00002886:00000007
func readHIDID(path string) (vendor, product uint32, ok bool) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		value, found := strings.CutPrefix(scanner.Text(), "HID_ID=")
		if !found {
			continue
		}
		var bus uint32
		if _, err := fmt.Sscanf(value, "%x:%x:%x", &bus, &vendor, &product); err != nil {
			return 0, 0, false
		}
		return vendor, product, true
	}
	return 0, 0, false
}
