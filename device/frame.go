package device

// LEDIndex 灯珠在设备上的寄存器地址
type LEDIndex uint16

// ControlRegister 是整环颜色和模式切换指令使用的地址
const ControlRegister LEDIndex = 0

// 设备模式指令
var (
	ModeLED = []byte{6}          // 灯环由主机控制
	ModeDOA = []byte{7, 0, 0, 0} // 切回声源定位 (DOA) 显示模式
)

// Color 可以是打包的 0xRRGGBB 整数，也可以是显式的 (r,g,b) 三元组
type Color struct {
	Value   uint32
	R, G, B uint8
	Triple  bool
}

// Packed 创建一个打包整数颜色
func Packed(v uint32) Color { return Color{Value: v} }

// RGB 创建一个三元组颜色
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, Triple: true} }

// Bytes 返回颜色写入单个灯珠寄存器时的字节
// 三元组按 r,g,b 顺序；整数按小端序，宽度取 1/2/4 字节中最小的一个
func (c Color) Bytes() []byte {
	if c.Triple {
		return []byte{c.R, c.G, c.B}
	}
	v := c.Value
	switch {
	case v <= 0xFF:
		return []byte{byte(v)}
	case v <= 0xFFFF:
		return []byte{byte(v), byte(v >> 8)}
	default:
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	}
}

// ringBytes 返回整环颜色指令：[1, b, g, r]
func (c Color) ringBytes() []byte {
	if c.Triple {
		return []byte{1, c.B, c.G, c.R}
	}
	return []byte{1, byte(c.Value), byte(c.Value >> 8), byte(c.Value >> 16)}
}

// Pixel 帧内的一次寄存器写入
type Pixel struct {
	Index LEDIndex
	Color Color
	Raw   []byte // 非空时直接写入，忽略 Color
}

// Bytes 返回写入的数据
func (p Pixel) Bytes() []byte {
	if p.Raw != nil {
		return p.Raw
	}
	return p.Color.Bytes()
}

// Frame 一帧：每个 Pixel 都必须写到设备
type Frame struct {
	Pixels []Pixel
}

// Solid 整环单色帧
func Solid(c Color) Frame {
	return Frame{Pixels: []Pixel{{Index: ControlRegister, Raw: c.ringBytes()}}}
}

// Off 熄灭整个灯环
func Off() Frame { return Solid(Packed(0)) }

// ModeFrame 切换设备模式的帧
func ModeFrame(mode []byte) Frame {
	return Frame{Pixels: []Pixel{{Index: ControlRegister, Raw: mode}}}
}

// Fill 把同一个颜色写到给定的每个灯珠
func Fill(leds []LEDIndex, c Color) Frame {
	pixels := make([]Pixel, len(leds))
	for i, led := range leds {
		pixels[i] = Pixel{Index: led, Color: c}
	}
	return Frame{Pixels: pixels}
}
