package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"leds/define"
	"leds/state"
)

// 支持的子命令
const (
	ActionStart = "start"
	ActionList  = "list"
	ActionTry   = "try"
	ActionHelp  = "help"
)

// Command 解析后的命令行
type Command struct {
	Action   string
	Config   *define.Config
	State    string        // try: 要应用的状态
	Duration time.Duration // try: 应用后保持的时间
}

// Parse 解析子命令和参数，环境变量（含 .env）覆盖命令行参数
func Parse(args []string, output io.Writer) (*Command, error) {
	cmd := &Command{Action: ActionStart, Config: &define.Config{}}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd.Action = args[0]
		args = args[1:]
	}
	switch cmd.Action {
	case ActionStart, ActionList, ActionTry:
	case ActionHelp:
		return cmd, nil
	default:
		return nil, fmt.Errorf("未知的命令: %s", cmd.Action)
	}

	fs := flag.NewFlagSet(cmd.Action, flag.ContinueOnError)
	fs.SetOutput(output)
	RegisterFlags(fs, cmd.Config)
	if cmd.Action == ActionTry {
		fs.StringVar(&cmd.State, "state", "", "要应用的状态，例如 hotwordDetected")
		fs.DurationVar(&cmd.Duration, "duration", 5*time.Second, "状态保持的时间")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			cmd.Action = ActionHelp
			return cmd, nil
		}
		return nil, err
	}

	if err := LoadEnv(cmd.Config); err != nil {
		return nil, err
	}

	if cmd.Action == ActionTry && cmd.State == "" {
		return nil, fmt.Errorf("try 命令需要 -state 参数")
	}
	return cmd, nil
}

// RegisterFlags 注册配置相关的命令行参数
func RegisterFlags(fs *flag.FlagSet, cfg *define.Config) {
	fs.StringVar(&cfg.MQTTHost, "mqtt-host", "localhost", "MQTT broker 地址")
	fs.IntVar(&cfg.MQTTPort, "mqtt-port", 1883, "MQTT broker 端口")
	fs.StringVar(&cfg.MQTTUsername, "mqtt-username", "", "MQTT 用户名")
	fs.StringVar(&cfg.MQTTPassword, "mqtt-password", "", "MQTT 密码")
	fs.StringVar(&cfg.WebPort, "port", "9099", "Web 服务的端口")
	fs.StringVar(&cfg.DeviceKind, "device", "auto", "LED 设备类型: auto, respeaker, bridge, none")
	fs.StringVar(&cfg.HIDRawPath, "hidraw", "", "hidraw 设备路径，为空时自动探测")
	fs.StringVar(&cfg.BridgeURL, "bridge-url", "", "LED bridge 服务的 URL")
	fs.DurationVar(&cfg.WelcomeDelay, "welcome-delay", state.DefaultWelcomeDelay, "welcome 之后切换到 standby 的延时")
}

// LoadEnv 读取 .env 并用环境变量覆盖配置
func LoadEnv(cfg *define.Config) error {
	if err := godotenv.Load(); err == nil {
		log.Println("📄 已加载 .env 文件")
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("解析环境变量失败：%w", err)
	}
	return nil
}
