package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"leds/api"
	"leds/bus"
	"leds/cli"
	"leds/config"
	"leds/define"
	"leds/device"
	"leds/device/models"
	"leds/state"
)

func printUsage() {
	fmt.Println("ReSpeaker LED Ring Service")
	fmt.Println("Usage:")
	fmt.Println("  leds [start] [flags]        运行 MQTT 消费者和 HTTP API")
	fmt.Println("  leds list                   列出所有对话状态及对应动画")
	fmt.Println("  leds try -state <name>      在本地应用一个状态后退出")
	fmt.Println("")
	fmt.Println("Flags:")
	fmt.Println("  -mqtt-host string       MQTT broker 地址 (default: localhost)")
	fmt.Println("  -mqtt-port int          MQTT broker 端口 (default: 1883)")
	fmt.Println("  -mqtt-username string   MQTT 用户名")
	fmt.Println("  -mqtt-password string   MQTT 密码")
	fmt.Println("  -port string            Web 服务的端口 (default: 9099)")
	fmt.Println("  -device string          LED 设备类型: auto, respeaker, bridge, none (default: auto)")
	fmt.Println("  -hidraw string          hidraw 设备路径，为空时自动探测")
	fmt.Println("  -bridge-url string      LED bridge 服务的 URL")
	fmt.Println("  -welcome-delay duration welcome 之后切换到 standby 的延时 (default: 2.2s)")
	fmt.Println("  -duration duration      try: 状态保持的时间 (default: 5s)")
	fmt.Println("")
	fmt.Println("Environment Variables (override flags, .env is loaded if present):")
	fmt.Println("  MQTT_HOST, MQTT_PORT, MQTT_USERNAME, MQTT_PASSWORD")
	fmt.Println("  WEB_PORT, LED_DEVICE, LED_HIDRAW, LED_BRIDGE_URL, WELCOME_DELAY")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  ./leds start -mqtt-host 192.168.1.10")
	fmt.Println("  ./leds try -state hotwordDetected -duration 3s")
	fmt.Println("  LED_DEVICE=bridge LED_BRIDGE_URL=http://127.0.0.1:5260 ./leds")
}

func listStates() {
	for _, s := range define.SystemStates() {
		if name, ok := state.AnimationFor(s); ok {
			fmt.Printf("%-20s -> %s\n", s, name)
		} else if s == define.StateWelcome {
			fmt.Printf("%-20s -> %s, %s\n", s, define.AnimationWakingUp, define.AnimationStandby)
		} else {
			fmt.Printf("%-20s -\n", s)
		}
	}
}

// openEngine 创建设备和动画引擎
func openEngine(cfg *define.Config) (*device.AnimationEngine, device.Sink) {
	sink, err := device.CreateSink(cfg.DeviceKind, cfg)
	if err != nil {
		log.Printf("⚠️ 打开 LED 设备失败: %v", err)
		sink = nil
	}
	return device.NewAnimationEngine(sink), sink
}

func closeSink(sink device.Sink) {
	if closer, ok := sink.(device.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Printf("⚠️ 关闭 LED 设备失败: %v", err)
		}
	}
}

func runTry(cmd *cli.Command) error {
	st, ok := define.ParseSystemState(cmd.State)
	if !ok {
		return fmt.Errorf("无效的状态: %s", cmd.State)
	}

	engine, sink := openEngine(cmd.Config)
	handler := state.NewHandler(engine, state.WithWelcomeDelay(cmd.Config.WelcomeDelay))

	log.Printf("🎬 应用状态 %s，保持 %s", st, cmd.Duration)
	handler.OnStateChange(st)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case <-ctx.Done():
	case <-time.After(cmd.Duration):
	}

	handler.Stop()
	engine.Shutdown()
	closeSink(sink)
	return nil
}

func runService(cfg *define.Config) error {
	log.Printf("🚀 启动 LED 灯环服务")
	log.Printf("🔧 服务配置：")
	log.Printf("   - MQTT broker: %s:%d", cfg.MQTTHost, cfg.MQTTPort)
	log.Printf("   - Web 端口: %s", cfg.WebPort)
	log.Printf("   - 设备类型: %s", cfg.DeviceKind)

	engine, sink := openEngine(cfg)
	handler := state.NewHandler(engine, state.WithWelcomeDelay(cfg.WelcomeDelay))

	consumer := bus.NewConsumer(cfg, handler)
	if err := consumer.Connect(10 * time.Second); err != nil {
		log.Printf("⚠️ %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:    ":" + cfg.WebPort,
		Handler: api.NewServer(engine, handler).NewRouter(),
	}
	go func() {
		log.Printf("🌐 LED 灯环服务运行在 http://localhost:%s", cfg.WebPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ HTTP 服务异常退出: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Printf("🛑 收到退出信号，开始关闭")

	// 先停止事件来源，再停止动画，最后释放设备
	consumer.Disconnect(250)
	handler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ HTTP 服务关闭失败: %v", err)
	}

	engine.Shutdown()
	closeSink(sink)
	log.Printf("👋 LED 灯环服务已退出")
	return nil
}

func main() {
	models.RegisterSinkTypes()

	cmd, err := cli.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		log.Printf("❌ %v", err)
		printUsage()
		os.Exit(2)
	}

	switch cmd.Action {
	case cli.ActionHelp:
		printUsage()
		return
	case cli.ActionList:
		listStates()
		return
	}

	if err := config.Validate(cmd.Config); err != nil {
		log.Fatalf("❌ 配置错误: %v", err)
	}

	if cmd.Action == cli.ActionTry {
		err = runTry(cmd)
	} else {
		err = runService(cmd.Config)
	}
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}
