package bus

import (
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"leds/define"
)

// StateListener 接收状态变化
type StateListener interface {
	OnStateChange(state define.SystemState)
}

// Consumer 订阅 Hermes 主题并把消息转换成状态变化
type Consumer struct {
	client   mqtt.Client
	listener StateListener

	mu           sync.Mutex
	hotwordMuted bool
}

// NewConsumer 根据配置创建 MQTT 消费者，尚未连接
func NewConsumer(cfg *define.Config, listener StateListener) *Consumer {
	c := &Consumer{listener: listener}

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTTHost, cfg.MQTTPort)).
		SetClientID(fmt.Sprintf("leds-%d", time.Now().UnixNano())).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	c.client = mqtt.NewClient(opts)
	return c
}

// Connect 连接 broker；开启了重试，连接失败时在后台继续尝试
func (c *Consumer) Connect(timeout time.Duration) error {
	token := c.client.Connect()
	if !token.WaitTimeout(timeout) {
		log.Printf("⏳ MQTT broker 暂未连接，后台继续重试")
		return nil
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("连接 MQTT broker 失败：%w", err)
	}
	return nil
}

func (c *Consumer) onConnect(client mqtt.Client) {
	log.Printf("✅ 已连接 MQTT broker")
	c.listener.OnStateChange(define.StateWelcome)

	for _, topic := range Subscriptions {
		token := client.Subscribe(topic, 0, c.onMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			log.Printf("❌ 订阅 %s 失败: %v", topic, err)
		}
	}

	c.listener.OnStateChange(define.StateHotwordToggleOn)
}

func (c *Consumer) onConnectionLost(_ mqtt.Client, err error) {
	log.Printf("⚠️ MQTT 连接断开: %v", err)
	c.listener.OnStateChange(define.StateGoodbye)
}

func (c *Consumer) onMessage(client mqtt.Client, msg mqtt.Message) {
	c.Dispatch(client, msg.Topic())
}

// Dispatch 处理一个主题；第一次检测到唤醒词时发布 toggleOff
func (c *Consumer) Dispatch(client mqtt.Client, topic string) {
	state, ok := StateForTopic(topic)
	if !ok {
		return
	}

	if state == define.StateHotwordDetected && c.firstHotword() && client != nil {
		client.Publish(FeedbackToggleOffTopic, 0, false, "")
	}
	c.listener.OnStateChange(state)
}

func (c *Consumer) firstHotword() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hotwordMuted {
		return false
	}
	c.hotwordMuted = true
	return true
}

// Disconnect 断开连接，quiesce 为等待在途消息的毫秒数
func (c *Consumer) Disconnect(quiesce uint) {
	c.client.Disconnect(quiesce)
	log.Printf("🔌 已断开 MQTT 连接")
}
