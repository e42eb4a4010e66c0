package communication

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BridgeMessage 发送给 LED bridge 服务的原始数据包
type BridgeMessage struct {
	Data []byte `json:"data"`
}

// readResponse bridge 服务的统一响应格式，data 固定为字节
type readResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   []byte `json:"data"`
}

// BridgeClient 通过 HTTP 与 LED bridge 服务通信，bridge 负责真正的 USB 读写
type BridgeClient struct {
	serviceURL string
	client     *http.Client
}

func NewBridgeClient(serviceURL string) *BridgeClient {
	return &BridgeClient{
		serviceURL: serviceURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *BridgeClient) Write(packet []byte) error {
	return c.SendMessage(context.Background(), BridgeMessage{Data: packet})
}

// SendMessage 将数据包通过 HTTP POST 请求发送到 bridge 服务
func (c *BridgeClient) SendMessage(ctx context.Context, msg BridgeMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("序列化消息失败：%w", err)
	}

	url := fmt.Sprintf("%s/api/hid", c.serviceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("创建 HTTP 请求失败：%w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("发送 HTTP 请求失败：%w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bridge 服务返回错误: %d, %s", resp.StatusCode, string(body))
	}

	return nil
}

// Read 从 bridge 服务读取一个报告
func (c *BridgeClient) Read() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/api/hid", c.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建 HTTP 请求失败：%w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送 HTTP 请求失败：%w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bridge 服务返回错误：%d", resp.StatusCode)
	}

	var apiResp readResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("解析响应失败：%w", err)
	}
	if apiResp.Status != "success" {
		return nil, fmt.Errorf("bridge 服务读取失败：%s", apiResp.Error)
	}
	return apiResp.Data, nil
}

// IsConnected 检查 bridge 服务是否可达
func (c *BridgeClient) IsConnected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *BridgeClient) SetServiceURL(url string) { c.serviceURL = url }

func (c *BridgeClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
