package wechat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type MockSend struct {
	OpenID     string
	TemplateID string
	Data       map[string]string
}

// MockClient 可配置的微信客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Sends []MockSend

	// FailNext 置为 true 时，下一次发送返回 mock 错误并自动复位
	FailNext bool

	// FailOpenIDs 命中的 openid 发送总是失败
	FailOpenIDs map[string]bool

	openidSeq int
}

func NewMockClient() *MockClient {
	return &MockClient{
		Sends:       make([]MockSend, 0),
		FailOpenIDs: make(map[string]bool),
	}
}

func (m *MockClient) RequestAccessToken(ctx context.Context) (string, time.Duration, error) {
	return "mock-access-token", 2 * time.Hour, nil
}

func (m *MockClient) RequestOpenID(ctx context.Context, jsCode string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if jsCode == "" {
		return "", errors.New("mock jscode2session failure")
	}
	m.openidSeq++
	return fmt.Sprintf("mock-openid-%s-%d", jsCode, m.openidSeq), nil
}

func (m *MockClient) SendSubscribeMessage(ctx context.Context, accessToken, openid, templateID string, data map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sends = append(m.Sends, MockSend{
		OpenID:     openid,
		TemplateID: templateID,
		Data:       data,
	})

	if m.FailNext {
		m.FailNext = false
		return errors.New("mock subscribe send failure")
	}
	if m.FailOpenIDs[openid] {
		return errors.New("mock subscribe send failure")
	}

	return nil
}

// SentTo 返回发送给指定 openid 的次数
func (m *MockClient) SentTo(openid string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.Sends {
		if s.OpenID == openid {
			n++
		}
	}
	return n
}
