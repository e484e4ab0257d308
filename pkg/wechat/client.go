package wechat

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"AssignReminders/config"
	"AssignReminders/pkg/logger"
)

// Client 微信小程序客户端接口
type Client interface {
	// RequestAccessToken 向微信服务器申请接口调用凭据
	// 返回 token 及其有效期
	RequestAccessToken(ctx context.Context) (string, time.Duration, error)

	// RequestOpenID 用登录凭证 js_code 换取用户 openid
	RequestOpenID(ctx context.Context, jsCode string) (string, error)

	// SendSubscribeMessage 发送订阅消息
	// openid: 接收者
	// templateID: 订阅消息模板
	// data: 模板字段 -> 值
	SendSubscribeMessage(ctx context.Context, accessToken, openid, templateID string, data map[string]string) error
}

var (
	wxClient Client
	wxOnce   sync.Once
	wxErr    error
)

// Init 初始化微信客户端
func Init() error {
	wxOnce.Do(func() {
		cfg := config.Cfg

		if cfg.WechatAppID == "" || cfg.WechatAppSecret == "" {
			logger.Logger.Warn("Wechat credentials missing, using mock client")
			wxClient = NewMockClient()
			return
		}

		wxClient = NewAPIClient(cfg.WechatAPIBase, cfg.WechatAppID, cfg.WechatAppSecret)
		logger.Logger.Info("Wechat client initialized successfully",
			zap.String("api_base", cfg.WechatAPIBase),
		)
	})

	return wxErr
}

func GetClient() Client {
	if wxClient == nil {
		panic("Wechat client not initialized, call wechat.Init() first")
	}
	return wxClient
}

// SetClient 注入客户端实现（测试用）
func SetClient(c Client) {
	wxClient = c
}
