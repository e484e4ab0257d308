package handler

import (
	"context"
	"fmt"

	"AssignReminders/internal/model"
	"AssignReminders/internal/service"
	"AssignReminders/pkg/errors"
	"AssignReminders/pkg/response"
	"AssignReminders/pkg/token"

	"github.com/cloudwego/hertz/pkg/app"
)

// BindWechat 绑定微信小程序账号
// POST /v1/wechat/bind
func BindWechat(ctx context.Context, c *app.RequestContext) {
	var req model.BindWechatRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	binding, err := service.Binding().Bind(ctx, req.LinkToken, req.JSCode)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, model.NewBindingResponse(binding))
}

// Subscribe 记录一次订阅消息授权，配额 +1
// POST /v1/wechat/subscribe
func Subscribe(ctx context.Context, c *app.RequestContext) {
	var req model.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	userID, err := token.VerifyLinkToken(req.LinkToken)
	if err != nil {
		response.Error(ctx, c, fmt.Errorf("%w", errors.LinkTokenInvalid))
		return
	}

	balance, err := service.Quota().GrantSubscribe(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, model.SubscribeResponse{RemainingQuota: balance})
}

// GetBinding 查询绑定状态
// GET /v1/wechat/binding
func GetBinding(ctx context.Context, c *app.RequestContext) {
	linkToken := c.Query("link_token")
	userID, err := token.VerifyLinkToken(linkToken)
	if err != nil {
		response.Error(ctx, c, fmt.Errorf("%w", errors.LinkTokenInvalid))
		return
	}

	binding, err := service.Binding().Get(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, model.NewBindingResponse(binding))
}
