package model

// 微信绑定接口请求/响应结构

type BindWechatRequest struct {
	LinkToken string `json:"link_token" binding:"required"`
	JSCode    string `json:"js_code" binding:"required"`
}

type SubscribeRequest struct {
	LinkToken string `json:"link_token" binding:"required"`
}

type BindingResponse struct {
	UserID         int64  `json:"user_id"`
	OpenID         string `json:"open_id"`
	RemainingQuota int    `json:"remaining_quota"`
}

type SubscribeResponse struct {
	RemainingQuota int `json:"remaining_quota"`
}

func NewBindingResponse(b *WechatBinding) BindingResponse {
	return BindingResponse{
		UserID:         b.UserID,
		OpenID:         b.OpenID,
		RemainingQuota: b.RemainingQuota,
	}
}
