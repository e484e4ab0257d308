package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 账号绑定相关错误。
var (
	LinkTokenInvalid  = Definition{Code: "LINK_TOKEN_INVALID", Message: "Link token invalid or expired"}
	JSCodeInvalid     = Definition{Code: "JSCODE_INVALID", Message: "Wechat js_code invalid"}
	BindingNotFound   = Definition{Code: "BINDING_NOT_FOUND", Message: "Wechat binding not found"}
	BindingConflict   = Definition{Code: "BINDING_CONFLICT", Message: "Openid already bound to another user"}
	WechatUnavailable = Definition{Code: "WECHAT_UNAVAILABLE", Message: "Wechat API unavailable"}
)

// 额度模块错误。
var (
	QuotaInsufficient = Definition{Code: "QUOTA_INSUFFICIENT", Message: "Subscribe quota insufficient"}
)

// 提醒投递错误。
var (
	RecipientUnavailable = Definition{Code: "RECIPIENT_UNAVAILABLE", Message: "Recipient suspended or deleted"}
	TemplateNotConfigured = Definition{Code: "TEMPLATE_NOT_CONFIGURED", Message: "Subscribe message template not configured"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	LinkTokenInvalid.Code:      LinkTokenInvalid,
	JSCodeInvalid.Code:         JSCodeInvalid,
	BindingNotFound.Code:       BindingNotFound,
	BindingConflict.Code:       BindingConflict,
	WechatUnavailable.Code:     WechatUnavailable,
	QuotaInsufficient.Code:     QuotaInsufficient,
	RecipientUnavailable.Code:  RecipientUnavailable,
	TemplateNotConfigured.Code: TemplateNotConfigured,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// SkipMessageError 消费者据此 Ack 并跳过消息，而不是 Nack 重新入队。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}
