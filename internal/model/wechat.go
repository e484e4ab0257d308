package model

// WechatBinding links an LMS user to a WeChat mini program account.
// RemainingQuota counts one-time subscribe authorizations that have not
// been consumed by a push yet.
type WechatBinding struct {
	BaseModel
	UserID         int64  `gorm:"uniqueIndex;not null" json:"user_id"`
	OpenID         string `gorm:"size:64;uniqueIndex;not null" json:"open_id"`
	RemainingQuota int    `gorm:"not null;default:0" json:"remaining_quota"`
}

func (WechatBinding) TableName() string {
	return "wechat_bindings"
}
