package token

// 账号绑定 link token：由 LMS 用共享密钥签发，小程序携带到本服务换绑定。
// 一次性短时效，不承担登录会话职责。

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"AssignReminders/config"
	"AssignReminders/pkg/errors"
)

const (
	IdentityKey = "uid"
	purposeKey  = "purpose"
	purposeLink = "wechat_link"
)

// MintLinkToken 为指定用户签发绑定 token（测试与 LMS 侧工具使用）
func MintLinkToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwtv5.MapClaims{
		IdentityKey: fmt.Sprintf("%d", userID),
		purposeKey:  purposeLink,
		"iat":       now.Unix(),
		"exp":       now.Add(time.Duration(config.Cfg.LinkTokenExpireMinutes) * time.Minute).Unix(),
	}

	tokenObj := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tokenObj.SignedString([]byte(config.Cfg.LinkTokenSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign link token: %w", err)
	}
	return signed, nil
}

// VerifyLinkToken 校验 link token 并返回 LMS 用户 ID
func VerifyLinkToken(tokenString string) (int64, error) {
	parsed, err := jwtv5.Parse(tokenString, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Cfg.LinkTokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, errors.LinkTokenInvalid
	}

	claims, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok {
		return 0, errors.LinkTokenInvalid
	}

	if purpose, _ := claims[purposeKey].(string); purpose != purposeLink {
		return 0, errors.LinkTokenInvalid
	}

	uidStr, ok := claims[IdentityKey].(string)
	if !ok {
		return 0, errors.LinkTokenInvalid
	}

	var uid int64
	if _, err := fmt.Sscanf(uidStr, "%d", &uid); err != nil || uid <= 0 {
		return 0, errors.LinkTokenInvalid
	}

	return uid, nil
}
