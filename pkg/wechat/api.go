package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIClient 微信开放接口的 HTTP 实现
type APIClient struct {
	base      string
	appID     string
	appSecret string
	http      *http.Client
}

func NewAPIClient(base, appID, appSecret string) *APIClient {
	return &APIClient{
		base:      base,
		appID:     appID,
		appSecret: appSecret,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

func (c *APIClient) RequestAccessToken(ctx context.Context) (string, time.Duration, error) {
	params := url.Values{
		"grant_type": {"client_credential"},
		"appid":      {c.appID},
		"secret":     {c.appSecret},
	}

	var resp tokenResponse
	if err := c.getJSON(ctx, "/cgi-bin/token", params, &resp); err != nil {
		return "", 0, err
	}

	if resp.AccessToken == "" {
		return "", 0, fmt.Errorf("wechat token grant failed: errcode=%d errmsg=%s", resp.ErrCode, resp.ErrMsg)
	}

	return resp.AccessToken, time.Duration(resp.ExpiresIn) * time.Second, nil
}

type sessionResponse struct {
	OpenID  string `json:"openid"`
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (c *APIClient) RequestOpenID(ctx context.Context, jsCode string) (string, error) {
	params := url.Values{
		"appid":      {c.appID},
		"secret":     {c.appSecret},
		"js_code":    {jsCode},
		"grant_type": {"authorization_code"},
	}

	var resp sessionResponse
	if err := c.getJSON(ctx, "/sns/jscode2session", params, &resp); err != nil {
		return "", err
	}

	if resp.OpenID == "" {
		return "", fmt.Errorf("wechat jscode2session failed: errcode=%d errmsg=%s", resp.ErrCode, resp.ErrMsg)
	}

	return resp.OpenID, nil
}

type subscribeRequest struct {
	ToUser     string                    `json:"touser"`
	TemplateID string                    `json:"template_id"`
	Data       map[string]subscribeField `json:"data"`
}

type subscribeField struct {
	Value string `json:"value"`
}

type subscribeResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (c *APIClient) SendSubscribeMessage(ctx context.Context, accessToken, openid, templateID string, data map[string]string) error {
	fields := make(map[string]subscribeField, len(data))
	for k, v := range data {
		fields[k] = subscribeField{Value: v}
	}

	body, err := json.Marshal(subscribeRequest{
		ToUser:     openid,
		TemplateID: templateID,
		Data:       fields,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal subscribe message: %w", err)
	}

	endpoint := c.base + "/cgi-bin/message/subscribe/send?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wechat subscribe send request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return err
	}

	var resp subscribeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("unexpected response from wechat server: %s", string(raw))
	}

	// errcode = 0 表示成功
	if resp.ErrCode != 0 {
		return fmt.Errorf("wechat subscribe send failed: errcode=%d errmsg=%s", resp.ErrCode, resp.ErrMsg)
	}

	return nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wechat request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unexpected response from wechat server: %s", string(raw))
	}

	return nil
}
