package mdqr

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Platform 二维码内嵌的平台标识
const Platform = "TrustaLab"

// Payload 上传后生成的二维码内容
type Payload struct {
	Code     string `json:"code"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

// BuildPayload 生成二维码 JSON 内容
func BuildPayload(code, baseURL string) (string, error) {
	p := Payload{
		Code:     code,
		URL:      strings.TrimSuffix(baseURL, "/") + "/pages/verify.html?code=" + url.QueryEscape(code),
		Platform: Platform,
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ExtractCode 从解码出的二维码文本中提取验证码，按顺序匹配：
//  1. 以 { 开头按 JSON 解析，取 code，其次 verificationCode
//  2. 包含 verify= 按 URL 解析（相对地址同样接受），取 verify 参数
//  3. 整段文本原样作为验证码
//
// 结构化内容解析失败或字段缺失时返回 false；返回值未经规范化
func ExtractCode(payload string) (string, bool) {
	switch {
	case strings.HasPrefix(payload, "{"):
		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(payload), &fields); err != nil {
			return "", false
		}
		for _, key := range []string{"code", "verificationCode"} {
			if v, ok := fields[key].(string); ok && v != "" {
				return v, true
			}
		}
		return "", false

	case strings.Contains(payload, "verify="):
		u, err := url.Parse(strings.TrimSpace(payload))
		if err != nil {
			return "", false
		}
		v := u.Query().Get("verify")
		return v, v != ""

	default:
		return payload, true
	}
}
