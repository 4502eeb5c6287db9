package etresult

import (
	"strings"

	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/idgen"
)

// NormalizeCode 转大写并去掉 [A-Z0-9] 以外的字符
func NormalizeCode(raw string) string {
	upper := strings.ToUpper(raw)
	var b strings.Builder
	b.Grow(len(upper))
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidateCode 规范化后校验长度，返回规范化的验证码
func ValidateCode(raw string) (string, error) {
	code := NormalizeCode(raw)
	if code == "" {
		return "", errorx.ErrEmptyInput
	}
	if len(code) != idgen.CodeLength {
		return "", errorx.ErrWrongLength
	}
	return code, nil
}
