package etresult

// OutcomeKind 验证结果类型
type OutcomeKind string

const (
	OutcomeFound    OutcomeKind = "FOUND"
	OutcomeNotFound OutcomeKind = "NOT_FOUND"
)

// Outcome 验证结果：Found 携带记录副本，NotFound 仅携带验证码
type Outcome struct {
	Kind   OutcomeKind
	Code   string
	Record *ResultRecord
}

// Found 创建命中结果
func Found(code string, record *ResultRecord) *Outcome {
	return &Outcome{Kind: OutcomeFound, Code: code, Record: record.Clone()}
}

// NotFound 创建未命中结果
func NotFound(code string) *Outcome {
	return &Outcome{Kind: OutcomeNotFound, Code: code}
}

// IsFound 是否命中
func (o *Outcome) IsFound() bool {
	return o != nil && o.Kind == OutcomeFound && o.Record != nil
}

// RequiresPayment 命中且需要支付
func (o *Outcome) RequiresPayment() bool {
	return o.IsFound() && o.Record.RequiresPayment
}
