package idgen

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// CodeAlphabet 验证码字符集
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength 验证码长度
const CodeLength = 8

const hexDigits = "0123456789abcdef"

// Generator 演示用标识生成器：验证码、交易ID、区块哈希
// 生成结果仅用于展示，不具备任何密码学含义
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator 创建生成器，src 为空时使用当前时间作为种子
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rnd: rand.New(src)}
}

// VerificationCode 生成 8 位 [A-Z0-9] 验证码
func (g *Generator) VerificationCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(CodeAlphabet[g.rnd.Intn(len(CodeAlphabet))])
	}
	return b.String()
}

// TransactionID 生成交易ID，格式 0.0.<n>@<unix-ms>
func (g *Generator) TransactionID(now time.Time) string {
	g.mu.Lock()
	n := g.rnd.Intn(1000000)
	g.mu.Unlock()
	return fmt.Sprintf("0.0.%d@%d", n, now.UnixMilli())
}

// BlockHash 生成区块哈希，格式 0x<16 hex>...
func (g *Generator) BlockHash() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.WriteString("0x")
	for i := 0; i < 16; i++ {
		b.WriteByte(hexDigits[g.rnd.Intn(len(hexDigits))])
	}
	b.WriteString("...")
	return b.String()
}
