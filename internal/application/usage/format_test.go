package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/termnamer/internal/application/usage"
	"github.com/doeshing/termnamer/internal/domain"
)

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "AI Namer: $0.00", usage.StatusLine(domain.UsageStats{}))
	assert.Equal(t, "1,500 tokens | 0.42¢", usage.StatusLine(domain.UsageStats{
		TotalTokens:  1500,
		TotalCost:    0.0042,
		RequestCount: 1,
	}))
	assert.Equal(t, "20 tokens | $0.1234", usage.StatusLine(domain.UsageStats{
		TotalTokens:  20,
		TotalCost:    0.1234,
		RequestCount: 2,
	}))
}

func TestFormatMarkdown(t *testing.T) {
	today := domain.UsageStats{TotalPromptTokens: 1200, TotalCompletionTokens: 300, TotalTokens: 1500, TotalCost: 0.00045, RequestCount: 1}
	total := domain.UsageStats{TotalTokens: 123456, TotalCost: 0.5, RequestCount: 40}

	out := usage.FormatMarkdown(today, total)
	assert.Contains(t, out, "## 使用统计")
	assert.Contains(t, out, "- 输入 Tokens: 1,200")
	assert.Contains(t, out, "- 费用: $0.000450")
	assert.Contains(t, out, "- 请求次数: 40")
	assert.Contains(t, out, "- 总 Tokens: 123,456")
	assert.Contains(t, out, "- 总费用: $0.500000")
}
