package usage

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/termnamer/internal/domain"
)

// FormatMarkdown renders today's and all retained usage as a markdown report.
func FormatMarkdown(today, total domain.UsageStats) string {
	var b strings.Builder
	b.WriteString("## 使用统计\n\n")
	b.WriteString("### 今日\n")
	fmt.Fprintf(&b, "- 请求次数: %d\n", today.RequestCount)
	fmt.Fprintf(&b, "- 输入 Tokens: %s\n", humanize.Comma(int64(today.TotalPromptTokens)))
	fmt.Fprintf(&b, "- 输出 Tokens: %s\n", humanize.Comma(int64(today.TotalCompletionTokens)))
	fmt.Fprintf(&b, "- 总 Tokens: %s\n", humanize.Comma(int64(today.TotalTokens)))
	fmt.Fprintf(&b, "- 费用: $%.6f\n\n", today.TotalCost)
	b.WriteString("### 累计\n")
	fmt.Fprintf(&b, "- 请求次数: %d\n", total.RequestCount)
	fmt.Fprintf(&b, "- 总 Tokens: %s\n", humanize.Comma(int64(total.TotalTokens)))
	fmt.Fprintf(&b, "- 总费用: $%.6f", total.TotalCost)
	return b.String()
}

// StatusLine is the compact one-line summary of today's usage.
func StatusLine(today domain.UsageStats) string {
	if today.RequestCount == 0 {
		return "AI Namer: $0.00"
	}
	return fmt.Sprintf("%s tokens | %s", humanize.Comma(int64(today.TotalTokens)), FormatCost(today.TotalCost))
}

// FormatCost shows sub-cent amounts in cents.
func FormatCost(cost float64) string {
	if cost < 0.01 {
		return fmt.Sprintf("%.2f¢", cost*100)
	}
	return fmt.Sprintf("$%.4f", cost)
}
