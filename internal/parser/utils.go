package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDate 解析 dd-mm-yyyy 格式日期
func ParseDate(s string) (time.Time, error) {
	return time.Parse("02-01-2006", strings.TrimSpace(s))
}

// ParseAmount 解析金额，返回是否解析成功
// 去除千分位逗号后按十进制解析，保留负号
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// AmountOrZero 解析金额，失败时返回零
func AmountOrZero(s string) decimal.Decimal {
	d, _ := ParseAmount(s)
	return d
}

// parseQuantity 解析 "N.0" 形式的数量，无法解析时默认 1
func parseQuantity(s string) int {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".0")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// rowText 拼接整行单元格文本，用于跨列的关键词匹配
func rowText(row RawRow) string {
	parts := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		parts = append(parts, c.Value)
	}
	return strings.Join(parts, " ")
}

// rowContainsToken 判断行内任意单元格是否包含指定账单号
func rowContainsToken(row RawRow, token string) bool {
	if token == "" {
		return false
	}
	for _, c := range row.Cells {
		if strings.Contains(c.Value, token) {
			return true
		}
	}
	return false
}

// containsAny 检查字符串是否包含任意一个关键词
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
