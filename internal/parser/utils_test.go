package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

// dec 测试用十进制字面量
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	if d, ok := ParseAmount("1,234.56"); !ok || !d.Equal(dec("1234.56")) {
		t.Fatalf("comma amount: got=%s ok=%v", d, ok)
	}
	if d, ok := ParseAmount("-500"); !ok || !d.Equal(dec("-500")) {
		t.Fatalf("negative amount: got=%s ok=%v", d, ok)
	}
	if _, ok := ParseAmount("CS/35866"); ok {
		t.Fatalf("bill number must not parse as amount")
	}
	if _, ok := ParseAmount("   "); ok {
		t.Fatalf("blank must not parse as amount")
	}
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()

	if got := parseQuantity("2.0"); got != 2 {
		t.Fatalf("2.0: got=%d", got)
	}
	if got := parseQuantity("12.0"); got != 12 {
		t.Fatalf("12.0: got=%d", got)
	}
	// 无法解析时默认 1
	if got := parseQuantity("abc"); got != 1 {
		t.Fatalf("abc: got=%d", got)
	}
	if got := parseQuantity("0.0"); got != 1 {
		t.Fatalf("0.0: got=%d", got)
	}
}

func TestParseDate_DayMonthYear(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("01-03-2024")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// dd-mm-yyyy：01-03 是 3 月 1 日而不是 1 月 3 日
	if d.Day() != 1 || d.Month() != 3 || d.Year() != 2024 {
		t.Fatalf("unexpected date: %v", d)
	}
}

func TestRowContainsToken(t *testing.T) {
	t.Parallel()

	row := testRow("TOTAL AMOUNT CS/100", "250")
	if !rowContainsToken(row, "CS/100") {
		t.Fatalf("token expected")
	}
	if rowContainsToken(row, "CS/999") {
		t.Fatalf("token not expected")
	}
	if rowContainsToken(row, "") {
		t.Fatalf("empty token must not match")
	}
}
