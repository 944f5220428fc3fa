package parser

import "testing"

func TestReconcile_NearbyRowSuppliesSplit(t *testing.T) {
	t.Parallel()

	rows := []RawRow{
		testRow("9861502588 A K SEN"),
		testRow("01-03-2024"),
		testRow("CS/10"), // 账单号行本身没有付款两列，且离总额行超过 3 行
		testRow("PARACETAMOL-500", "2.0"),
		testRow("CROCIN ADVANCE", "1.0"),
		testRow("DOLO-650 TAB", "3.0"),
		testRow("TOTAL AMOUNT :", "300"),
		// 窗口内（总额行 +1）首个含账单号的行提供付款拆分
		testRow("CS/10", "", "100", "200"),
	}

	bills := Build(rows, nil)
	Reconcile(rows, bills)

	b := bills[0]
	if !b.Cash.Equal(dec("100")) || !b.Credit.Equal(dec("200")) {
		t.Fatalf("payment: cash=%s credit=%s", b.Cash, b.Credit)
	}
}

func TestReconcile_WindowIsLimitedToThreeRows(t *testing.T) {
	t.Parallel()

	rows := []RawRow{
		testRow("9861502588 A K SEN"),
		testRow("01-03-2024"),
		testRow("CS/10"),
		testRow("TOTAL AMOUNT :", "300"),
		testRow("noise row", "1"),
		testRow("noise row", "2"),
		testRow("noise row", "3"),
		// 总额行 +4，超出 ±3 窗口，不参与回填
		testRow("CS/10", "", "100", "200"),
	}

	bills := Build(rows, nil)
	Reconcile(rows, bills)

	b := bills[0]
	// 超窗后走最终兜底：整单按现金计
	if !b.Cash.Equal(dec("300")) || !b.Credit.IsZero() {
		t.Fatalf("payment: cash=%s credit=%s", b.Cash, b.Credit)
	}
}

func TestReconcile_FullCashFallback(t *testing.T) {
	t.Parallel()

	rows := []RawRow{
		testRow("9861502588 A K SEN"),
		testRow("01-03-2024"),
		testRow("CS/11"),
		testRow("TOTAL AMOUNT :", "450"),
	}

	bills := Build(rows, nil)
	Reconcile(rows, bills)

	b := bills[0]
	if !b.Cash.Equal(dec("450")) || !b.Credit.IsZero() {
		t.Fatalf("payment: cash=%s credit=%s", b.Cash, b.Credit)
	}
}

func TestReconcile_ResolvedBillsUntouched(t *testing.T) {
	t.Parallel()

	rows := []RawRow{
		testRow("9861502588 A K SEN"),
		testRow("01-03-2024"),
		testRow("CS/12", "", "100", "50"),
		testRow("TOTAL AMOUNT :", "150"),
	}

	bills := Build(rows, nil)
	Reconcile(rows, bills)

	b := bills[0]
	if !b.Cash.Equal(dec("100")) || !b.Credit.Equal(dec("50")) {
		t.Fatalf("payment overwritten: cash=%s credit=%s", b.Cash, b.Credit)
	}
}

func TestReconcile_ZeroTotalLeftAlone(t *testing.T) {
	t.Parallel()

	rows := []RawRow{
		testRow("9861502588 A K SEN"),
		testRow("01-03-2024"),
		testRow("CS/13"),
	}

	bills := Build(rows, nil)
	Reconcile(rows, bills)

	b := bills[0]
	if !b.Cash.IsZero() || !b.Credit.IsZero() {
		t.Fatalf("zero-total bill must stay zero: cash=%s credit=%s", b.Cash, b.Credit)
	}
}
