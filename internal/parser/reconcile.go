package parser

import "github.com/shopspring/decimal"

// 付款回填的开窗半径：以总额行为中心前后各 3 行
const paymentWindow = 3

// Reconcile 为总额已定但付款拆分缺失的账单回填现金/挂账
// 两级兜底：
//  1. 在总额行 ±3 行窗口内找到首个含该账单号的行，按行尾两列约定读取；
//  2. 整个文件处理完仍未解析时，整单按现金计（cash=total, credit=0）。
//
// 不校验 cash+credit 与总额是否一致，容差策略未知，保持原行为
func Reconcile(rows []RawRow, bills []*ParsedBill) {
	for _, bill := range bills {
		if !needsPayment(bill) || bill.TotalRowIndex < 0 {
			continue
		}

		lo := bill.TotalRowIndex - paymentWindow
		if lo < 0 {
			lo = 0
		}
		hi := bill.TotalRowIndex + paymentWindow
		if hi > len(rows)-1 {
			hi = len(rows) - 1
		}

		for j := lo; j <= hi; j++ {
			if rowContainsToken(rows[j], bill.BillNo) {
				bill.Cash, bill.Credit = paymentColumns(rows[j])
				break
			}
		}
	}

	// 最终兜底：假定全额现金
	for _, bill := range bills {
		if needsPayment(bill) {
			bill.Cash = bill.TotalAmount
			bill.Credit = decimal.Zero
		}
	}
}

// needsPayment 总额为正且现金/挂账均为零的账单需要回填
func needsPayment(bill *ParsedBill) bool {
	return bill.TotalAmount.IsPositive() && bill.Cash.IsZero() && bill.Credit.IsZero()
}
