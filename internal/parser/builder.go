package parser

import (
	"time"

	"github.com/shopspring/decimal"
)

// buildState 账单重建状态，随行序折叠推进
// 可变量只有这一处：当前客户、该客户名下未落盘的账单、最近有效日期
type buildState struct {
	customerPhone string
	customerName  string
	customerDate  time.Time
	lastValidDate time.Time

	bills   []*ParsedBill // 当前客户已开出的账单，按出现顺序
	current *ParsedBill   // 正在接收明细的账单

	out []*ParsedBill
}

// Build 按行序重建账单列表
// onRow 在每消费一行（含被客户行顺带吞掉的日期行）后回调已处理行数
func Build(rows []RawRow, onRow func(processed int)) []*ParsedBill {
	st := &buildState{}

	for i := 0; i < len(rows); {
		cls := Classify(rows[i])
		extra := st.apply(rows, i, cls)
		i += 1 + extra
		if onRow != nil {
			onRow(i)
		}
	}

	st.flushCustomer()
	return st.out
}

// apply 处理一条分类结果，返回额外消费的行数
func (st *buildState) apply(rows []RawRow, idx int, cls Classification) int {
	switch cls.Kind {
	case RowCustomerHeader:
		st.flushCustomer()
		st.customerPhone = cls.Phone
		st.customerName = cls.Name
		st.customerDate = st.lastValidDate
		// 紧随其后的日期行属于该客户段，顺带消费
		if idx+1 < len(rows) {
			if next := Classify(rows[idx+1]); next.Kind == RowDate {
				st.lastValidDate = next.Date
				st.customerDate = next.Date
				return 1
			}
		}

	case RowDate:
		st.lastValidDate = cls.Date

	case RowBillNumber:
		if st.customerPhone == "" {
			return 0 // 没有客户上下文的账单号行视为噪声
		}
		bill := &ParsedBill{
			BillNo:        cls.BillNo,
			CustomerPhone: st.customerPhone,
			CustomerName:  st.customerName,
			Date:          st.customerDate,
			TotalRowIndex: -1,
		}
		bill.Cash, bill.Credit = paymentColumns(rows[idx])
		st.bills = append(st.bills, bill)
		st.current = bill

	case RowItem:
		if st.current != nil {
			st.current.Items = append(st.current.Items, cls.Item)
		}

	case RowBillTotal:
		bill := st.resolveTotalTarget(cls.BillNo)
		if bill != nil {
			bill.TotalAmount = cls.Amount
			bill.TotalRowIndex = idx
		}
	}

	return 0
}

// resolveTotalTarget 找到总额行归属的账单：
// 行内带账单号时按号匹配，否则归属当前客户最近开出的账单
func (st *buildState) resolveTotalTarget(billNo string) *ParsedBill {
	if billNo != "" {
		for i := len(st.bills) - 1; i >= 0; i-- {
			if st.bills[i].BillNo == billNo {
				return st.bills[i]
			}
		}
	}
	if len(st.bills) > 0 {
		return st.bills[len(st.bills)-1]
	}
	return nil
}

// flushCustomer 把当前客户累计的账单并入输出
func (st *buildState) flushCustomer() {
	st.out = append(st.out, st.bills...)
	st.bills = nil
	st.current = nil
}

// paymentColumns 行尾两列付款拆分约定：倒数第二列现金、最后一列挂账
// 解析失败按零计，负的挂账取绝对值。
// 该约定对行尾恰好出现其它数值的布局会误判，刻意保持原样不做校验
func paymentColumns(row RawRow) (cash, credit decimal.Decimal) {
	n := len(row.Cells)
	if n < 2 {
		return decimal.Zero, decimal.Zero
	}
	cash = AmountOrZero(row.Cells[n-2].Value)
	credit = AmountOrZero(row.Cells[n-1].Value)
	if credit.IsNegative() {
		credit = credit.Abs()
	}
	return cash, credit
}
