package parser

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowKind 行分类类型
type RowKind string

const (
	RowCustomerHeader RowKind = "customer_header" // 客户段起始行（电话 + 姓名）
	RowDate           RowKind = "date"            // 日期行 dd-mm-yyyy
	RowBillNumber     RowKind = "bill_number"     // 账单号行 CS/xxx 或 CNxxx
	RowBillTotal      RowKind = "bill_total"      // TOTAL AMOUNT 行
	RowItem           RowKind = "item"            // 商品明细行
	RowNoise          RowKind = "noise"           // 无法识别，忽略
)

// Cell 原始单元格：列字母 + 已格式化的取值
type Cell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// RawRow 原始行：按列序排列的非空单元格
// 源表没有表头行，只能按列字母定位
type RawRow struct {
	Number int    `json:"number"` // 表内行号，从 1 开始
	Cells  []Cell `json:"cells"`
}

// Classification 单行分类结果，Kind 决定哪些字段有效
type Classification struct {
	Kind   RowKind
	Phone  string          // customer_header
	Name   string          // customer_header
	Date   time.Time       // date
	BillNo string          // bill_number；bill_total 行内出现账单号时也会带上
	Amount decimal.Decimal // bill_total
	Item   LineItem        // item
}

// LineItem 账单内一条商品行
type LineItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Batch    string          `json:"batch"`
	MRP      decimal.Decimal `json:"mrp"` // 为零表示未解析，入库时按总额均摊
}

// ParsedBill 重建出的完整账单
type ParsedBill struct {
	BillNo        string          `json:"billNo"`
	CustomerPhone string          `json:"customerPhone"`
	CustomerName  string          `json:"customerName"`
	Date          time.Time       `json:"date"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Cash          decimal.Decimal `json:"cash"`
	Credit        decimal.Decimal `json:"credit"`

	// TotalRowIndex 记录 TOTAL AMOUNT 行在输入中的下标（-1 表示未出现），
	// 付款回填时以此为中心开窗扫描
	TotalRowIndex int `json:"-"`
}

// StoreInfo 从表头区提取的门店信息
type StoreInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
