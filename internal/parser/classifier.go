package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	// 客户段起始：9-10 位电话 + 姓名
	customerHeaderRe = regexp.MustCompile(`^(\d{9,10})\s+(\S.*)$`)
	// 日期 dd-mm-yyyy
	dateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	// 账单号：CS/数字 销售单，CN数字 退货单
	billNoRe = regexp.MustCompile(`^(CS/\d+|CN\d+)$`)
	// 行内任意位置的账单号
	billNoTokenRe = regexp.MustCompile(`(CS/\d+|CN\d+)`)
	// 数量列固定带 .0 后缀
	quantityRe = regexp.MustCompile(`^\d+\.0$`)
	// 批号形如 10/24 BATCHX
	batchRe = regexp.MustCompile(`^\d+/\d+\s+\w+`)
	// 单价列，1-2 位小数
	mrpRe = regexp.MustCompile(`^\d+\.\d{1,2}$`)
)

// Classify 对单行进行分类，纯函数，规则按优先级先到先得
// 门店元信息与付款列由上下文相关的提取器处理，不在此识别
func Classify(row RawRow) Classification {
	// 1. 客户段起始行
	for _, c := range row.Cells {
		if m := customerHeaderRe.FindStringSubmatch(strings.TrimSpace(c.Value)); m != nil {
			return Classification{
				Kind:  RowCustomerHeader,
				Phone: m[1],
				Name:  strings.TrimSpace(m[2]),
			}
		}
	}

	// 2. 日期行
	for _, c := range row.Cells {
		v := strings.TrimSpace(c.Value)
		if dateRe.MatchString(v) {
			if d, err := ParseDate(v); err == nil {
				return Classification{Kind: RowDate, Date: d}
			}
		}
	}

	// 3. 账单号行
	for _, c := range row.Cells {
		v := strings.TrimSpace(c.Value)
		if billNoRe.MatchString(v) {
			return Classification{Kind: RowBillNumber, BillNo: v}
		}
	}

	// 4. 账单总额行
	for _, c := range row.Cells {
		if strings.Contains(c.Value, "TOTAL AMOUNT") {
			return classifyBillTotal(row)
		}
	}

	// 5. 商品明细行
	if cls, ok := classifyItem(row); ok {
		return cls
	}

	return Classification{Kind: RowNoise}
}

// classifyBillTotal 提取总额行的金额与可选账单号
// 金额取行内最后一个可解析为数字、且本身不是账单号的单元格
func classifyBillTotal(row RawRow) Classification {
	cls := Classification{Kind: RowBillTotal}
	for _, c := range row.Cells {
		v := strings.TrimSpace(c.Value)
		if m := billNoTokenRe.FindString(v); m != "" {
			cls.BillNo = m
			continue
		}
		if d, ok := ParseAmount(v); ok {
			cls.Amount = d
		}
	}
	return cls
}

// classifyItem 识别商品明细行
// 条件：存在描述列（长度 >5、含大写字母、不以数字开头），
// 且存在数量列（N.0）或批号列（NN/NN XXX）
func classifyItem(row RawRow) (Classification, bool) {
	var (
		name     string
		qtyCell  = -1
		batch    string
		quantity = 1
	)

	for _, c := range row.Cells {
		v := strings.TrimSpace(c.Value)
		if name == "" && isDescription(v) {
			name = v
		}
	}
	if name == "" {
		return Classification{}, false
	}

	for i, c := range row.Cells {
		v := strings.TrimSpace(c.Value)
		if qtyCell < 0 && quantityRe.MatchString(v) {
			qtyCell = i
			quantity = parseQuantity(v)
		}
		if batch == "" && batchRe.MatchString(v) {
			batch = v
		}
	}
	if qtyCell < 0 && batch == "" {
		return Classification{}, false
	}

	// 单价取最后一个符合价格格式、且不是数量列的单元格，未出现则保持为零
	mrp := decimal.Zero
	for i, c := range row.Cells {
		if i == qtyCell {
			continue
		}
		v := strings.TrimSpace(c.Value)
		if mrpRe.MatchString(v) {
			mrp = AmountOrZero(v)
		}
	}

	return Classification{
		Kind: RowItem,
		Item: LineItem{
			Name:     name,
			Quantity: quantity,
			Batch:    batch,
			MRP:      mrp,
		},
	}, true
}

// isDescription 判断单元格是否像商品描述
func isDescription(v string) bool {
	if len(v) <= 5 {
		return false
	}
	runes := []rune(v)
	if unicode.IsDigit(runes[0]) {
		return false
	}
	for _, r := range runes {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
