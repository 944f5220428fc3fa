package importer

import (
	"log"

	"github.com/shopspring/decimal"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/model"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/parser"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/store"
)

// cachedCustomer 同一轮导入内的客户缓存项
// 记录最近写入的姓名，姓名变化时才回写数据库
type cachedCustomer struct {
	id   int64
	name string
}

// Loader 账单落盘器
// 门店/客户按自然键 upsert 并缓存，账单按 bill_no 去重，
// 缓存随 Loader 实例走，多轮导入互不干扰
type Loader struct {
	store     *store.Store
	stores    map[string]int64
	customers map[string]cachedCustomer
}

// NewLoader 创建落盘器，缓存为空
func NewLoader(st *store.Store) *Loader {
	return &Loader{
		store:     st,
		stores:    make(map[string]int64),
		customers: make(map[string]cachedCustomer),
	}
}

// LoadResult 落盘统计
type LoadResult struct {
	BillsCreated int
	ItemsCreated int
}

// Load 按输入顺序逐单落盘
// 单个账单失败只记日志并跳过，不中断整轮导入；
// 同一 bill_no 至多入库一次，重复导入第二轮零新增
func (l *Loader) Load(bills []*parser.ParsedBill, info parser.StoreInfo) LoadResult {
	var res LoadResult

	for _, bill := range bills {
		if bill.BillNo == "" {
			continue
		}

		exists, err := l.store.BillExists(bill.BillNo)
		if err != nil {
			log.Printf("查询账单 %s 失败，跳过: %v", bill.BillNo, err)
			continue
		}
		if exists {
			continue // 已入库，幂等跳过
		}

		customerID, err := l.upsertCustomer(bill.CustomerPhone, bill.CustomerName)
		if err != nil {
			log.Printf("账单 %s 客户写入失败，跳过: %v", bill.BillNo, err)
			continue
		}

		storeID, err := l.upsertStore(info)
		if err != nil {
			log.Printf("账单 %s 门店写入失败，跳过: %v", bill.BillNo, err)
			continue
		}

		record := &model.Bill{
			BillNo:       bill.BillNo,
			CustomerID:   customerID,
			StoreID:      storeID,
			Date:         bill.Date,
			NetAmount:    bill.TotalAmount,
			AmountPaid:   bill.Cash,
			CreditAmount: bill.Credit,
			PaymentType:  model.PaymentCash,
			IsUploaded:   true,
		}
		if bill.Credit.IsPositive() {
			record.PaymentType = model.PaymentCredit
		}

		details := buildDetails(bill)
		if _, err := l.store.InsertBillWithDetails(record, details); err != nil {
			log.Printf("账单 %s 入库失败，跳过: %v", bill.BillNo, err)
			continue
		}

		res.BillsCreated++
		res.ItemsCreated += len(details)
	}

	return res
}

// upsertCustomer 电话为键的客户缓存写入
// 姓名以最近一次出现为准，变化时回写
func (l *Loader) upsertCustomer(phone, name string) (int64, error) {
	if c, ok := l.customers[phone]; ok && c.name == name {
		return c.id, nil
	}
	id, err := l.store.UpsertCustomer(phone, name)
	if err != nil {
		return 0, err
	}
	l.customers[phone] = cachedCustomer{id: id, name: name}
	return id, nil
}

// upsertStore 门店名为键的门店缓存写入
func (l *Loader) upsertStore(info parser.StoreInfo) (int64, error) {
	if id, ok := l.stores[info.Name]; ok {
		return id, nil
	}
	id, err := l.store.UpsertStore(&model.Store{
		StoreName: info.Name,
		Address:   info.Address,
		Phone:     info.Phone,
		Email:     info.Email,
	})
	if err != nil {
		return 0, err
	}
	l.stores[info.Name] = id
	return id, nil
}

// buildDetails 组装明细行
// 单价未解析（为零）时按总额对行数均摊
func buildDetails(bill *parser.ParsedBill) []*model.BillDetail {
	var fallback decimal.Decimal
	if len(bill.Items) > 0 {
		fallback = bill.TotalAmount.Div(decimal.NewFromInt(int64(len(bill.Items))))
	}

	details := make([]*model.BillDetail, 0, len(bill.Items))
	for _, item := range bill.Items {
		mrp := item.MRP
		if mrp.IsZero() {
			mrp = fallback
		}
		details = append(details, &model.BillDetail{
			Item:     item.Name,
			Quantity: item.Quantity,
			Batch:    item.Batch,
			ExpBatch: item.Batch,
			MRP:      mrp,
			Discount: decimal.Zero,
		})
	}
	return details
}
