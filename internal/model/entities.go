// Package model 定义对账单导入涉及的持久化实体
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType 账单付款方式
type PaymentType string

const (
	PaymentCash   PaymentType = "CASH"   // 纯现金
	PaymentCredit PaymentType = "CREDIT" // 存在挂账部分
)

// Store 门店
type Store struct {
	ID        int64     `json:"id"`
	StoreName string    `json:"storeName"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Customer 客户，phone 为自然键
// Address 在对账单里不出现，保持 NULL
type Customer struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Bill 账单，bill_no 为自然键
type Bill struct {
	ID           int64           `json:"id"`
	BillNo       string          `json:"billNo"`
	CustomerID   int64           `json:"customerId"`
	StoreID      int64           `json:"storeId"`
	Date         time.Time       `json:"date"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	PaymentType  PaymentType     `json:"paymentType"`
	IsUploaded   bool            `json:"isUploaded"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// BillDetail 账单商品明细
type BillDetail struct {
	ID       int64           `json:"id"`
	BillID   int64           `json:"billId"`
	Item     string          `json:"item"`
	Quantity int             `json:"quantity"`
	Batch    string          `json:"batch"`
	ExpBatch string          `json:"expBatch"`
	MRP      decimal.Decimal `json:"mrp"`
	Discount decimal.Decimal `json:"discount"`
}
