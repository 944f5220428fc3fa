package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUpsertStore_CreateThenUpdate(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	id1, err := s.UpsertStore(&model.Store{StoreName: "WEKEYAR PLUS", Address: "OLD"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id2, err := s.UpsertStore(&model.Store{StoreName: "WEKEYAR PLUS", Address: "NEW", Phone: "0674"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("ids differ: %d %d", id1, id2)
	}

	var addr string
	if err := s.db.QueryRow(`SELECT address FROM stores WHERE id = ?`, id1).Scan(&addr); err != nil {
		t.Fatalf("query: %v", err)
	}
	if addr != "NEW" {
		t.Fatalf("address: got=%q", addr)
	}
}

func TestUpsertCustomer_NameFollowsLatest(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	id1, err := s.UpsertCustomer("9861502588", "A K SEN")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id2, err := s.UpsertCustomer("9861502588", "ASHOK KUMAR SEN")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("ids differ: %d %d", id1, id2)
	}

	c, err := s.GetCustomerByPhone("9861502588")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Name != "ASHOK KUMAR SEN" {
		t.Fatalf("name: got=%q", c.Name)
	}
}

func TestBillExists(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	ok, err := s.BillExists("CS/1")
	if err != nil || ok {
		t.Fatalf("exists before insert: ok=%v err=%v", ok, err)
	}

	insertTestBill(t, s, "CS/1")

	ok, err = s.BillExists("CS/1")
	if err != nil || !ok {
		t.Fatalf("exists after insert: ok=%v err=%v", ok, err)
	}
}

func TestInsertBillWithDetails_DuplicateBillNoFails(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	insertTestBill(t, s, "CS/1")

	customerID, _ := s.UpsertCustomer("9861502588", "A K SEN")
	storeID, _ := s.UpsertStore(&model.Store{StoreName: "WEKEYAR PLUS"})
	_, err := s.InsertBillWithDetails(&model.Bill{
		BillNo:     "CS/1",
		CustomerID: customerID,
		StoreID:    storeID,
		Date:       time.Now(),
	}, nil)
	if err == nil {
		t.Fatalf("duplicate bill_no must fail")
	}

	// 唯一约束兜底：同号账单永远只有一条
	if n, _ := s.BillCount(); n != 1 {
		t.Fatalf("bill count: got=%d", n)
	}
}

func TestInsertBillWithDetails_Atomic(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	customerID, _ := s.UpsertCustomer("9861502588", "A K SEN")
	storeID, _ := s.UpsertStore(&model.Store{StoreName: "WEKEYAR PLUS"})

	details := []*model.BillDetail{
		{Item: "PARACETAMOL-500", Quantity: 2, Batch: "10/24 BATCHX", MRP: decimal.RequireFromString("32.50")},
		{Item: "CROCIN ADVANCE", Quantity: 1, MRP: decimal.RequireFromString("18.00")},
	}
	billID, err := s.InsertBillWithDetails(&model.Bill{
		BillNo:       "CS/2",
		CustomerID:   customerID,
		StoreID:      storeID,
		Date:         time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		NetAmount:    decimal.RequireFromString("83.00"),
		AmountPaid:   decimal.RequireFromString("83.00"),
		CreditAmount: decimal.Zero,
		PaymentType:  model.PaymentCash,
		IsUploaded:   true,
	}, details)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bill_details WHERE bill_id = ?`, billID).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("detail count: got=%d", n)
	}
}

func insertTestBill(t *testing.T, s *Store, billNo string) {
	t.Helper()
	customerID, err := s.UpsertCustomer("9861502588", "A K SEN")
	if err != nil {
		t.Fatalf("customer: %v", err)
	}
	storeID, err := s.UpsertStore(&model.Store{StoreName: "WEKEYAR PLUS"})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	_, err = s.InsertBillWithDetails(&model.Bill{
		BillNo:      billNo,
		CustomerID:  customerID,
		StoreID:     storeID,
		Date:        time.Now(),
		PaymentType: model.PaymentCash,
		IsUploaded:  true,
	}, nil)
	if err != nil {
		t.Fatalf("bill: %v", err)
	}
}
