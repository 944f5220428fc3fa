package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/model"
)

// UpsertStore 按 store_name 自然键新建或更新门店，返回主键
func (s *Store) UpsertStore(m *model.Store) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM stores WHERE store_name = ?`, m.StoreName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		res, err := s.db.Exec(`
			INSERT INTO stores (store_name, address, phone, email)
			VALUES (?, ?, ?, ?)
		`, m.StoreName, m.Address, m.Phone, m.Email)
		if err != nil {
			return 0, fmt.Errorf("failed to insert store: %w", err)
		}
		return res.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query store: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE stores SET address = ?, phone = ?, email = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, m.Address, m.Phone, m.Email, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update store: %w", err)
	}
	return id, nil
}

// UpsertCustomer 按 phone 自然键新建或更新客户，重复出现时姓名以最近一次为准
func (s *Store) UpsertCustomer(phone, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM customers WHERE phone = ?`, phone).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		res, err := s.db.Exec(`
			INSERT INTO customers (phone, name, address)
			VALUES (?, ?, NULL)
		`, phone, name)
		if err != nil {
			return 0, fmt.Errorf("failed to insert customer: %w", err)
		}
		return res.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query customer: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE customers SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, name, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update customer: %w", err)
	}
	return id, nil
}

// BillExists 按 bill_no 判断账单是否已入库
func (s *Store) BillExists(billNo string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM bills WHERE bill_no = ?`, billNo).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query bill: %w", err)
	}
	return true, nil
}

// InsertBillWithDetails 单事务写入账单及其全部明细
func (s *Store) InsertBillWithDetails(bill *model.Bill, details []*model.BillDetail) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO bills (
			bill_no, customer_id, store_id, date,
			net_amount, amount_paid, credit_amount, payment_type, is_uploaded
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		bill.BillNo, bill.CustomerID, bill.StoreID, bill.Date,
		bill.NetAmount.InexactFloat64(), bill.AmountPaid.InexactFloat64(),
		bill.CreditAmount.InexactFloat64(), string(bill.PaymentType), bill.IsUploaded,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert bill: %w", err)
	}

	billID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get bill id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bill_details (bill_id, item, quantity, batch, exp_batch, mrp, discount)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare detail statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range details {
		_, err := stmt.Exec(
			billID, d.Item, d.Quantity, d.Batch, d.ExpBatch,
			d.MRP.InexactFloat64(), d.Discount.InexactFloat64(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert bill detail: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return billID, nil
}

// BillCount 账单总数
func (s *Store) BillCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bills`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return n, nil
}

// BillDetailCount 明细总数
func (s *Store) BillDetailCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bill_details`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bill details: %w", err)
	}
	return n, nil
}

// CustomerCount 客户总数
func (s *Store) CustomerCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return n, nil
}

// GetCustomerByPhone 按电话取客户，测试与核对用
func (s *Store) GetCustomerByPhone(phone string) (*model.Customer, error) {
	c := &model.Customer{}
	err := s.db.QueryRow(`
		SELECT id, phone, name, address FROM customers WHERE phone = ?
	`, phone).Scan(&c.ID, &c.Phone, &c.Name, &c.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}
