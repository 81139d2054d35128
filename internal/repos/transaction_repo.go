package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

// TransactionRepo reads the stock ledger. Writes happen only through
// InsertTransaction inside a stock-recording transaction.
type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const txSelect = `
  SELECT t.id, t.product_id, t.quantity, t.transaction_type, t.date, t.performed_by,
         p.name AS product_name, COALESCE(u.username, '') AS username
  FROM stock_transactions t
  JOIN products p ON p.id = t.product_id
  LEFT JOIN users u ON u.id = t.performed_by`

const txNewestFirst = `
  ORDER BY t.date DESC, t.id DESC`

// List returns transactions newest first. productID 0 means all products;
// limit <= 0 means no limit.
func (r *TransactionRepo) List(productID int64, limit int) ([]domain.StockTransaction, error) {
	q := txSelect
	args := []any{}
	if productID != 0 {
		q += ` WHERE t.product_id = ?`
		args = append(args, productID)
	}
	q += txNewestFirst
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	out := []domain.StockTransaction{}
	err := r.db.Select(&out, r.db.Rebind(q), args...)
	return out, err
}

// Recent returns the latest n transactions across all products.
func (r *TransactionRepo) Recent(n int) ([]domain.StockTransaction, error) {
	return r.List(0, n)
}

// InsertTransaction appends a ledger row inside tx and fills t.ID and t.Date.
func InsertTransaction(tx *sqlx.Tx, t *domain.StockTransaction) error {
	t.Date = now()
	return tx.Get(&t.ID, tx.Rebind(`
		INSERT INTO stock_transactions(product_id, quantity, transaction_type, date, performed_by)
		VALUES(?, ?, ?, ?, ?) RETURNING id`),
		t.ProductID, t.Quantity, string(t.Type), t.Date, t.PerformedBy)
}
