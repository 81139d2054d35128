package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

type StockService struct {
	db *sqlx.DB
}

func NewStockService(db *sqlx.DB) *StockService { return &StockService{db: db} }

// RecordTransaction applies one stock movement. The product row is locked,
// the movement is checked against on-hand stock, then the ledger row and the
// new quantity are written together. On any error nothing is persisted.
func (s *StockService) RecordTransaction(productID int64, qty int, t domain.TxType, performedBy *int64) (domain.StockTransaction, error) {
	if qty <= 0 {
		return domain.StockTransaction{}, domain.ErrInvalidQuantity
	}
	if !t.Valid() {
		return domain.StockTransaction{}, domain.ErrInvalidTxType
	}

	rec := domain.StockTransaction{ProductID: productID, Quantity: qty, Type: t, PerformedBy: performedBy}
	err := repos.WithTx(s.db, func(tx *sqlx.Tx) error {
		p, err := repos.LockForUpdate(tx, productID)
		if err != nil {
			return err
		}
		if err := p.Apply(t, qty); err != nil {
			return err
		}
		if err := repos.InsertTransaction(tx, &rec); err != nil {
			return fmt.Errorf("insert stock transaction: %w", err)
		}
		if err := repos.SetQuantity(tx, p.ID, p.Quantity); err != nil {
			return fmt.Errorf("update product quantity: %w", err)
		}
		rec.ProductName = p.Name
		return nil
	})
	if err != nil {
		return domain.StockTransaction{}, err
	}
	return rec, nil
}
