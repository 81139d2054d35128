package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	ProductCount int    `db:"product_count"`
}

type Supplier struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	Address      string `db:"address"`
	ProductCount int    `db:"product_count"`
}

// DefaultReorderLevel is used when a product form leaves reorder_level blank.
const DefaultReorderLevel = 5

type Product struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	CategoryID   int64           `db:"category_id"`
	SupplierID   int64           `db:"supplier_id"`
	Price        decimal.Decimal `db:"price"`
	Quantity     int             `db:"quantity"`
	ReorderLevel int             `db:"reorder_level"`
	CreatedAt    string          `db:"created_at"`

	// joined for list/detail pages
	CategoryName string `db:"category_name"`
	SupplierName string `db:"supplier_name"`
}

// IsLowStock reports whether on-hand quantity is at or below the product's reorder level.
func (p Product) IsLowStock() bool { return p.Quantity <= p.ReorderLevel }

type TxType string

const (
	TxIn  TxType = "IN"
	TxOut TxType = "OUT"
)

func (t TxType) Valid() bool { return t == TxIn || t == TxOut }

// Label is the human name shown in forms and history tables.
func (t TxType) Label() string {
	switch t {
	case TxIn:
		return "Stock In"
	case TxOut:
		return "Stock Out"
	}
	return string(t)
}

type StockTransaction struct {
	ID          int64  `db:"id"`
	ProductID   int64  `db:"product_id"`
	Quantity    int    `db:"quantity"`
	Type        TxType `db:"transaction_type"`
	Date        string `db:"date"`
	PerformedBy *int64 `db:"performed_by"`

	ProductName string `db:"product_name"`
	Username    string `db:"username"`
}
