package domain

import (
	"fmt"
	"math"
)

// Apply moves the product's on-hand quantity by one stock transaction.
// It is the only place the IN/OUT adjustment is computed. On error the
// product is left untouched.
func (p *Product) Apply(t TxType, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	switch t {
	case TxIn:
		if qty > math.MaxInt-p.Quantity {
			return fmt.Errorf("%w: %s would exceed the maximum stock level", ErrInvalidQuantity, p.Name)
		}
		p.Quantity += qty
	case TxOut:
		if p.Quantity < qty {
			return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, p.Name, p.Quantity, qty)
		}
		p.Quantity -= qty
	default:
		return ErrInvalidTxType
	}
	return nil
}
