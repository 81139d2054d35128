package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SupplierRepo struct{ db *sqlx.DB }

func NewSupplierRepo(db *sqlx.DB) *SupplierRepo { return &SupplierRepo{db: db} }

func (r *SupplierRepo) List() ([]domain.Supplier, error) {
	out := []domain.Supplier{}
	err := r.db.Select(&out, `
  SELECT s.id, s.name, s.email, s.phone, s.address, COUNT(p.id) AS product_count
  FROM suppliers s
  LEFT JOIN products p ON p.supplier_id = s.id
  GROUP BY s.id, s.name, s.email, s.phone, s.address
  ORDER BY s.name
`)
	return out, err
}

func (r *SupplierRepo) Get(id int64) (domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.Get(&s, r.db.Rebind(`SELECT id, name, email, phone, address FROM suppliers WHERE id = ?`), id)
	if notFound(err) {
		return s, domain.ErrNotFound
	}
	return s, err
}

func (r *SupplierRepo) Create(s *domain.Supplier) error {
	return r.db.Get(&s.ID, r.db.Rebind(`
		INSERT INTO suppliers(name, email, phone, address) VALUES(?, ?, ?, ?) RETURNING id`),
		s.Name, s.Email, s.Phone, s.Address)
}

func (r *SupplierRepo) Update(s domain.Supplier) error {
	res, err := r.db.Exec(r.db.Rebind(`
		UPDATE suppliers SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?`),
		s.Name, s.Email, s.Phone, s.Address, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the supplier; its products and their transactions cascade.
func (r *SupplierRepo) Delete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM suppliers WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM suppliers`)
	return n, err
}
