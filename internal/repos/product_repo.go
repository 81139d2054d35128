package repos

import (
	"strings"

	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductFilter narrows List. Zero values mean "no filter".
type ProductFilter struct {
	Q          string // substring of product or category name, case-insensitive
	CategoryID int64
}

const productSelect = `
  SELECT
    p.id, p.name, p.category_id, p.supplier_id, p.price, p.quantity, p.reorder_level, p.created_at,
    c.name AS category_name, s.name AS supplier_name
  FROM products p
  JOIN categories c ON c.id = p.category_id
  JOIN suppliers s ON s.id = p.supplier_id`

// likeEscaper makes wildcard characters in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *ProductRepo) List(f ProductFilter) ([]domain.Product, error) {
	where := []string{}
	args := []any{}
	if q := strings.TrimSpace(f.Q); q != "" {
		where = append(where, `(LOWER(p.name) LIKE ? ESCAPE '\' OR LOWER(c.name) LIKE ? ESCAPE '\')`)
		like := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		args = append(args, like, like)
	}
	if f.CategoryID != 0 {
		where = append(where, `p.category_id = ?`)
		args = append(args, f.CategoryID)
	}
	query := productSelect
	if len(where) > 0 {
		query += "\n  WHERE " + strings.Join(where, " AND ")
	}
	query += "\n  ORDER BY p.name, p.id"

	out := []domain.Product{}
	err := r.db.Select(&out, r.db.Rebind(query), args...)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, r.db.Rebind(productSelect+` WHERE p.id = ?`), id)
	if notFound(err) {
		return p, domain.ErrNotFound
	}
	return p, err
}

// LowStock returns products at or below their own reorder level.
func (r *ProductRepo) LowStock() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, productSelect+`
  WHERE p.quantity <= p.reorder_level
  ORDER BY p.quantity, p.name`)
	return out, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	p.CreatedAt = now()
	return r.db.Get(&p.ID, r.db.Rebind(`
		INSERT INTO products(name, category_id, supplier_id, price, quantity, reorder_level, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		p.Name, p.CategoryID, p.SupplierID, p.Price, p.Quantity, p.ReorderLevel, p.CreatedAt)
}

// Update saves the editable fields. Quantity only moves through stock
// transactions and created_at is immutable, so neither is written here.
func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(r.db.Rebind(`
		UPDATE products SET name = ?, category_id = ?, supplier_id = ?, price = ?, reorder_level = ?
		WHERE id = ?`),
		p.Name, p.CategoryID, p.SupplierID, p.Price, p.ReorderLevel, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the product and, by cascade, its stock transactions.
func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// LockForUpdate loads a product inside tx and holds its row until the
// transaction ends (FOR UPDATE on PostgreSQL; SQLite already serializes
// writers on its single connection).
func LockForUpdate(tx *sqlx.Tx, id int64) (domain.Product, error) {
	q := `SELECT id, name, category_id, supplier_id, price, quantity, reorder_level, created_at
	      FROM products WHERE id = ?`
	if tx.DriverName() == DriverPostgres {
		q += ` FOR UPDATE`
	}
	var p domain.Product
	err := tx.Get(&p, tx.Rebind(q), id)
	if notFound(err) {
		return p, domain.ErrNotFound
	}
	return p, err
}

func SetQuantity(tx *sqlx.Tx, id int64, qty int) error {
	_, err := tx.Exec(tx.Rebind(`UPDATE products SET quantity = ? WHERE id = ?`), qty, id)
	return err
}
