package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns every category annotated with its product count.
func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
  SELECT c.id, c.name, c.description, COUNT(p.id) AS product_count
  FROM categories c
  LEFT JOIN products p ON p.category_id = c.id
  GROUP BY c.id, c.name, c.description
  ORDER BY c.name
`)
	return out, err
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, r.db.Rebind(`SELECT id, name, description FROM categories WHERE id = ?`), id)
	if notFound(err) {
		return c, domain.ErrNotFound
	}
	return c, err
}

// NameTaken reports whether another category already uses name.
func (r *CategoryRepo) NameTaken(name string, exceptID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind(`SELECT COUNT(*) FROM categories WHERE name = ? AND id <> ?`), name, exceptID)
	return n > 0, err
}

func (r *CategoryRepo) Create(c *domain.Category) error {
	err := r.db.Get(&c.ID, r.db.Rebind(`INSERT INTO categories(name, description) VALUES(?, ?) RETURNING id`),
		c.Name, c.Description)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE categories SET name = ?, description = ? WHERE id = ?`),
		c.Name, c.Description, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the category; its products and their transactions cascade.
func (r *CategoryRepo) Delete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories`)
	return n, err
}
