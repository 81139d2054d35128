package repos

import (
	"github.com/jmoiron/sqlx"

	applog "stockroom/internal/log"
)

// SeedDemo inserts a few categories, suppliers and products when the catalog is empty.
func SeedDemo(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Logger().Info().Msg("[seed] inserting demo categories/suppliers/products")

	return WithTx(db, func(tx *sqlx.Tx) error {
		ts := now()
		stmts := []struct {
			q    string
			args []any
		}{
			{`INSERT INTO categories(name, description) VALUES (?, ?), (?, ?), (?, ?)`,
				[]any{"Fasteners", "Screws, bolts and nuts", "Electrical", "Cables and connectors", "Safety", "Gloves, goggles, helmets"}},
			{`INSERT INTO suppliers(name, email, phone, address) VALUES (?, ?, ?, ?), (?, ?, ?, ?)`,
				[]any{"Acme Hardware", "orders@acme.test", "555-0100", "1 Industrial Way",
					"Volt Supply Co", "sales@volt.test", "555-0142", "88 Copper Road"}},
			{`INSERT INTO products(name, category_id, supplier_id, price, quantity, reorder_level, created_at) VALUES
			   (?, (SELECT id FROM categories WHERE name = 'Fasteners'),  (SELECT id FROM suppliers WHERE name = 'Acme Hardware'),  ?, ?, ?, ?),
			   (?, (SELECT id FROM categories WHERE name = 'Electrical'), (SELECT id FROM suppliers WHERE name = 'Volt Supply Co'), ?, ?, ?, ?),
			   (?, (SELECT id FROM categories WHERE name = 'Safety'),     (SELECT id FROM suppliers WHERE name = 'Acme Hardware'),  ?, ?, ?, ?)`,
				[]any{"M6 Hex Bolt (100 pack)", "12.50", 40, 10, ts,
					"2.5mm Twin & Earth Cable 50m", "64.99", 3, 5, ts,
					"Nitrile Gloves (box)", "8.75", 5, 5, ts}},
		}
		for _, s := range stmts {
			if _, err := tx.Exec(tx.Rebind(s.q), s.args...); err != nil {
				return err
			}
		}
		return nil
	})
}
