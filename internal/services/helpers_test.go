package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

type env struct {
	db      *sqlx.DB
	auth    *services.AuthService
	catalog *services.CatalogService
	stock   *services.StockService
	report  *services.ReportService
	users   *repos.UserRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvOn(t, repos.DriverSQLite, ":memory:")
}

func newEnvOn(t *testing.T, driver, dsn string) *env {
	t.Helper()
	db, err := repos.OpenDB(driver, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cats := repos.NewCategoryRepo(db)
	sups := repos.NewSupplierRepo(db)
	prods := repos.NewProductRepo(db)
	txs := repos.NewTransactionRepo(db)
	users := repos.NewUserRepo(db)
	return &env{
		db:      db,
		auth:    &services.AuthService{Users: users, Cost: bcrypt.MinCost},
		catalog: services.NewCatalogService(cats, sups, prods, txs),
		stock:   services.NewStockService(db),
		report:  services.NewReportService(cats, sups, prods, txs),
		users:   users,
	}
}

// product creates a category, supplier and product with the given stock.
func (e *env) product(t *testing.T, name string, qty, reorder int) domain.Product {
	t.Helper()
	cat := domain.Category{Name: "cat-" + name}
	require.NoError(t, e.catalog.SaveCategory(&cat))
	sup := domain.Supplier{Name: "sup-" + name, Email: "s@example.com", Phone: "1", Address: "x"}
	require.NoError(t, e.catalog.SaveSupplier(&sup))
	p := domain.Product{
		Name: name, CategoryID: cat.ID, SupplierID: sup.ID,
		Price: decimal.RequireFromString("9.99"), Quantity: qty, ReorderLevel: reorder,
	}
	require.NoError(t, e.catalog.SaveProduct(&p))
	return p
}

func (e *env) quantity(t *testing.T, id int64) int {
	t.Helper()
	p, err := e.catalog.GetProduct(id)
	require.NoError(t, err)
	return p.Quantity
}

func (e *env) txCount(t *testing.T, productID int64) int {
	t.Helper()
	h, err := e.report.History(productID)
	require.NoError(t, err)
	return len(h)
}
