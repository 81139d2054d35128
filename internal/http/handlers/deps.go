package handlers

import (
	"stockroom/internal/config"
	"stockroom/internal/repos"
	"stockroom/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth             *services.AuthService
	AuthHandler      *AuthHandler
	DashboardHandler *DashboardHandler
	CategoryHandler  *CategoryHandler
	SupplierHandler  *SupplierHandler
	ProductHandler   *ProductHandler
	StockHandler     *StockHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	supRepo := repos.NewSupplierRepo(db)
	prodRepo := repos.NewProductRepo(db)
	txRepo := repos.NewTransactionRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, supRepo, prodRepo, txRepo)
	reportSvc := services.NewReportService(catRepo, supRepo, prodRepo, txRepo)
	stockSvc := services.NewStockService(db)

	return &Deps{
		Auth:             auth,
		AuthHandler:      &AuthHandler{Auth: auth, CookieSecure: cfg.CookieSecure},
		DashboardHandler: &DashboardHandler{Reports: reportSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		SupplierHandler:  &SupplierHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		StockHandler:     &StockHandler{Stock: stockSvc, Catalog: catalogSvc, Reports: reportSvc},
	}
}
