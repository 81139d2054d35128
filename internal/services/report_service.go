package services

import (
	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

// RecentActivityLimit is how many transactions the dashboard shows.
const RecentActivityLimit = 5

type Dashboard struct {
	TotalProducts   int
	TotalCategories int
	TotalSuppliers  int
	LowStock        []domain.Product
	Recent          []domain.StockTransaction
}

type ReportService struct {
	Cats  *repos.CategoryRepo
	Sups  *repos.SupplierRepo
	Prods *repos.ProductRepo
	Txs   *repos.TransactionRepo
}

func NewReportService(cats *repos.CategoryRepo, sups *repos.SupplierRepo, prods *repos.ProductRepo, txs *repos.TransactionRepo) *ReportService {
	return &ReportService{Cats: cats, Sups: sups, Prods: prods, Txs: txs}
}

// Dashboard counts the catalog and lists low-stock products, judged against
// each product's own reorder level, plus the latest activity.
func (s *ReportService) Dashboard() (Dashboard, error) {
	var d Dashboard
	var err error
	if d.TotalProducts, err = s.Prods.Count(); err != nil {
		return d, err
	}
	if d.TotalCategories, err = s.Cats.Count(); err != nil {
		return d, err
	}
	if d.TotalSuppliers, err = s.Sups.Count(); err != nil {
		return d, err
	}
	if d.LowStock, err = s.Prods.LowStock(); err != nil {
		return d, err
	}
	if d.Recent, err = s.Txs.Recent(RecentActivityLimit); err != nil {
		return d, err
	}
	return d, nil
}

// History lists transactions newest first; productID 0 means every product.
func (s *ReportService) History(productID int64) ([]domain.StockTransaction, error) {
	return s.Txs.List(productID, 0)
}
