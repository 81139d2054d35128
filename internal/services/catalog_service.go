package services

import (
	"errors"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

var (
	ErrUnknownCategory = errors.New("category does not exist")
	ErrUnknownSupplier = errors.New("supplier does not exist")
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Sups  *repos.SupplierRepo
	Prods *repos.ProductRepo
	Txs   *repos.TransactionRepo
}

func NewCatalogService(cats *repos.CategoryRepo, sups *repos.SupplierRepo, prods *repos.ProductRepo, txs *repos.TransactionRepo) *CatalogService {
	return &CatalogService{Cats: cats, Sups: sups, Prods: prods, Txs: txs}
}

// ---------- Categories ----------

func (s *CatalogService) ListCategories() ([]domain.Category, error) { return s.Cats.List() }

func (s *CatalogService) GetCategory(id int64) (domain.Category, error) { return s.Cats.Get(id) }

// SaveCategory creates (ID 0) or updates a category. Names are unique.
func (s *CatalogService) SaveCategory(c *domain.Category) error {
	taken, err := s.Cats.NameTaken(c.Name, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("category %q: %w", c.Name, domain.ErrDuplicate)
	}
	if c.ID == 0 {
		return s.Cats.Create(c)
	}
	return s.Cats.Update(*c)
}

func (s *CatalogService) DeleteCategory(id int64) error { return s.Cats.Delete(id) }

// ---------- Suppliers ----------

func (s *CatalogService) ListSuppliers() ([]domain.Supplier, error) { return s.Sups.List() }

func (s *CatalogService) GetSupplier(id int64) (domain.Supplier, error) { return s.Sups.Get(id) }

func (s *CatalogService) SaveSupplier(sup *domain.Supplier) error {
	if sup.ID == 0 {
		return s.Sups.Create(sup)
	}
	return s.Sups.Update(*sup)
}

func (s *CatalogService) DeleteSupplier(id int64) error { return s.Sups.Delete(id) }

// ---------- Products ----------

func (s *CatalogService) ListProducts(f repos.ProductFilter) ([]domain.Product, error) {
	return s.Prods.List(f)
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) { return s.Prods.Get(id) }

// ProductDetail returns the product with its full history, newest first.
func (s *CatalogService) ProductDetail(id int64) (domain.Product, []domain.StockTransaction, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return p, nil, err
	}
	txs, err := s.Txs.List(id, 0)
	if err != nil {
		return p, nil, err
	}
	return p, txs, nil
}

// SaveProduct creates (ID 0) or updates a product after checking that its
// category and supplier exist.
func (s *CatalogService) SaveProduct(p *domain.Product) error {
	if _, err := s.Cats.Get(p.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUnknownCategory
		}
		return err
	}
	if _, err := s.Sups.Get(p.SupplierID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUnknownSupplier
		}
		return err
	}
	if p.ID == 0 {
		return s.Prods.Create(p)
	}
	return s.Prods.Update(*p)
}

func (s *CatalogService) DeleteProduct(id int64) error { return s.Prods.Delete(id) }
