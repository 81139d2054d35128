package validate

import (
	"stockroom/internal/domain"
)

type CategoryForm struct {
	Name        string `form:"name" validate:"required,max=200"`
	Description string `form:"description"`
}

func (f CategoryForm) Category(id int64) domain.Category {
	return domain.Category{ID: id, Name: f.Name, Description: f.Description}
}

func CategoryFormFrom(c domain.Category) CategoryForm {
	return CategoryForm{Name: c.Name, Description: c.Description}
}

type SupplierForm struct {
	Name    string `form:"name" validate:"required,max=200"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"required,max=20"`
	Address string `form:"address" validate:"required"`
}

func (f SupplierForm) Supplier(id int64) domain.Supplier {
	return domain.Supplier{ID: id, Name: f.Name, Email: f.Email, Phone: f.Phone, Address: f.Address}
}

func SupplierFormFrom(s domain.Supplier) SupplierForm {
	return SupplierForm{Name: s.Name, Email: s.Email, Phone: s.Phone, Address: s.Address}
}

// ProductForm keeps raw strings so that malformed numbers become field errors
// instead of bind failures.
type ProductForm struct {
	Name         string `form:"name" validate:"required,max=200"`
	CategoryID   string `form:"category" validate:"required,ref_id"`
	SupplierID   string `form:"supplier" validate:"required,ref_id"`
	Price        string `form:"price" validate:"required,price"`
	Quantity     string `form:"quantity" validate:"omitempty,integer"`
	ReorderLevel string `form:"reorder_level" validate:"omitempty,integer"`
}

// Product converts a validated form.
func (f ProductForm) Product(id int64) domain.Product {
	catID, _ := ID(f.CategoryID)
	supID, _ := ID(f.SupplierID)
	price, _ := Price(f.Price)
	return domain.Product{
		ID:           id,
		Name:         f.Name,
		CategoryID:   catID,
		SupplierID:   supID,
		Price:        price,
		Quantity:     Int(f.Quantity, 0),
		ReorderLevel: Int(f.ReorderLevel, domain.DefaultReorderLevel),
	}
}

func ProductFormFrom(p domain.Product) ProductForm {
	return ProductForm{
		Name:         p.Name,
		CategoryID:   itoa(p.CategoryID),
		SupplierID:   itoa(p.SupplierID),
		Price:        p.Price.StringFixed(2),
		Quantity:     itoa(int64(p.Quantity)),
		ReorderLevel: itoa(int64(p.ReorderLevel)),
	}
}

type StockForm struct {
	ProductID string `form:"product" validate:"required,ref_id"`
	Quantity  string `form:"quantity" validate:"required,positive_int"`
	Type      string `form:"transaction_type" validate:"required,oneof=IN OUT"`
}

func (f StockForm) Values() (productID int64, qty int, t domain.TxType) {
	productID, _ = ID(f.ProductID)
	return productID, Int(f.Quantity, 0), domain.TxType(f.Type)
}

type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
}

type RegisterForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"required,max=72"`
}
