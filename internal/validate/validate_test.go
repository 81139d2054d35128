package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/validate"
)

func TestPrice(t *testing.T) {
	ok := map[string]string{
		"0":        "0.00",
		"12":       "12.00",
		"12.5":     "12.50",
		" 9.99 ":   "9.99",
		"99999999": "99999999.00",
	}
	for in, want := range ok {
		d, err := validate.Price(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d.StringFixed(2), in)
	}
	for _, in := range []string{"", "abc", "-1", "1.999", "1.500", "100000000"} {
		_, err := validate.Price(in)
		assert.Error(t, err, in)
	}
}

func TestProductFormFieldErrors(t *testing.T) {
	f := validate.ProductForm{
		Name:         "  ",
		CategoryID:   "x",
		SupplierID:   "2",
		Price:        "ten",
		Quantity:     "1.5",
		ReorderLevel: "",
	}
	errs := validate.Struct(&f)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "quantity")
	assert.NotContains(t, errs, "supplier")
	assert.NotContains(t, errs, "reorder_level")
	assert.Equal(t, "This field is required.", errs["name"])
}

func TestProductFormDefaults(t *testing.T) {
	f := validate.ProductForm{Name: " Bolt ", CategoryID: "1", SupplierID: "2", Price: "3.10"}
	require.True(t, validate.Struct(&f).Empty())
	p := f.Product(0)
	assert.Equal(t, "Bolt", p.Name)
	assert.Equal(t, int64(1), p.CategoryID)
	assert.Equal(t, int64(2), p.SupplierID)
	assert.Equal(t, "3.10", p.Price.StringFixed(2))
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, domain.DefaultReorderLevel, p.ReorderLevel)
}

func TestStockForm(t *testing.T) {
	bad := validate.StockForm{ProductID: "1", Quantity: "0", Type: "SIDEWAYS"}
	errs := validate.Struct(&bad)
	assert.Contains(t, errs, "quantity")
	assert.Contains(t, errs, "transaction_type")

	good := validate.StockForm{ProductID: "4", Quantity: "5", Type: "OUT"}
	require.True(t, validate.Struct(&good).Empty())
	id, qty, typ := good.Values()
	assert.Equal(t, int64(4), id)
	assert.Equal(t, 5, qty)
	assert.Equal(t, domain.TxOut, typ)
}

func TestSupplierEmail(t *testing.T) {
	f := validate.SupplierForm{Name: "Acme", Email: "not-an-email", Phone: "1", Address: "x"}
	errs := validate.Struct(&f)
	assert.Equal(t, "Enter a valid email address.", errs["email"])
}

func TestPasswordIsNotTrimmed(t *testing.T) {
	f := validate.RegisterForm{Username: " sam ", Email: "sam@example.com", Password: " secret "}
	require.True(t, validate.Struct(&f).Empty())
	assert.Equal(t, "sam", f.Username)
	assert.Equal(t, " secret ", f.Password)
}
