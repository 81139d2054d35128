package handlers

import (
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
	"stockroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List shows all products, optionally narrowed by ?q= (product or category
// name, case-insensitive) and ?category=<id>.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := repos.ProductFilter{Q: validate.Q(c.Query("q"))}
	if raw := c.Query("category"); raw != "" {
		id, ok := validate.ID(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Invalid category filter"})
		}
		f.CategoryID = id
	}
	products, err := h.Catalog.ListProducts(f)
	if err != nil {
		return serverError(c, "product.list", err)
	}
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return serverError(c, "category.list", err)
	}
	return render(c, "product_list", fiber.Map{
		"Products":   products,
		"Categories": cats,
		"Q":          f.Q,
		"CategoryID": f.CategoryID,
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product not found")
	}
	p, txs, err := h.Catalog.ProductDetail(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Product not found")
	}
	if err != nil {
		return serverError(c, "product.detail", err)
	}
	return render(c, "product_detail", fiber.Map{"P": p, "Transactions": txs})
}

func (h *ProductHandler) AddForm(c *fiber.Ctx) error {
	f := validate.ProductForm{Quantity: "0", ReorderLevel: "5"}
	return h.form(c, fiber.StatusOK, "/products/add", "Add Product", f, nil, true)
}

func (h *ProductHandler) Add(c *fiber.Ctx) error {
	return h.save(c, 0, "/products/add", "Add Product")
}

func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Product not found")
	}
	if err != nil {
		return serverError(c, "product.get", err)
	}
	return h.form(c, fiber.StatusOK, c.Path(), "Edit Product", validate.ProductFormFrom(p), nil, false)
}

func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product not found")
	}
	if _, err := h.Catalog.GetProduct(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "product.get", err)
	}
	return h.save(c, id, c.Path(), "Edit Product")
}

// save creates (id 0) or updates a product. Quantity is only read on create;
// afterwards stock moves through transactions alone.
func (h *ProductHandler) save(c *fiber.Ctx, id int64, action, title string) error {
	creating := id == 0
	var f validate.ProductForm
	if err := c.BodyParser(&f); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if !creating {
		f.Quantity = ""
	}
	errs := validate.Struct(&f)
	if !errs.Empty() {
		log.Security(c, "validation.fail", map[string]any{"form": "product", "fields": errs})
		return h.form(c, fiber.StatusBadRequest, action, title, f, errs, creating)
	}
	p := f.Product(id)
	err := h.Catalog.SaveProduct(&p)
	switch {
	case errors.Is(err, services.ErrUnknownCategory):
		errs.Add("category", "Select a valid choice.")
	case errors.Is(err, services.ErrUnknownSupplier):
		errs.Add("supplier", "Select a valid choice.")
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, "Product not found")
	case err != nil:
		return serverError(c, "product.save", err)
	}
	if !errs.Empty() {
		return h.form(c, fiber.StatusBadRequest, action, title, f, errs, creating)
	}
	verb := "added"
	if !creating {
		verb = "updated"
	}
	log.Audit(c, "product."+verb, map[string]any{"product_id": p.ID, "name": p.Name})
	return redirectWithFlash(c, "/products", "Product "+verb+" successfully!")
}

func (h *ProductHandler) form(c *fiber.Ctx, status int, action, title string, f validate.ProductForm, errs validate.Errors, creating bool) error {
	if errs == nil {
		errs = validate.Errors{}
	}
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return serverError(c, "category.list", err)
	}
	sups, err := h.Catalog.ListSuppliers()
	if err != nil {
		return serverError(c, "supplier.list", err)
	}
	c.Status(status)
	return render(c, "product_form", fiber.Map{
		"Form":       f,
		"Errors":     errs,
		"Action":     action,
		"Title":      title,
		"Creating":   creating,
		"Categories": cats,
		"Suppliers":  sups,
	})
}

func (h *ProductHandler) DeleteConfirm(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Product not found")
	}
	if err != nil {
		return serverError(c, "product.get", err)
	}
	return render(c, "confirm_delete", fiber.Map{
		"Kind":    "product",
		"Name":    p.Name,
		"Warning": "Its stock transaction history will also be deleted.",
		"Action":  c.Path(),
		"Cancel":  "/products",
	})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product not found")
	}
	err := h.Catalog.DeleteProduct(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Product not found")
	}
	if err != nil {
		return serverError(c, "product.delete", err)
	}
	log.Audit(c, "product.deleted", map[string]any{"product_id": id})
	return redirectWithFlash(c, "/products", "Product deleted successfully!")
}
