package handlers

import (
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	Catalog *services.CatalogService
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	sups, err := h.Catalog.ListSuppliers()
	if err != nil {
		return serverError(c, "supplier.list", err)
	}
	return render(c, "supplier_list", fiber.Map{"Suppliers": sups})
}

func (h *SupplierHandler) AddForm(c *fiber.Ctx) error {
	return h.form(c, fiber.StatusOK, "/suppliers/add", "Add Supplier", validate.SupplierForm{}, nil)
}

func (h *SupplierHandler) Add(c *fiber.Ctx) error {
	return h.save(c, 0, "/suppliers/add", "Add Supplier")
}

func (h *SupplierHandler) EditForm(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Supplier not found")
	}
	sup, err := h.Catalog.GetSupplier(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Supplier not found")
	}
	if err != nil {
		return serverError(c, "supplier.get", err)
	}
	return h.form(c, fiber.StatusOK, c.Path(), "Edit Supplier", validate.SupplierFormFrom(sup), nil)
}

func (h *SupplierHandler) Edit(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Supplier not found")
	}
	if _, err := h.Catalog.GetSupplier(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Supplier not found")
		}
		return serverError(c, "supplier.get", err)
	}
	return h.save(c, id, c.Path(), "Edit Supplier")
}

func (h *SupplierHandler) save(c *fiber.Ctx, id int64, action, title string) error {
	var f validate.SupplierForm
	if err := c.BodyParser(&f); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	errs := validate.Struct(&f)
	if !errs.Empty() {
		log.Security(c, "validation.fail", map[string]any{"form": "supplier", "fields": errs})
		return h.form(c, fiber.StatusBadRequest, action, title, f, errs)
	}
	sup := f.Supplier(id)
	if err := h.Catalog.SaveSupplier(&sup); err != nil {
		return serverError(c, "supplier.save", err)
	}
	verb := "added"
	if id != 0 {
		verb = "updated"
	}
	log.Audit(c, "supplier."+verb, map[string]any{"supplier_id": sup.ID, "name": sup.Name})
	return redirectWithFlash(c, "/suppliers", "Supplier "+verb+" successfully!")
}

func (h *SupplierHandler) form(c *fiber.Ctx, status int, action, title string, f validate.SupplierForm, errs validate.Errors) error {
	if errs == nil {
		errs = validate.Errors{}
	}
	c.Status(status)
	return render(c, "supplier_form", fiber.Map{"Form": f, "Errors": errs, "Action": action, "Title": title})
}

func (h *SupplierHandler) DeleteConfirm(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Supplier not found")
	}
	sup, err := h.Catalog.GetSupplier(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Supplier not found")
	}
	if err != nil {
		return serverError(c, "supplier.get", err)
	}
	return render(c, "confirm_delete", fiber.Map{
		"Kind":    "supplier",
		"Name":    sup.Name,
		"Warning": "All products from this supplier and their stock history will also be deleted.",
		"Action":  c.Path(),
		"Cancel":  "/suppliers",
	})
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Supplier not found")
	}
	err := h.Catalog.DeleteSupplier(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Supplier not found")
	}
	if err != nil {
		return serverError(c, "supplier.delete", err)
	}
	log.Audit(c, "supplier.deleted", map[string]any{"supplier_id": id})
	return redirectWithFlash(c, "/suppliers", "Supplier deleted successfully!")
}
