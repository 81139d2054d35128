package handlers

import (
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return serverError(c, "category.list", err)
	}
	return render(c, "category_list", fiber.Map{"Categories": cats})
}

func (h *CategoryHandler) AddForm(c *fiber.Ctx) error {
	return h.form(c, fiber.StatusOK, "/categories/add", "Add Category", validate.CategoryForm{}, nil)
}

func (h *CategoryHandler) Add(c *fiber.Ctx) error {
	return h.save(c, 0, "/categories/add", "Add Category")
}

func (h *CategoryHandler) EditForm(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Category not found")
	}
	cat, err := h.Catalog.GetCategory(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Category not found")
	}
	if err != nil {
		return serverError(c, "category.get", err)
	}
	return h.form(c, fiber.StatusOK, c.Path(), "Edit Category", validate.CategoryFormFrom(cat), nil)
}

func (h *CategoryHandler) Edit(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Category not found")
	}
	if _, err := h.Catalog.GetCategory(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Category not found")
		}
		return serverError(c, "category.get", err)
	}
	return h.save(c, id, c.Path(), "Edit Category")
}

func (h *CategoryHandler) save(c *fiber.Ctx, id int64, action, title string) error {
	var f validate.CategoryForm
	if err := c.BodyParser(&f); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	errs := validate.Struct(&f)
	if !errs.Empty() {
		log.Security(c, "validation.fail", map[string]any{"form": "category", "fields": errs})
		return h.form(c, fiber.StatusBadRequest, action, title, f, errs)
	}
	cat := f.Category(id)
	err := h.Catalog.SaveCategory(&cat)
	if errors.Is(err, domain.ErrDuplicate) {
		errs.Add("name", "Category with this Name already exists.")
		return h.form(c, fiber.StatusBadRequest, action, title, f, errs)
	}
	if err != nil {
		return serverError(c, "category.save", err)
	}
	verb := "added"
	if id != 0 {
		verb = "updated"
	}
	log.Audit(c, "category."+verb, map[string]any{"category_id": cat.ID, "name": cat.Name})
	return redirectWithFlash(c, "/categories", "Category "+verb+" successfully!")
}

func (h *CategoryHandler) form(c *fiber.Ctx, status int, action, title string, f validate.CategoryForm, errs validate.Errors) error {
	if errs == nil {
		errs = validate.Errors{}
	}
	c.Status(status)
	return render(c, "category_form", fiber.Map{"Form": f, "Errors": errs, "Action": action, "Title": title})
}

func (h *CategoryHandler) DeleteConfirm(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Category not found")
	}
	cat, err := h.Catalog.GetCategory(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Category not found")
	}
	if err != nil {
		return serverError(c, "category.get", err)
	}
	return render(c, "confirm_delete", fiber.Map{
		"Kind":    "category",
		"Name":    cat.Name,
		"Warning": "All products in this category and their stock history will also be deleted.",
		"Action":  c.Path(),
		"Cancel":  "/categories",
	})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Category not found")
	}
	err := h.Catalog.DeleteCategory(id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Category not found")
	}
	if err != nil {
		return serverError(c, "category.delete", err)
	}
	log.Audit(c, "category.deleted", map[string]any{"category_id": id})
	return redirectWithFlash(c, "/categories", "Category deleted successfully!")
}
