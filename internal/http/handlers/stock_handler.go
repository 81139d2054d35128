package handlers

import (
	"errors"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
	"stockroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	Stock   *services.StockService
	Catalog *services.CatalogService
	Reports *services.ReportService
}

// Form renders the stock movement form; ?product=<id> preselects a product.
func (h *StockHandler) Form(c *fiber.Ctx) error {
	f := validate.StockForm{Type: string(domain.TxIn)}
	if _, ok := validate.ID(c.Query("product")); ok {
		f.ProductID = c.Query("product")
	}
	return h.form(c, fiber.StatusOK, f, nil, "")
}

func (h *StockHandler) Record(c *fiber.Ctx) error {
	var f validate.StockForm
	if err := c.BodyParser(&f); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	errs := validate.Struct(&f)
	if !errs.Empty() {
		log.Security(c, "validation.fail", map[string]any{"form": "stock", "fields": errs})
		return h.form(c, fiber.StatusBadRequest, f, errs, "")
	}

	productID, qty, typ := f.Values()
	var performer *int64
	if u := currentUser(c); u != nil {
		performer = &u.ID
	}
	st, err := h.Stock.RecordTransaction(productID, qty, typ, performer)
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		log.Security(c, "stock.out.rejected", map[string]any{"product_id": productID, "quantity": qty})
		msg := "Insufficient stock for this transaction."
		if p, gerr := h.Catalog.GetProduct(productID); gerr == nil {
			msg = fmt.Sprintf("Insufficient stock: only %d of %s available.", p.Quantity, p.Name)
		}
		return h.form(c, fiber.StatusConflict, f, errs, msg)
	case errors.Is(err, domain.ErrNotFound):
		errs.Add("product", "Select a valid choice.")
		return h.form(c, fiber.StatusBadRequest, f, errs, "")
	case errors.Is(err, domain.ErrInvalidQuantity):
		errs.Add("quantity", "Enter a whole number greater than zero.")
		return h.form(c, fiber.StatusBadRequest, f, errs, "")
	case errors.Is(err, domain.ErrInvalidTxType):
		errs.Add("transaction_type", "Select a valid choice.")
		return h.form(c, fiber.StatusBadRequest, f, errs, "")
	case err != nil:
		return serverError(c, "stock.record", err)
	}

	log.Audit(c, "stock.recorded", map[string]any{
		"transaction_id": st.ID, "product_id": productID, "type": string(typ), "quantity": qty,
	})
	return redirectWithFlash(c, "/", fmt.Sprintf("%s of %d units recorded.", typ.Label(), qty))
}

func (h *StockHandler) form(c *fiber.Ctx, status int, f validate.StockForm, errs validate.Errors, errMsg string) error {
	if errs == nil {
		errs = validate.Errors{}
	}
	products, err := h.Catalog.ListProducts(repos.ProductFilter{})
	if err != nil {
		return serverError(c, "product.list", err)
	}
	c.Status(status)
	return render(c, "stock_form", fiber.Map{
		"Form":     f,
		"Errors":   errs,
		"Err":      errMsg,
		"Products": products,
		"Types":    []domain.TxType{domain.TxIn, domain.TxOut},
	})
}

// History lists every transaction, newest first; ?product=<id> narrows it.
func (h *StockHandler) History(c *fiber.Ctx) error {
	var productID int64
	if raw := c.Query("product"); raw != "" {
		id, ok := validate.ID(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "product"})
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Invalid product filter"})
		}
		productID = id
	}
	txs, err := h.Reports.History(productID)
	if err != nil {
		return serverError(c, "transaction.list", err)
	}
	products, err := h.Catalog.ListProducts(repos.ProductFilter{})
	if err != nil {
		return serverError(c, "product.list", err)
	}
	return render(c, "transaction_list", fiber.Map{
		"Transactions": txs,
		"Products":     products,
		"ProductID":    productID,
	})
}

type DashboardHandler struct {
	Reports *services.ReportService
}

func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	d, err := h.Reports.Dashboard()
	if err != nil {
		return serverError(c, "dashboard", err)
	}
	return render(c, "dashboard", fiber.Map{"D": d})
}
