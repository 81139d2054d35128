package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"stockroom/internal/config"
	applog "stockroom/internal/log"
)

// NewApp builds the fiber app with middleware and every route wired to deps.
func NewApp(cfg config.Config, deps *Deps) *fiber.App {
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(cfg.Env == "development")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: cfg.Env == "test",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Something went wrong. Please try again."
			if fe, ok := err.(*fiber.Error); ok && fe.Code < 500 {
				code, msg = fe.Code, fe.Message
			} else {
				applog.Error(c, "server.error", err, nil)
			}
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
				return c.Status(code).SendString(msg)
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Env != "test" {
		// access log goes through the same sink as audit events
		app.Use(logger.New(logger.Config{Output: applog.Logger()}))
	}
	app.Use(helmet.New())
	app.Use(AttachUser(deps.Auth))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Too many requests. Please slow down."})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		Expiration:     time.Hour,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))

	app.Static("/static", cfg.StaticDir)
	Register(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}

// Register mounts the public auth routes and the login-protected pages,
// logout included.
func Register(app *fiber.App, d *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", d.AuthHandler.Login)
	app.Get("/register", d.AuthHandler.RegisterForm)
	app.Post("/register", d.AuthHandler.Register)

	g := app.Group("/", RequireUser(d.Auth))
	g.Get("/logout", d.AuthHandler.Logout)
	g.Post("/logout", d.AuthHandler.Logout)
	g.Get("/", d.DashboardHandler.Show)

	g.Get("/products", d.ProductHandler.List)
	g.Get("/products/add", d.ProductHandler.AddForm)
	g.Post("/products/add", d.ProductHandler.Add)
	g.Get("/products/:id<int>", d.ProductHandler.Detail)
	g.Get("/products/:id<int>/edit", d.ProductHandler.EditForm)
	g.Post("/products/:id<int>/edit", d.ProductHandler.Edit)
	g.Get("/products/:id<int>/delete", d.ProductHandler.DeleteConfirm)
	g.Post("/products/:id<int>/delete", d.ProductHandler.Delete)

	g.Get("/categories", d.CategoryHandler.List)
	g.Get("/categories/add", d.CategoryHandler.AddForm)
	g.Post("/categories/add", d.CategoryHandler.Add)
	g.Get("/categories/:id<int>/edit", d.CategoryHandler.EditForm)
	g.Post("/categories/:id<int>/edit", d.CategoryHandler.Edit)
	g.Get("/categories/:id<int>/delete", d.CategoryHandler.DeleteConfirm)
	g.Post("/categories/:id<int>/delete", d.CategoryHandler.Delete)

	g.Get("/suppliers", d.SupplierHandler.List)
	g.Get("/suppliers/add", d.SupplierHandler.AddForm)
	g.Post("/suppliers/add", d.SupplierHandler.Add)
	g.Get("/suppliers/:id<int>/edit", d.SupplierHandler.EditForm)
	g.Post("/suppliers/:id<int>/edit", d.SupplierHandler.Edit)
	g.Get("/suppliers/:id<int>/delete", d.SupplierHandler.DeleteConfirm)
	g.Post("/suppliers/:id<int>/delete", d.SupplierHandler.Delete)

	g.Get("/stock", d.StockHandler.Form)
	g.Post("/stock", d.StockHandler.Record)
	g.Get("/transactions", d.StockHandler.History)
}
