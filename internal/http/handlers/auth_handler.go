package handlers

import (
	"errors"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookie = "sid"

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

// setSID hands the browser a freshly bound session id. Only called once a
// login or registration succeeded; a failed attempt leaves the cookie alone.
func (h *AuthHandler) setSID(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect("/")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var f validate.LoginForm
	if err := c.BodyParser(&f); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	fail := func(reason string) error {
		log.Security(c, "auth.login.fail", map[string]any{"username": f.Username, "reason": reason})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Err":       "Invalid username or password",
			"Username":  f.Username,
			"CSRFToken": c.Cookies("csrf_"),
		})
	}
	if errs := validate.Struct(&f); !errs.Empty() {
		return fail("bad_format")
	}

	sid := uuid.NewString()
	u, err := h.Auth.Login(sid, f.Username, f.Password)
	if errors.Is(err, services.ErrBadCreds) {
		return fail("bad_credentials")
	}
	if err != nil {
		return serverError(c, "auth.login", err)
	}
	h.setSID(c, sid)

	log.Audit(c, "auth.login.success", map[string]any{"username": u.Username})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Form": validate.RegisterForm{}, "Errors": validate.Errors{}})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var f validate.RegisterForm
	if err := c.BodyParser(&f); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	errs := validate.Struct(&f)
	if !errs.Empty() {
		log.Security(c, "validation.fail", map[string]any{"form": "register", "fields": errs})
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
			"Form": f, "Errors": errs, "CSRFToken": c.Cookies("csrf_"),
		})
	}

	sid := uuid.NewString()
	u, err := h.Auth.Register(sid, f.Username, f.Password, f.Email)
	if errors.Is(err, domain.ErrUsernameTaken) {
		errs.Add("username", "A user with that username already exists.")
		log.Security(c, "auth.register.taken", map[string]any{"username": f.Username})
		return c.Status(fiber.StatusConflict).Render("register", fiber.Map{
			"Form": f, "Errors": errs, "CSRFToken": c.Cookies("csrf_"),
		})
	}
	if err != nil {
		return serverError(c, "auth.register", err)
	}
	h.setSID(c, sid)

	log.Audit(c, "auth.register.success", map[string]any{"username": u.Username})
	return redirectWithFlash(c, "/", "Welcome, "+u.Username+"!")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(sessionCookie)
	if sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			log.Error(c, "auth.logout", err, nil)
		}
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
