package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

const (
	testUser = "clerk"
	testPass = "Passw0rd!"
)

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
}

func testConfig() config.Config {
	return config.Config{
		Env:          "test",
		DBDriver:     repos.DriverSQLite,
		DBDSN:        ":memory:",
		TemplatesDir: "../../web/templates",
		StaticDir:    "../../web/static",
		RateLimit:    10000,
	}
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auth := &services.AuthService{Users: repos.NewUserRepo(db), Cost: bcrypt.MinCost}
	require.NoError(t, auth.EnsureUser(testUser, testPass, "clerk@example.com"))
	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, auth))
	return &testApp{app: app, db: db}
}

// client carries cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func (ta *testApp) client(t *testing.T) *client {
	return &client{t: t, app: ta.app, cookies: map[string]string{}}
}

func (cl *client) do(req *http.Request) *http.Response {
	cl.t.Helper()
	for k, v := range cl.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c.Value
	}
	return resp
}

func (cl *client) get(path string) *http.Response {
	cl.t.Helper()
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits a form, fetching a CSRF token first when none is held yet.
func (cl *client) post(path string, form url.Values) *http.Response {
	cl.t.Helper()
	if cl.cookies["csrf_"] == "" {
		cl.get("/login")
		require.NotEmpty(cl.t, cl.cookies["csrf_"], "csrf cookie missing")
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", cl.cookies["csrf_"])
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(req)
}

func (cl *client) login() {
	cl.t.Helper()
	resp := cl.post("/login", url.Values{"username": {testUser}, "password": {testPass}})
	require.Equal(cl.t, http.StatusFound, resp.StatusCode)
	require.NotEmpty(cl.t, cl.cookies["sid"])
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// seedCatalog inserts one category, supplier and product with qty units.
func (ta *testApp) seedCatalog(t *testing.T, qty int) (catID, supID, prodID int64) {
	t.Helper()
	require.NoError(t, ta.db.Get(&catID, `INSERT INTO categories(name, description) VALUES ('Tools','') RETURNING id`))
	require.NoError(t, ta.db.Get(&supID, `INSERT INTO suppliers(name, email, phone, address) VALUES ('Acme','a@acme.test','1','Main St') RETURNING id`))
	require.NoError(t, ta.db.Get(&prodID, ta.db.Rebind(`INSERT INTO products(name, category_id, supplier_id, price, quantity, reorder_level, created_at)
		VALUES ('Hammer', ?, ?, 12.50, ?, 5, '2026-01-01 00:00:00.000000') RETURNING id`), catID, supID, qty))
	return
}

func (ta *testApp) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, ta.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

func (ta *testApp) quantity(t *testing.T, id int64) int {
	t.Helper()
	var q int
	require.NoError(t, ta.db.Get(&q, ta.db.Rebind(`SELECT quantity FROM products WHERE id = ?`), id))
	return q
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	UserID int64          `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

// captureLogs records structured entries written while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	restore := applog.SetOutput(&buf)
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var e logEntry
		if err := json.Unmarshal(line, &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}
