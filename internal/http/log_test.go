package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEventsAreLogged(t *testing.T) {
	ta := newTestApp(t)
	cl := ta.client(t)
	cl.get("/login")

	entries := captureLogs(t, func() {
		cl.post("/login", url.Values{"username": {testUser}, "password": {"nope"}})
		cl.login()
		cl.post("/logout", nil)
	})

	fail := findLog(entries, "auth.login.fail")
	require.NotNil(t, fail)
	assert.Equal(t, "security", fail.Kind)
	assert.Equal(t, "warn", fail.Level)
	assert.Equal(t, testUser, fail.Fields["username"])
	assert.NotContains(t, fmt.Sprint(fail.Fields), "nope", "passwords never reach the log")

	ok := findLog(entries, "auth.login.success")
	require.NotNil(t, ok)
	assert.Equal(t, "audit", ok.Kind)

	out := findLog(entries, "auth.logout")
	require.NotNil(t, out)
	assert.NotZero(t, out.UserID)
}

func TestStockMovementsAreAudited(t *testing.T) {
	ta := newTestApp(t)
	_, _, prodID := ta.seedCatalog(t, 4)
	cl := ta.client(t)
	cl.login()

	entries := captureLogs(t, func() {
		resp := cl.post("/stock", url.Values{"product": {fmt.Sprint(prodID)}, "quantity": {"2"}, "transaction_type": {"OUT"}})
		require.Equal(t, http.StatusFound, resp.StatusCode)
		resp = cl.post("/stock", url.Values{"product": {fmt.Sprint(prodID)}, "quantity": {"9"}, "transaction_type": {"OUT"}})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	rec := findLog(entries, "stock.recorded")
	require.NotNil(t, rec)
	assert.NotZero(t, rec.UserID)
	assert.Equal(t, "OUT", rec.Fields["type"])
	assert.EqualValues(t, prodID, rec.Fields["product_id"])

	rej := findLog(entries, "stock.out.rejected")
	require.NotNil(t, rej)
	assert.EqualValues(t, 9, rej.Fields["quantity"])
}

func TestValidationFailuresAreLogged(t *testing.T) {
	ta := newTestApp(t)
	cl := ta.client(t)
	cl.login()

	entries := captureLogs(t, func() {
		cl.post("/categories/add", url.Values{"name": {""}})
	})
	e := findLog(entries, "validation.fail")
	require.NotNil(t, e)
	assert.Equal(t, "category", e.Fields["form"])
}
