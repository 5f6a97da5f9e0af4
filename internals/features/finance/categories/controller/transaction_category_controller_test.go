// file: internals/features/finance/categories/controller/transaction_category_controller_test.go
package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "schoolku_backend/internals/databases"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrateFinance(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	schoolID := uuid.New()
	app := fiber.New()
	// identitas langsung ditanam di locals, melewati verifikasi JWT
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocSchoolID, schoolID.String())
		c.Locals(helperAuth.LocUserID, uuid.New().String())
		c.Locals(helperAuth.LocUserName, "admin-test")
		c.Locals(helperAuth.LocRole, "admin")
		return c.Next()
	})

	h := &TransactionCategoryHandler{DB: db}
	app.Get("/transaction-categories", h.List)
	app.Post("/transaction-categories", h.Create)
	app.Patch("/transaction-categories/:id", h.Update)
	app.Delete("/transaction-categories/:id", h.Delete)

	return app, db, schoolID
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, envelope
}

func TestCategoryCreateListDelete(t *testing.T) {
	app, _, _ := newTestApp(t)

	code, env := doJSON(t, app, http.MethodPost, "/transaction-categories", map[string]any{
		"transaction_category_name": "SPP",
		"transaction_category_kind": "income",
	})
	if code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %v", code, env)
	}
	data := env["data"].(map[string]any)
	id := data["transaction_category_id"].(string)

	// nama ganda di sekolah sama → 409
	code, _ = doJSON(t, app, http.MethodPost, "/transaction-categories", map[string]any{
		"transaction_category_name": "SPP",
		"transaction_category_kind": "income",
	})
	if code != http.StatusConflict {
		t.Fatalf("duplicate name status = %d, want 409", code)
	}

	code, env = doJSON(t, app, http.MethodGet, "/transaction-categories?kind=income", nil)
	if code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if rows := env["data"].([]any); len(rows) != 1 {
		t.Fatalf("list rows = %d, want 1", len(rows))
	}

	code, _ = doJSON(t, app, http.MethodDelete, "/transaction-categories/"+id, nil)
	if code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}

	// soft delete: hilang dari list, delete kedua 404
	code, env = doJSON(t, app, http.MethodGet, "/transaction-categories", nil)
	if code != http.StatusOK {
		t.Fatalf("list after delete status = %d", code)
	}
	if rows := env["data"].([]any); len(rows) != 0 {
		t.Fatalf("rows after delete = %d, want 0", len(rows))
	}
	code, _ = doJSON(t, app, http.MethodDelete, "/transaction-categories/"+id, nil)
	if code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", code)
	}
}

func TestCategoryValidationAndUpdate(t *testing.T) {
	app, _, _ := newTestApp(t)

	// kind di luar enum
	code, _ := doJSON(t, app, http.MethodPost, "/transaction-categories", map[string]any{
		"transaction_category_name": "Aneh",
		"transaction_category_kind": "sideways",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("bad kind status = %d, want 400", code)
	}

	code, env := doJSON(t, app, http.MethodPost, "/transaction-categories", map[string]any{
		"transaction_category_name": "Operasional",
		"transaction_category_kind": "expense",
	})
	if code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	id := env["data"].(map[string]any)["transaction_category_id"].(string)

	code, env = doJSON(t, app, http.MethodPatch, "/transaction-categories/"+id, map[string]any{
		"transaction_category_name":      "Operasional Harian",
		"transaction_category_is_active": false,
	})
	if code != http.StatusOK {
		t.Fatalf("update status = %d, body = %v", code, env)
	}
	data := env["data"].(map[string]any)
	if data["transaction_category_name"] != "Operasional Harian" {
		t.Fatalf("name not updated: %v", data)
	}
	if data["transaction_category_is_active"] != false {
		t.Fatalf("is_active not updated: %v", data)
	}

	code, _ = doJSON(t, app, http.MethodPatch, "/transaction-categories/"+uuid.New().String(), map[string]any{
		"transaction_category_name": "X",
	})
	if code != http.StatusNotFound {
		t.Fatalf("update missing status = %d, want 404", code)
	}
}
