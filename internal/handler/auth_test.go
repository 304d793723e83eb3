package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/iot-telemetry/internal/config"
	"github.com/iliyamo/iot-telemetry/internal/repository"
	"github.com/iliyamo/iot-telemetry/internal/utils"
)

func newAuthHandlerWithMock(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	cfg := config.Config{
		Env:           "test",
		JWTSecret:     "test-secret",
		TokenTTLHours: 24,
		BcryptCost:    bcrypt.MinCost,
	}
	return NewAuthHandler(cfg, repository.NewUserRepo(db)), mock, db
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

const userColsT = "id, name, email, password_hash, role, created_at, updated_at"

func userRows(hash string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(strings.Split(userColsT, ", ")).
		AddRow(1, "Alice", "alice@example.com", hash, "user", now, now)
}

func TestLogin_WrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	h, mock, db := newAuthHandlerWithMock(t)
	defer db.Close()

	hash, err := utils.HashPassword("right-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	mock.ExpectQuery(`SELECT ` + userColsT + ` FROM users WHERE email`).
		WithArgs("alice@example.com").
		WillReturnRows(userRows(hash))
	wrongPass := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)

	mock.ExpectQuery(`SELECT ` + userColsT + ` FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)
	unknownEmail := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever1"}`)

	if wrongPass.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses: %d, %d; want 401 for both", wrongPass.Code, unknownEmail.Code)
	}
	if wrongPass.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("responses differ:\n%s\n%s", wrongPass.Body.String(), unknownEmail.Body.String())
	}
	if !strings.Contains(wrongPass.Body.String(), "Invalid email or password") {
		t.Fatalf("unexpected message: %s", wrongPass.Body.String())
	}
}

func TestLogin_Success(t *testing.T) {
	h, mock, db := newAuthHandlerWithMock(t)
	defer db.Close()

	hash, err := utils.HashPassword("right-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	mock.ExpectQuery(`SELECT ` + userColsT + ` FROM users WHERE email`).
		WithArgs("alice@example.com").
		WillReturnRows(userRows(hash))

	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"alice@example.com","password":"right-password"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password field leaked: %s", rec.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	claims, err := utils.ParseAccessToken("test-secret", resp.Data.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.ID != 1 || claims.Email != "alice@example.com" || claims.Role != "user" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, mock, db := newAuthHandlerWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d want 409 (body: %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Email already registered") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegister_ValidationCollectsViolations(t *testing.T) {
	h, _, db := newAuthHandlerWithMock(t)
	defer db.Close()

	// No DB expectations: invalid payloads must never reach the store.
	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"name":"A","email":"nope","password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400 (body: %s)", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, field := range []string{`"field":"name"`, `"field":"email"`, `"field":"password"`} {
		if !strings.Contains(body, field) {
			t.Fatalf("missing violation %s in %s", field, body)
		}
	}
}
