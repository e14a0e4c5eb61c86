package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/northwind-labs/employee-directory/backend/internal/config"
	"github.com/northwind-labs/employee-directory/backend/internal/repository"
)

const (
	testUsername = "admin"
	testPassword = "correct horse battery staple"
)

var employeeColumns = []string{
	"EmployeeID", "FirstName", "LastName", "Title", "TitleOfCourtesy",
	"BirthDate", "HireDate", "Address", "City", "Region", "PostalCode",
	"Country", "HomePhone", "Extension", "Notes", "ReportsTo", "PhotoPath",
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Database.DSN = "postgres://localhost:5432/northwind_test"
	cfg.Database.QueryTimeout = 5
	cfg.Admin.Username = testUsername
	cfg.Admin.PasswordHash = string(hash)
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	return cfg
}

// newTestHandler builds a handler over a sqlmock-backed repository with the
// cache and event publishing disabled.
func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testConfig(t)
	repo, err := repository.NewRepository(cfg, db)
	require.NoError(t, err)

	h, err := NewHandler(cfg, repo, nil, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, mock
}

func doJSON(t *testing.T, h *Handler, method, path, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := Response{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func login(t *testing.T, h *Handler) *http.Cookie {
	t.Helper()

	rec, resp := doJSON(t, h, http.MethodPost, "/auth/login",
		`{"username":"`+testUsername+`","password":"`+testPassword+`"}`, nil)
	require.True(t, resp.Success)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	_, resp := doJSON(t, h, http.MethodPost, "/auth/login",
		`{"username":"admin","password":"nope"}`, nil)

	assert.False(t, resp.Success)
	assert.Equal(t, "wrong username or password", resp.Message)
}

func TestLogin_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	_, resp := doJSON(t, h, http.MethodPost, "/auth/login", `{"username":"admin"}`, nil)

	assert.False(t, resp.Success)
}

func TestEmployees_RequireLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	_, resp := doJSON(t, h, http.MethodGet, "/employees", "", nil)

	assert.False(t, resp.Success)
	assert.Equal(t, "not logged in", resp.Message)
}

func TestListEmployeesEndpoint(t *testing.T) {
	h, mock := newTestHandler(t)
	cookie := login(t, h)

	rows := sqlmock.NewRows([]string{"EmployeeID", "FirstName", "LastName", "Title"}).
		AddRow(int64(1), "Nancy", "Davolio", "Sales Representative").
		AddRow(int64(2), "Andrew", "Fuller", nil)
	mock.ExpectQuery("SELECT EmployeeID, FirstName, LastName, Title FROM Employees").
		WillReturnRows(rows)

	_, resp := doJSON(t, h, http.MethodGet, "/employees", "", cookie)

	require.True(t, resp.Success)
	data, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, data, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeEndpoint(t *testing.T) {
	h, mock := newTestHandler(t)
	cookie := login(t, h)

	mock.ExpectQuery("INSERT INTO Employees").
		WithArgs("Janet", "Leverling", "Sales Representative").
		WillReturnRows(sqlmock.NewRows([]string{"EmployeeID"}).AddRow(int64(3)))

	_, resp := doJSON(t, h, http.MethodPost, "/employees",
		`{"firstName":"Janet","lastName":"Leverling","title":"Sales Representative"}`, cookie)

	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeEndpoint_MissingLastName(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := login(t, h)

	_, resp := doJSON(t, h, http.MethodPost, "/employees", `{"firstName":"Janet"}`, cookie)

	assert.False(t, resp.Success)
}

func TestGetEmployeeEndpoint_NotFound(t *testing.T) {
	h, mock := newTestHandler(t)
	cookie := login(t, h)

	mock.ExpectQuery("SELECT (.+) FROM Employees WHERE EmployeeID = ").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, resp := doJSON(t, h, http.MethodGet, "/employees/404", "", cookie)

	assert.False(t, resp.Success)
	assert.Equal(t, "employee not found", resp.Message)
}

func TestGetEmployeeEndpoint_BadID(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := login(t, h)

	_, resp := doJSON(t, h, http.MethodGet, "/employees/nancy", "", cookie)

	assert.False(t, resp.Success)
	assert.Equal(t, "invalid employee id", resp.Message)
}

func TestUpdateEmployeeEndpoint(t *testing.T) {
	h, mock := newTestHandler(t)
	cookie := login(t, h)

	rows := sqlmock.NewRows(employeeColumns).AddRow(
		int64(1), "Nancy", "Davolio", "Sales Representative", nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
	)
	mock.ExpectQuery("SELECT (.+) FROM Employees WHERE EmployeeID = ").
		WithArgs(int64(1)).
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE Employees").
		WithArgs(
			"Nancy", "Davolio", "Sales Manager", nil,
			nil, nil, nil, "Seattle",
			nil, nil, nil, nil,
			nil, nil, nil, nil,
			int64(1),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, resp := doJSON(t, h, http.MethodPatch, "/employees/1",
		`{"title":"Sales Manager","city":"Seattle"}`, cookie)

	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Sales Manager", data["title"])
	assert.Equal(t, "Seattle", data["city"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEmployeeEndpoint(t *testing.T) {
	h, mock := newTestHandler(t)
	cookie := login(t, h)

	rows := sqlmock.NewRows(employeeColumns).AddRow(
		int64(2), "Andrew", "Fuller", nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
	)
	mock.ExpectQuery("SELECT (.+) FROM Employees WHERE EmployeeID = ").
		WithArgs(int64(2)).
		WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM Employees WHERE EmployeeID = ").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, resp := doJSON(t, h, http.MethodDelete, "/employees/2", "", cookie)

	require.True(t, resp.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}
