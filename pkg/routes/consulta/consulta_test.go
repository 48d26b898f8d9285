package consulta

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBooksRead_RequiresPersonaParam(t *testing.T) {
	h := NewHandler(nil)

	err := h.BooksRead(newContext(t, "/consultas/libros-leidos"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	assert.Contains(t, err.Error(), "persona")
}

func TestClubMembers_RequiresClubParam(t *testing.T) {
	h := NewHandler(nil)

	err := h.ClubMembers(newContext(t, "/consultas/personas-club"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	assert.Contains(t, err.Error(), "club")
}

func TestRegister_DeclaresAllQueryRoutes(t *testing.T) {
	e := echo.New()
	NewHandler(nil).Register(e.Group("/consultas"))

	paths := make(map[string]bool)
	for _, r := range e.Routes() {
		if r.Method == http.MethodGet {
			paths[r.Path] = true
		}
	}

	for _, want := range []string{
		"/consultas/libros-leidos",
		"/consultas/personas-club",
		"/consultas/personas-mas-libros",
		"/consultas/personas-mas-clubes",
		"/consultas/libros-populares",
	} {
		assert.True(t, paths[want], "missing route %s", want)
	}
}
