package relation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecturia/bookgraph/pkg/models"
)

func newContext(tipo, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/relaciones/"+tipo, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("tipo")
	c.SetParamValues(tipo)
	return c
}

func TestCreate_UnknownTipo(t *testing.T) {
	err := NewHandler(nil).Create(newContext("amistad", `{"from": 1, "to": [2]}`))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
}

func TestCreate_IncompleteBody(t *testing.T) {
	t.Run("missing from", func(t *testing.T) {
		err := NewHandler(nil).Create(newContext("lectura", `{"to": [2]}`))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("empty to", func(t *testing.T) {
		err := NewHandler(nil).Create(newContext("lectura", `{"from": 1, "to": []}`))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})
}

func TestRelationMap(t *testing.T) {
	assert.Equal(t, models.RelWrote, relationMap["autoria"])
	assert.Equal(t, models.RelBelongsTo, relationMap["membresia"])
	assert.Equal(t, models.RelReads, relationMap["lectura"])
	assert.Equal(t, models.RelRecommends, relationMap["recomendacion"])
	assert.Len(t, relationMap, 4)
}
