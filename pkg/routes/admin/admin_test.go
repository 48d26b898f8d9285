package admin

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManualData_NoMultipart(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/cargar-datos-manual", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := NewHandler(nil, nil).LoadManualData(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}

func TestLoadManualData_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("otro_campo", "valor"))
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/cargar-datos-manual", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	c := e.NewContext(req, httptest.NewRecorder())

	err := NewHandler(nil, nil).LoadManualData(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}

func TestListBatches_Disabled(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/lotes", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := NewHandler(nil, nil).ListBatches(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
}
