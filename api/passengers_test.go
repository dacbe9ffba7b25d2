package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassengers_Get(t *testing.T) {
	a := newApp(t, 5)

	w := a.do(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/passengers/%d", a.pass.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Passenger
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, a.pass.ID, got.ID)
	assert.Equal(t, "70123456", got.NationalID)
}

func TestPassengers_Get_Unknown(t *testing.T) {
	a := newApp(t, 5)

	w := a.do(httptest.NewRequest(http.MethodGet, "/api/v1/passengers/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(httptest.NewRequest(http.MethodGet, "/api/v1/passengers/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
