package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "resortbook/errors"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w, c
}

func TestErrorMapsAppErrorStatus(t *testing.T) {
	w, c := render(t, func(c *gin.Context) {
		Error(c, apperrors.Unprocessable("Only pending bookings can be updated"))
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, c.IsAborted())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Only pending bookings can be updated", body.Message)
	assert.Empty(t, body.Error)
}

func TestErrorHidesInternalCause(t *testing.T) {
	w, c := render(t, func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0].Error(), "connection refused")
}

func TestCreatedEnvelope(t *testing.T) {
	w, _ := render(t, func(c *gin.Context) {
		Created(c, "done", gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"done","data":{"id":1}}`, w.Body.String())
}
