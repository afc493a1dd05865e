package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMsg(w, "done", http.StatusCreated)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message": "done"}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteErr(w, "nope", http.StatusBadRequest)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "nope"}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteRespJSON(w, []int{1, 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[1, 2]`, w.Body.String())
}
