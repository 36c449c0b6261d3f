package helper

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"musicweb-api/models"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetStatusCode(t *testing.T) {
	h := NewHTTPHelper()

	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{models.NewValidationError("bad"), http.StatusBadRequest},
		{models.ErrorUnauthorized{Message: "no"}, http.StatusUnauthorized},
		{models.ErrorForbidden{Message: "no"}, http.StatusForbidden},
		{models.ErrorNotFound{Resource: "music"}, http.StatusNotFound},
		{models.ErrorConflict{Message: "dup"}, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", models.ErrorConflict{Message: "dup"}), http.StatusConflict},
		{models.NewInternalError("op", fmt.Errorf("boom")), http.StatusInternalServerError},
		{fmt.Errorf("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, h.GetStatusCode(tt.err), "%v", tt.err)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSendErrorFromErr_HidesInternalDetail(t *testing.T) {
	h := NewHTTPHelper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/music", nil)

	h.SendErrorFromErr(c, models.NewInternalError("list music", fmt.Errorf("pq: relation does not exist")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["code_message"])
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestSendErrorFromErr_FieldErrors(t *testing.T) {
	h := NewHTTPHelper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/reviews", nil)

	h.SendErrorFromErr(c, models.NewFieldError("rating", "rating must be an integer between 1 and 5"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 400, body["code"])
	assert.Equal(t, "badRequest", body["code_type"])
	assert.Contains(t, body["data"], "rating")
}

func TestBindJSON(t *testing.T) {
	h := NewHTTPHelper()

	tests := []struct {
		name   string
		body   string
		ok     bool
		fields []string
	}{
		{"valid", `{"email":"a@example.com","password":"secret1","username":"abc"}`, true, nil},
		{"malformed", `{"email":`, false, nil},
		{"wrong type", `{"email":"a@example.com","password":123,"username":"abc"}`, false, nil},
		{"validation", `{"email":"nope","password":"123","username":"ab"}`, false, []string{"email", "password", "username"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req models.RegisterRequest
			assert.Equal(t, tt.ok, h.BindJSON(c, &req))
			if tt.ok {
				return
			}
			assert.Equal(t, http.StatusBadRequest, w.Code)
			data, _ := decode(t, w)["data"].(map[string]interface{})
			for _, f := range tt.fields {
				assert.Contains(t, data, f)
			}
		})
	}
}

func TestSetPaginationHeaders(t *testing.T) {
	h := NewHTTPHelper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "http://api.test/music?page=2&limit=10&genre=jazz", nil)

	h.SetPaginationHeaders(c, 2, 10, 25)

	assert.Equal(t, "25", w.Header().Get(HeaderTotalCount))
	assert.Equal(t, "3", w.Header().Get(HeaderTotalPages))
	assert.Equal(t, "2", w.Header().Get(HeaderCurrentPage))
	assert.Equal(t, "10", w.Header().Get(HeaderPerPage))

	link := w.Header().Get("Link")
	assert.Contains(t, link, `rel="first"`)
	assert.Contains(t, link, `rel="prev"`)
	assert.Contains(t, link, `rel="next"`)
	assert.Contains(t, link, `rel="last"`)
	assert.Contains(t, link, "genre=jazz")
	assert.Contains(t, link, "page=3")
}
