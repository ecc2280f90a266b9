package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rasmushax/eridehero/internal/store"
)

func TestUpsertProductEndpoint(t *testing.T) {
	router, ms, bus := setupTestRouter(t)

	body := `{"slug":"new-scooter","name":"New Scooter","category":"escooter","price":999,"specs":{"top_speed":30}}`
	req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p store.Product
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	assert.Equal(t, "new-scooter", p.Slug)
	assert.NotNil(t, ms.products["new-scooter"])

	assert.Equal(t, []string{"gear.product.new-scooter.updated"}, bus.published)
}

func TestUpsertProductEndpoint_Validation(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	body := `{"name":"No Slug"}`
	req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer test-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertProductEndpoint_RequiresAuth(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	body := `{"slug":"x","category":"escooter"}`
	req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewBufferString(body))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpsertProductEndpoint_InvalidatesSnapshot(t *testing.T) {
	router, ms, _ := setupTestRouter(t)
	ms.add("existing", "escooter", 700, map[string]any{"top_speed": 25})

	// Prime a snapshot, then upsert and confirm it was dropped.
	req := httptest.NewRequest("POST", "/api/v1/stats/refresh", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	body := `{"slug":"newcomer","name":"Newcomer","category":"escooter","price":850,"specs":{"top_speed":28}}`
	req = httptest.NewRequest("POST", "/api/v1/products", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer test-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Snapshots []StatsSummary `json:"snapshots"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.Snapshots)
}
