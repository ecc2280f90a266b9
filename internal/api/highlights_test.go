package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHighlightsEndpoint_NotFound(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/products/missing/highlights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHighlightsEndpoint_ClassifiesAgainstBracket(t *testing.T) {
	router, ms, _ := setupTestRouter(t)

	// A mid-range population with one clear standout on top speed.
	ms.add("standout", "escooter", 900, map[string]any{"top_speed": 32, "weight": 60})
	for i := 0; i < 6; i++ {
		ms.add(fmt.Sprintf("peer-%d", i), "escooter", 700+float64(i)*20, map[string]any{
			"top_speed": 20 + i,
			"weight":    40 + i,
		})
	}

	req := httptest.NewRequest("GET", "/api/v1/products/standout/highlights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp HighlightsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Slug != "standout" {
		t.Errorf("expected slug 'standout', got '%s'", resp.Slug)
	}
	if resp.Result == nil {
		t.Fatal("expected a classification result")
	}
	if resp.Result.Bracket.Key != "mid" {
		t.Errorf("expected mid bracket, got '%s'", resp.Result.Bracket.Key)
	}

	var foundSpeed bool
	for _, adv := range resp.Result.Advantages {
		if adv.SpecKey == "top_speed" {
			foundSpeed = true
		}
	}
	if !foundSpeed {
		t.Errorf("expected a top speed advantage, got %+v", resp.Result.Advantages)
	}

	var foundWeight bool
	for _, wk := range resp.Result.Weaknesses {
		if wk.SpecKey == "weight" {
			foundWeight = true
		}
	}
	if !foundWeight {
		t.Errorf("expected a weight weakness, got %+v", resp.Result.Weaknesses)
	}
}

func TestHighlightsEndpoint_NoStatsPopulation(t *testing.T) {
	router, ms, _ := setupTestRouter(t)
	ms.add("lone", "escooter", 600, map[string]any{"top_speed": 22})

	req := httptest.NewRequest("GET", "/api/v1/products/lone/highlights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp HighlightsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result != nil && len(resp.Result.Advantages) > 0 {
		t.Errorf("expected no advantages without peers, got %+v", resp.Result.Advantages)
	}
}
