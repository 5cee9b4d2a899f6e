package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeMenuItemDocumentToleratesNumericDrift(t *testing.T) {
	tests := []struct {
		name  string
		price interface{}
		views interface{}
	}{
		{"int32", int32(25000), int32(90)},
		{"int64", int64(25000), int64(90)},
		{"double", float64(25000), float64(90)},
	}

	for _, tt := range tests {
		item, err := normalizeMenuItemDocument(bson.M{
			"name":     "Nasi Goreng",
			"price":    tt.price,
			"views":    tt.views,
			"category": "food",
		})
		if err != nil {
			t.Fatalf("%s: normalizeMenuItemDocument returned error: %v", tt.name, err)
		}
		if item.Price != 25000 || item.Views != 90 {
			t.Fatalf("%s: expected price 25000 views 90, got %+v", tt.name, item)
		}
		if item.Badge != "popular" {
			t.Fatalf("%s: expected popular badge at 90 views, got %q", tt.name, item.Badge)
		}
	}
}

func TestNormalizeMenuItemDocumentDefaultsMissingCounters(t *testing.T) {
	item, err := normalizeMenuItemDocument(bson.M{
		"name":     "Es Teh",
		"category": "drink",
	})
	if err != nil {
		t.Fatalf("normalizeMenuItemDocument returned error: %v", err)
	}
	if item.Price != 0 || item.Views != 0 || item.Badge != "" {
		t.Fatalf("expected zeroed counters and no badge, got %+v", item)
	}
}

func TestMenuItemJSONIncludesBadge(t *testing.T) {
	item, err := normalizeMenuItemDocument(bson.M{
		"name":     "Sate Ayam",
		"price":    int64(30000),
		"views":    int64(200),
		"category": "food",
	})
	if err != nil {
		t.Fatalf("normalizeMenuItemDocument returned error: %v", err)
	}

	body, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}
	if !strings.Contains(string(body), "\"badge\":\"trending\"") {
		t.Fatalf("expected trending badge in response json, got %s", body)
	}
}

// Stub counter in the mock-repository style; records increments for
// assertions.
type recordingCounter struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingCounter) Add(itemID string) {
	r.mu.Lock()
	r.ids = append(r.ids, itemID)
	r.mu.Unlock()
}

func TestRegisterItemViewAcceptsValidID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	counter := &recordingCounter{}
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Params = gin.Params{{Key: "id", Value: "507f1f77bcf86cd799439011"}}
	c.Request = httptest.NewRequest("POST", "/menu/507f1f77bcf86cd799439011/view", nil)

	RegisterItemView(counter)(c)

	if recorder.Code != 202 {
		t.Fatalf("expected 202, got %d", recorder.Code)
	}
	if len(counter.ids) != 1 || counter.ids[0] != "507f1f77bcf86cd799439011" {
		t.Fatalf("expected one recorded increment, got %v", counter.ids)
	}
}

func TestRegisterItemViewRejectsBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	counter := &recordingCounter{}
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Params = gin.Params{{Key: "id", Value: "not-an-object-id"}}
	c.Request = httptest.NewRequest("POST", "/menu/not-an-object-id/view", nil)

	RegisterItemView(counter)(c)

	if recorder.Code != 400 {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if len(counter.ids) != 0 {
		t.Fatalf("invalid id must not reach the counter, got %v", counter.ids)
	}
}
