package models

import (
	"encoding/json"
	"testing"
)

func TestPage_DecodesEnvelope(t *testing.T) {
	raw := []byte(`{"content":[{"id":1},{"id":2}],"totalElements":7,"totalPages":4,"size":2,"number":1}`)

	var page Page[Service]
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(page.Content) != 2 || page.TotalElements != 7 || page.TotalPages != 4 || page.Number != 1 {
		t.Fatalf("page = %+v", page)
	}
}

func TestPage_NormalizesBareArray(t *testing.T) {
	raw := []byte(` [{"id":1},{"id":2},{"id":3}]`)

	var page Page[Service]
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(page.Content) != 3 {
		t.Fatalf("content = %+v", page.Content)
	}
	if page.TotalElements != 3 || page.TotalPages != 1 || page.Size != 3 || page.Number != 0 {
		t.Fatalf("bare array must normalize to a single page, got %+v", page)
	}
}

func TestPage_RejectsMalformedBody(t *testing.T) {
	var page Page[Service]
	if err := json.Unmarshal([]byte(`"nope"`), &page); err == nil {
		t.Fatal("expected an error for a non-list body")
	}
}
