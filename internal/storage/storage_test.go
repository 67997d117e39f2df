package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ectool/lpscorer/internal/models"
)

func record(id string, at time.Time) *models.ScoreRecord {
	return &models.ScoreRecord{ID: id, Title: "title-" + id, CreatedAt: at}
}

func TestScoreStore(t *testing.T) {
	store := New()
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	store.Add(record("a", base))
	store.Add(record("b", base.Add(time.Minute)))
	store.Add(record("c", base.Add(-time.Minute)))

	got, ok := store.Get("b")
	if !ok || got.Title != "title-b" {
		t.Fatalf("Get(b) = %v, %v", got, ok)
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("Get should report missing records")
	}

	var ids []string
	for _, r := range store.List() {
		ids = append(ids, r.ID)
	}
	if fmt.Sprint(ids) != "[b a c]" {
		t.Errorf("List should be newest first, got %v", ids)
	}

	if !store.Delete("a") {
		t.Error("Delete(a) should report an existing record")
	}
	if store.Delete("a") {
		t.Error("second Delete(a) should report nothing deleted")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 records, got %d", store.Len())
	}
}

func TestScoreStoreConcurrent(t *testing.T) {
	store := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("r%d", i)
			store.Add(record(id, time.Now()))
			store.Get(id)
			store.List()
		}(i)
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("expected 50 records, got %d", store.Len())
	}
}
