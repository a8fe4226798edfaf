package store

import (
	"testing"

	"github.com/ncuwatch/taoyuanwx/internal/models"
)

func TestStoreSwap(t *testing.T) {
	s := New()
	if s.Latest() != nil {
		t.Fatal("fresh store should have no snapshot")
	}

	first := &models.Dataset{Districts: []*models.District{{Name: "a"}}}
	s.Set(first)
	if got := s.Latest(); got != first {
		t.Errorf("Latest() = %p, want %p", got, first)
	}

	second := &models.Dataset{Districts: []*models.District{{Name: "a"}, {Name: "b"}}}
	s.Set(second)
	if got := s.Latest(); got != second {
		t.Errorf("Latest() after swap = %p, want %p", got, second)
	}
	// The first snapshot is untouched by the swap.
	if len(first.Districts) != 1 {
		t.Error("published snapshot mutated")
	}
}
