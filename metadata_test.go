package rebalance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMetadata_InsertionOrder(t *testing.T) {
	m := NewMetadata("class", "region")
	m.Add("VTI", map[string]string{"class": "equity", "region": "US"})
	m.Add("BND", map[string]string{"class": "bond", "region": "US"})
	m.Add("VTI", map[string]string{"class": "equity", "region": "US"}) // re-add keeps position

	if diff := cmp.Diff([]string{"VTI", "BND"}, m.Tickers()); diff != "" {
		t.Errorf("Tickers() mismatch (-want +got):\n%s", diff)
	}
	if got := m.Value("BND", "class"); got != "bond" {
		t.Errorf("Value(BND, class) = %q, want bond", got)
	}
	if got := m.Value("BND", "sector"); got != "" {
		t.Errorf("Value(BND, sector) = %q, want empty for unknown attribute", got)
	}
}

func TestMetadata_AddDropsUndeclaredAttributes(t *testing.T) {
	m := NewMetadata("class")
	m.Add("VTI", map[string]string{"class": "equity", "color": "blue"})
	if got := m.Value("VTI", "color"); got != "" {
		t.Errorf("Value(VTI, color) = %q, want empty", got)
	}
}

func TestMetadata_CheckValueCollisions(t *testing.T) {
	m := NewMetadata("class", "style")
	m.Add("A", map[string]string{"class": "growth", "style": "value"})
	m.Add("B", map[string]string{"class": "bond", "style": "growth"})
	m.Add("C", map[string]string{"class": "bond", "style": "growth"}) // same collision, reported once

	got := m.CheckValueCollisions()
	want := []ValueCollision{{Value: "growth", Kept: "class", Shadow: "style"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CheckValueCollisions() mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadata_CheckValueCollisions_CleanUniverse(t *testing.T) {
	if got := classRegionMetadata().CheckValueCollisions(); got != nil {
		t.Errorf("CheckValueCollisions() = %v, want none", got)
	}
}
