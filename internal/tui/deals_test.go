package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/ashwinpillay/voltcart/pkg/domain"
)

func TestDealsViewStates(t *testing.T) {
	m := newDealsModel(nil)
	m.width = 80
	m.loading = false

	now := time.Now()
	m, _ = m.Update(dealsLoadedMsg{
		deals: []domain.Deal{
			{ID: "d1", Title: "GPU blowout", Category: "gpu", Discount: 20,
				StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)},
			{ID: "d2", Title: "Next week special", Category: "cpu", Discount: 15,
				StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(48 * time.Hour)},
			{ID: "d3", Title: "Last month", Category: "psu", Discount: 10,
				StartsAt: now.Add(-48 * time.Hour), EndsAt: now.Add(-24 * time.Hour)},
		},
	})

	view := m.View()
	for _, want := range []string{"LIVE", "SOON", "OVER", "-20%", "GPU blowout"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestDealsViewFeaturedSlides(t *testing.T) {
	m := newDealsModel(nil)
	m.loading = false
	m, _ = m.Update(dealsLoadedMsg{
		slides: []domain.Slide{{ID: "s1", Title: "Build of the month"}},
	})

	view := m.View()
	if !strings.Contains(view, "FEATURED") {
		t.Errorf("expected featured section, got:\n%s", view)
	}
	if !strings.Contains(view, "Build of the month") {
		t.Errorf("expected slide title, got:\n%s", view)
	}
}

func TestDealsViewEmpty(t *testing.T) {
	m := newDealsModel(nil)
	m.loading = false
	m, _ = m.Update(dealsLoadedMsg{})
	if !strings.Contains(m.View(), "no deals right now") {
		t.Error("expected empty-state message")
	}
}
