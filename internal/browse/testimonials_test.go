package browse

import (
	"slices"
	"testing"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
)

func newTestimonialBrowser(t *testing.T) (*TestimonialBrowser, *analytics.Recorder) {
	t.Helper()
	file, err := catalog.DefaultTestimonials()
	if err != nil {
		t.Fatalf("load testimonials: %v", err)
	}
	rec := &analytics.Recorder{}
	return NewTestimonialBrowser(catalog.NewTestimonials(file), rec), rec
}

func TestTestimonialCategories(t *testing.T) {
	b, rec := newTestimonialBrowser(t)

	if b.Category() != query.CategoryAll || len(b.Visible()) != 4 {
		t.Fatalf("initial category %q with %d visible", b.Category(), len(b.Visible()))
	}
	if !b.ShowFeaturedHero() {
		t.Error("featured hero should show on All")
	}

	if err := b.SetCategory("Featured"); err != nil {
		t.Fatal(err)
	}
	if len(b.Visible()) != 2 {
		t.Errorf("featured visible = %d, want 2", len(b.Visible()))
	}
	if b.ShowFeaturedHero() {
		t.Error("featured hero should hide outside All")
	}

	if err := b.SetCategory("Podiatry"); err == nil {
		t.Error("expected error for unknown category")
	}
	if b.Category() != "Featured" {
		t.Errorf("category changed on error: %q", b.Category())
	}

	b.CycleCategory(1)
	if b.Category() != "Family Medicine" {
		t.Errorf("CycleCategory(1) = %q", b.Category())
	}
	b.CycleCategory(-3)
	if b.Category() != "Multi-Specialty" {
		t.Errorf("CycleCategory(-3) = %q, want wrap to Multi-Specialty", b.Category())
	}

	for _, ev := range rec.Events() {
		if ev.Name != analytics.EventTestimonialCategory {
			t.Errorf("unexpected event %s", ev.Name)
		}
	}
}

func TestTestimonialModal(t *testing.T) {
	b, _ := newTestimonialBrowser(t)

	if err := b.Open("nope"); err == nil {
		t.Error("expected error for unknown id")
	}
	if err := b.Open("2"); err != nil {
		t.Fatal(err)
	}
	if b.Opened() == nil || b.Opened().Name != "Dr. Michael Chen" {
		t.Fatalf("Opened() = %+v", b.Opened())
	}
	if p := b.Player(); p.Playing || !p.Muted {
		t.Errorf("player = %+v, want paused and muted", p)
	}

	b.TogglePlay()
	b.ToggleMute()
	if p := b.Player(); !p.Playing || p.Muted {
		t.Errorf("player = %+v, want playing and unmuted", p)
	}

	b.Close()
	if b.Opened() != nil {
		t.Error("Close should clear the modal")
	}
	b.TogglePlay()
	if b.Player().Playing {
		t.Error("play toggle without a modal should be ignored")
	}
}

func TestTestimonialLikes(t *testing.T) {
	b, rec := newTestimonialBrowser(t)
	first := b.Visible()[0]

	if b.Likes(first) != 127 {
		t.Fatalf("Likes = %d, want 127", b.Likes(first))
	}
	if !b.ToggleLike(first.ID) || b.Likes(first) != 128 {
		t.Errorf("liked count = %d, want 128", b.Likes(first))
	}

	_ = b.SetCategory("Surgery")
	_ = b.SetCategory("All")
	if !b.Liked(first.ID) {
		t.Error("like lost across category change")
	}
	if b.Liked(b.Visible()[1].ID) {
		t.Error("like leaked to another testimonial")
	}

	b.ToggleLike(first.ID)
	if b.Likes(first) != 127 {
		t.Errorf("unliked count = %d, want 127", b.Likes(first))
	}
	if !slices.Contains(rec.Names(), analytics.EventItemLiked) {
		t.Error("expected item_liked event")
	}
}
