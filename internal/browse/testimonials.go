package browse

import (
	"fmt"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
)

// Player is the playback state of the open testimonial.
type Player struct {
	Playing bool
	Muted   bool
}

// TestimonialBrowser holds the category filter, the open testimonial and
// per-testimonial likes.
type TestimonialBrowser struct {
	testimonials *catalog.Testimonials
	category     string

	open   *catalog.VideoTestimonial
	player Player

	liked   map[string]bool
	tracker analytics.Tracker
}

// NewTestimonialBrowser starts on the All category with nothing open.
func NewTestimonialBrowser(ts *catalog.Testimonials, tracker analytics.Tracker) *TestimonialBrowser {
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	return &TestimonialBrowser{
		testimonials: ts,
		category:     query.CategoryAll,
		liked:        make(map[string]bool),
		tracker:      tracker,
	}
}

// Category returns the active category.
func (b *TestimonialBrowser) Category() string { return b.category }

// SetCategory switches category. Unknown categories are rejected.
func (b *TestimonialBrowser) SetCategory(category string) error {
	c, err := query.ParseCategory(category)
	if err != nil {
		return err
	}
	if c == b.category {
		return nil
	}
	b.category = c
	analytics.Safe(b.tracker, analytics.NewEvent(analytics.EventTestimonialCategory, c))
	return nil
}

// CycleCategory advances to the next category by delta steps, wrapping.
func (b *TestimonialBrowser) CycleCategory(delta int) {
	cats := query.TestimonialCategories
	n := len(cats)
	i := indexOf(cats, b.category)
	_ = b.SetCategory(cats[((i+delta)%n+n)%n])
}

// Visible returns the testimonials in the active category.
func (b *TestimonialBrowser) Visible() []*catalog.VideoTestimonial {
	return query.FilterTestimonials(b.testimonials.ListAll(), b.category)
}

// ShowFeaturedHero reports whether the featured strip is shown above the
// grid. It only appears on the All category.
func (b *TestimonialBrowser) ShowFeaturedHero() bool {
	return b.category == query.CategoryAll && len(b.testimonials.Featured()) > 0
}

// Featured returns the featured testimonials.
func (b *TestimonialBrowser) Featured() []*catalog.VideoTestimonial {
	return b.testimonials.Featured()
}

// Open shows the testimonial with id in the detail modal, paused and muted.
func (b *TestimonialBrowser) Open(id string) error {
	t, ok := b.testimonials.Lookup(id)
	if !ok {
		return fmt.Errorf("testimonial %q not found", id)
	}
	b.open = t
	b.player = Player{Muted: true}
	analytics.Safe(b.tracker, analytics.NewEvent(analytics.EventTestimonialOpened, id))
	return nil
}

// Close hides the detail modal.
func (b *TestimonialBrowser) Close() {
	b.open = nil
	b.player = Player{}
}

// Opened returns the testimonial in the modal, or nil.
func (b *TestimonialBrowser) Opened() *catalog.VideoTestimonial { return b.open }

// Player returns the modal playback state.
func (b *TestimonialBrowser) Player() Player { return b.player }

// TogglePlay starts or pauses playback in the modal.
func (b *TestimonialBrowser) TogglePlay() {
	if b.open != nil {
		b.player.Playing = !b.player.Playing
	}
}

// ToggleMute mutes or unmutes the modal.
func (b *TestimonialBrowser) ToggleMute() {
	if b.open != nil {
		b.player.Muted = !b.player.Muted
	}
}

// ToggleLike flips the like on testimonial id and returns the new state.
func (b *TestimonialBrowser) ToggleLike(id string) bool {
	b.liked[id] = !b.liked[id]
	if b.liked[id] {
		analytics.Safe(b.tracker, analytics.NewEvent(analytics.EventItemLiked, id, "kind", "testimonial"))
	}
	return b.liked[id]
}

// Liked reports whether testimonial id is liked.
func (b *TestimonialBrowser) Liked(id string) bool { return b.liked[id] }

// Likes returns the like count shown for t, counting the local like.
func (b *TestimonialBrowser) Likes(t *catalog.VideoTestimonial) int {
	if b.liked[t.ID] {
		return t.Likes + 1
	}
	return t.Likes
}
