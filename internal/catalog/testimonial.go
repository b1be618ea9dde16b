package catalog

import (
	"fmt"
	"time"
)

// DateLayout is the layout of VideoTestimonial.DateRecorded.
const DateLayout = "2006-01-02"

// TestimonialMetrics are the headline results a customer reports.
type TestimonialMetrics struct {
	RevenueIncrease string `yaml:"revenue_increase"`
	ClaimsAccuracy  string `yaml:"claims_accuracy"`
	TimesSaved      string `yaml:"times_saved"`
}

// VideoTestimonial is a recorded customer story.
type VideoTestimonial struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	Title        string             `yaml:"title"`
	Company      string             `yaml:"company"`
	Location     string             `yaml:"location,omitempty"`
	Specialty    string             `yaml:"specialty"`
	VideoURL     string             `yaml:"video_url,omitempty"`
	PosterImage  string             `yaml:"poster_image,omitempty"`
	Quote        string             `yaml:"quote"`
	Metrics      TestimonialMetrics `yaml:"metrics"`
	Results      []string           `yaml:"results,omitempty"`
	Rating       int                `yaml:"rating"`
	Duration     string             `yaml:"duration,omitempty"`
	DateRecorded string             `yaml:"date_recorded"`
	Featured     bool               `yaml:"featured,omitempty"`
	Likes        int                `yaml:"likes"`
	Comments     int                `yaml:"comments"`
}

// Recorded parses DateRecorded.
func (t *VideoTestimonial) Recorded() (time.Time, error) {
	return time.Parse(DateLayout, t.DateRecorded)
}

// TestimonialFile represents a testimonials YAML file.
type TestimonialFile struct {
	Version      int                 `yaml:"version"`
	Name         string              `yaml:"name"`
	Testimonials []*VideoTestimonial `yaml:"testimonials"`
}

// Validate checks the testimonial file for structural consistency.
func (f *TestimonialFile) Validate() error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported testimonials version: %d", f.Version)
	}

	ids := make(map[string]bool)
	for i, t := range f.Testimonials {
		if t == nil {
			return fmt.Errorf("testimonial %d: empty record", i)
		}
		if t.ID == "" {
			return fmt.Errorf("testimonial %d: missing id", i)
		}
		if ids[t.ID] {
			return fmt.Errorf("testimonial %d: duplicate id %q", i, t.ID)
		}
		ids[t.ID] = true
	}
	return nil
}

// Testimonials provides indexed access to testimonials.
type Testimonials struct {
	file *TestimonialFile
	byID map[string]*VideoTestimonial
}

// NewTestimonials indexes a testimonial file.
func NewTestimonials(file *TestimonialFile) *Testimonials {
	ts := &Testimonials{
		file: file,
		byID: make(map[string]*VideoTestimonial, len(file.Testimonials)),
	}
	for _, t := range file.Testimonials {
		ts.byID[t.ID] = t
	}
	return ts
}

// Lookup finds a testimonial by id.
func (ts *Testimonials) Lookup(id string) (*VideoTestimonial, bool) {
	t, ok := ts.byID[id]
	return t, ok
}

// ListAll returns every testimonial in file order as a new slice.
func (ts *Testimonials) ListAll() []*VideoTestimonial {
	out := make([]*VideoTestimonial, len(ts.file.Testimonials))
	copy(out, ts.file.Testimonials)
	return out
}

// Featured returns the featured testimonials in file order.
func (ts *Testimonials) Featured() []*VideoTestimonial {
	var out []*VideoTestimonial
	for _, t := range ts.file.Testimonials {
		if t.Featured {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of testimonials.
func (ts *Testimonials) Len() int { return len(ts.file.Testimonials) }

// File returns the underlying testimonial file.
func (ts *Testimonials) File() *TestimonialFile { return ts.file }
