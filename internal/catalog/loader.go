package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File names searched for on disk.
const (
	ServicesFileName     = "services.yaml"
	TestimonialsFileName = "testimonials.yaml"
)

//go:embed data/services.yaml data/testimonials.yaml
var defaultData embed.FS

// Parse decodes a services catalog from YAML.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	return &file, nil
}

// Load reads a services catalog from a YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// LoadAndValidate reads a catalog and checks its structure.
func LoadAndValidate(path string) (*File, error) {
	file, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	return file, nil
}

// Marshal encodes a catalog as YAML that Parse reads back unchanged.
func Marshal(file *File) ([]byte, error) {
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return data, nil
}

// Save writes a catalog to a YAML file.
func Save(path string, file *File) error {
	data, err := Marshal(file)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}

	return nil
}

// Default returns the built-in services catalog.
func Default() (*File, error) {
	data, err := defaultData.ReadFile("data/" + ServicesFileName)
	if err != nil {
		return nil, fmt.Errorf("read built-in catalog: %w", err)
	}
	return Parse(data)
}

// ParseTestimonials decodes a testimonials file from YAML.
func ParseTestimonials(data []byte) (*TestimonialFile, error) {
	var file TestimonialFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse testimonials YAML: %w", err)
	}
	return &file, nil
}

// LoadTestimonials reads a testimonials file.
func LoadTestimonials(path string) (*TestimonialFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read testimonials file: %w", err)
	}
	return ParseTestimonials(data)
}

// DefaultTestimonials returns the built-in testimonials.
func DefaultTestimonials() (*TestimonialFile, error) {
	data, err := defaultData.ReadFile("data/" + TestimonialsFileName)
	if err != nil {
		return nil, fmt.Errorf("read built-in testimonials: %w", err)
	}
	return ParseTestimonials(data)
}

// FindFile searches for catalogs/<name> starting at startDir and walking up.
func FindFile(startDir, name string) (string, error) {
	dir := startDir
	for i := 0; i < 10; i++ {
		path := filepath.Join(dir, "catalogs", name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	path := filepath.Join(startDir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s not found in %s or parent directories", name, startDir)
}

// Source describes where a dataset was loaded from.
type Source struct {
	Path     string
	Embedded bool
}

func (s Source) String() string {
	if s.Embedded {
		return "built-in"
	}
	return s.Path
}

// Resolve loads and validates the services catalog from path, or when path
// is empty from catalogs/services.yaml above startDir, falling back to the
// built-in data.
func Resolve(path, startDir string) (*File, Source, error) {
	if path == "" && startDir != "" {
		if found, err := FindFile(startDir, ServicesFileName); err == nil {
			path = found
		}
	}
	if path == "" {
		file, err := Default()
		if err == nil {
			err = file.Validate()
		}
		return file, Source{Embedded: true}, err
	}
	file, err := LoadAndValidate(path)
	return file, Source{Path: path}, err
}

// ResolveTestimonials is Resolve for testimonials.yaml.
func ResolveTestimonials(path, startDir string) (*TestimonialFile, Source, error) {
	if path == "" && startDir != "" {
		if found, err := FindFile(startDir, TestimonialsFileName); err == nil {
			path = found
		}
	}
	if path == "" {
		file, err := DefaultTestimonials()
		return file, Source{Embedded: true}, err
	}
	file, err := LoadTestimonials(path)
	return file, Source{Path: path}, err
}

// Catalog provides indexed, read-only access to services.
type Catalog struct {
	file *File
	byID map[string]*ServiceDetail
}

// NewCatalog creates an indexed catalog from a file.
func NewCatalog(file *File) *Catalog {
	c := &Catalog{
		file: file,
		byID: make(map[string]*ServiceDetail, len(file.Services)),
	}
	for _, s := range file.Services {
		c.byID[s.ID] = s
	}
	return c
}

// Lookup finds a service by id.
func (c *Catalog) Lookup(id string) (*ServiceDetail, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// ListAll returns every service in file order as a new slice.
func (c *Catalog) ListAll() []*ServiceDetail {
	out := make([]*ServiceDetail, len(c.file.Services))
	copy(out, c.file.Services)
	return out
}

// IDs returns the service ids in file order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.file.Services))
	for _, s := range c.file.Services {
		ids = append(ids, s.ID)
	}
	return ids
}

// Suggest returns ids that contain query, for "did you mean" hints.
func (c *Catalog) Suggest(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []string
	for _, s := range c.file.Services {
		if strings.Contains(s.ID, query) || strings.Contains(strings.ToLower(s.Title), query) {
			out = append(out, s.ID)
		}
	}
	return out
}

// Len returns the number of services.
func (c *Catalog) Len() int { return len(c.file.Services) }

// File returns the underlying catalog file.
func (c *Catalog) File() *File {
	return c.file
}
