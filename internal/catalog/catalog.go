// Package catalog loads the periods and events a timeline is attached to.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/jwulff/strata/internal/db"
	"github.com/jwulff/strata/internal/timeline"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is an ordered snapshot of periods and events.
type Catalog struct {
	Periods []timeline.Period
	Events  []timeline.HistoricalEvent
}

type fileCatalog struct {
	Periods []filePeriod `yaml:"periods"`
	Events  []fileEvent  `yaml:"events"`
}

type filePeriod struct {
	Name  string  `yaml:"name"`
	Begin float64 `yaml:"begin"`
	End   float64 `yaml:"end"`
	Color string  `yaml:"color"`
}

type fileEvent struct {
	Time        float64 `yaml:"time"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description,omitempty"`
}

// Default returns the built-in Phanerozoic catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{}
	for _, p := range fc.Periods {
		color, err := ParseColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("period %q: %w", p.Name, err)
		}
		c.Periods = append(c.Periods, timeline.Period{
			Name:  p.Name,
			Begin: p.Begin,
			End:   p.End,
			Color: color,
		})
	}
	for _, e := range fc.Events {
		c.Events = append(c.Events, timeline.HistoricalEvent{
			Time:        e.Time,
			Title:       e.Title,
			Description: e.Description,
		})
	}
	return c, nil
}

// Marshal encodes c as YAML.
func Marshal(c *Catalog) ([]byte, error) {
	var fc fileCatalog
	for _, p := range c.Periods {
		fc.Periods = append(fc.Periods, filePeriod{
			Name:  p.Name,
			Begin: p.Begin,
			End:   p.End,
			Color: p.Color.Hex(),
		})
	}
	for _, e := range c.Events {
		fc.Events = append(fc.Events, fileEvent{
			Time:        e.Time,
			Title:       e.Title,
			Description: e.Description,
		})
	}
	return yaml.Marshal(fc)
}

// Load reads a catalog from a YAML file or a SQLite database, chosen by
// extension. An empty path loads the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	if IsDatabase(path) {
		store, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return FromStore(store)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// IsDatabase reports whether path names a SQLite catalog.
func IsDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".sqlite3", ".db":
		return true
	}
	return false
}

// FromStore reads the full catalog out of a store.
func FromStore(store *db.Store) (*Catalog, error) {
	periods, err := store.Periods()
	if err != nil {
		return nil, err
	}
	events, err := store.Events()
	if err != nil {
		return nil, err
	}
	return &Catalog{Periods: periods, Events: events}, nil
}

// Attach replaces state's snapshots with c's, periods first. Both are
// validated before either is attached.
func (c *Catalog) Attach(state *timeline.State) error {
	probe := timeline.New()
	if err := probe.AttachPeriods(c.Periods); err != nil {
		return err
	}
	if err := probe.AttachEvents(c.Events); err != nil {
		return err
	}

	if err := state.AttachPeriods(c.Periods); err != nil {
		return err
	}
	return state.AttachEvents(c.Events)
}

// ParseColor parses a #rrggbb color. An empty string is gray.
func ParseColor(s string) (timeline.RGB, error) {
	if s == "" {
		return timeline.RGB{R: 0x80, G: 0x80, B: 0x80}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return timeline.RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return timeline.RGB{R: r, G: g, B: b}, nil
}
