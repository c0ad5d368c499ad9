// Package catalog loads per-model grading parameters from a YAML catalog.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// ErrModelNotFound is returned by Lookup for ids missing from the catalog.
var ErrModelNotFound = errors.New("model not found")

// Model is one catalog entry.
type Model struct {
	ID   string `json:"id"   yaml:"-"`
	Name string `json:"name" yaml:"name"`

	// BasePrice is the reference price for the three-tier model. Zero means
	// the A+ ceiling is used.
	BasePrice float64 `json:"base_price,omitempty" yaml:"base_price,omitempty"`

	Params domain.GradingParams `json:"params" yaml:",inline"`
}

// SimpleBasePrice returns the price the three-tier model starts from.
func (m *Model) SimpleBasePrice() float64 {
	if m.BasePrice > 0 {
		return m.BasePrice
	}
	return m.Params.CeilingAPlus
}

// clone returns a copy that shares no pointers with m.
func (m Model) clone() Model {
	if m.Params.FloorValue != nil {
		v := *m.Params.FloorValue
		m.Params.FloorValue = &v
	}
	if m.Params.FunctionalPenaltyPct != nil {
		v := *m.Params.FunctionalPenaltyPct
		m.Params.FunctionalPenaltyPct = &v
	}
	return m
}

// Catalog is an immutable set of models. It is safe for concurrent use.
type Catalog struct {
	models map[string]Model
}

type file struct {
	Models map[string]Model `yaml:"models"`
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // catalog path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return New(f.Models)
}

// New builds a catalog from models keyed by id, validating every entry.
func New(models map[string]Model) (*Catalog, error) {
	if len(models) == 0 {
		return nil, errors.New("catalog has no models")
	}

	c := &Catalog{models: make(map[string]Model, len(models))}

	var errs []error
	for _, id := range sortedKeys(models) {
		m := models[id]
		if strings.TrimSpace(id) == "" {
			errs = append(errs, errors.New("model with empty id"))
			continue
		}
		if err := m.Params.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("model %s: %w", id, err))
			continue
		}
		m.ID = id
		c.models[id] = m.clone()
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	return c, nil
}

// Lookup returns a copy of the model with the given id.
func (c *Catalog) Lookup(id string) (Model, error) {
	m, ok := c.models[id]
	if !ok {
		return Model{}, fmt.Errorf("%s: %w", id, ErrModelNotFound)
	}
	return m.clone(), nil
}

// Models returns every model ordered by id.
func (c *Catalog) Models() []Model {
	out := make([]Model, 0, len(c.models))
	for _, id := range sortedKeys(c.models) {
		out = append(out, c.models[id].clone())
	}
	return out
}

// Len returns the number of models.
func (c *Catalog) Len() int {
	return len(c.models)
}

func sortedKeys(m map[string]Model) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
