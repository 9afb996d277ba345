package species

import (
	"errors"
	"fmt"

	"plantagotchi/internal/domain/plant"
)

var ErrInvalidCatalog = errors.New("invalid species catalog")

type Entry struct {
	Profile  plant.SpeciesProfile
	Problems []plant.ProblemDefinition
}

// Catalog is an ordered, read-only set of species. Problem order inside an
// entry is significant: diagnosis picks the first matching problem.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

func NewCatalog(entries ...Entry) Catalog {
	c := Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, dup := c.index[e.Profile.ID]; dup {
			continue
		}
		c.index[e.Profile.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

func (c Catalog) Lookup(id string) (plant.SpeciesProfile, bool) {
	i, ok := c.index[id]
	if !ok {
		return plant.SpeciesProfile{}, false
	}
	return c.entries[i].Profile, true
}

func (c Catalog) Problems(id string) []plant.ProblemDefinition {
	i, ok := c.index[id]
	if !ok {
		return nil
	}
	return append([]plant.ProblemDefinition(nil), c.entries[i].Problems...)
}

func (c Catalog) List() []plant.SpeciesProfile {
	out := make([]plant.SpeciesProfile, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Profile)
	}
	return out
}

func (c Catalog) IDs() []string {
	out := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Profile.ID)
	}
	return out
}

func (c Catalog) Validate() error {
	var errs []error
	for key, i := range c.index {
		e := c.entries[i]
		p := e.Profile
		if p.ID != key {
			errs = append(errs, fmt.Errorf("species %s: id mismatch %q", key, p.ID))
		}
		if len(p.Stages) == 0 {
			errs = append(errs, fmt.Errorf("species %s: no stages defined", key))
		}
		for name, r := range map[string]plant.Range{
			"water":       p.Optimal.Water,
			"light":       p.Optimal.Light,
			"temperature": p.Optimal.Temperature,
		} {
			if !r.Valid() {
				errs = append(errs, fmt.Errorf("species %s: %s range min %v > max %v", key, name, r.Min, r.Max))
			}
		}
		seen := map[string]bool{}
		for _, prob := range e.Problems {
			if seen[prob.ID] {
				errs = append(errs, fmt.Errorf("species %s: duplicate problem %s", key, prob.ID))
			}
			seen[prob.ID] = true
			if prob.Trigger == nil || prob.Effect == nil {
				errs = append(errs, fmt.Errorf("species %s: problem %s needs trigger and effect", key, prob.ID))
			}
			if prob.Treatment != plant.TreatmentNone {
				if _, ok := plant.ParseTreatmentKind(string(prob.Treatment)); !ok {
					errs = append(errs, fmt.Errorf("species %s: problem %s has unknown treatment %q", key, prob.ID, prob.Treatment))
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}
