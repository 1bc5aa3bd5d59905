// Package catalog holds the immutable table of known dishes.
package catalog

import (
	"strings"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	errx "github.com/smart-spoon-core/advisor/internal/core/error"
)

// Catalog is a read-only keyed table of food profiles.
// Iteration order is declaration order; the matcher relies on it for tie-breaks.
type Catalog struct {
	profiles []model.FoodProfile
	index    map[string]int
}

// New builds a catalog from the given profiles. It rejects an empty catalog,
// blank or duplicate names (case-insensitive) and profiles without colors.
func New(profiles ...model.FoodProfile) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, errx.Validation("catalog must contain at least one food profile")
	}

	c := &Catalog{
		profiles: make([]model.FoodProfile, 0, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		key := normalize(p.Name)
		if key == "" {
			return nil, errx.Validation("food profile name is empty")
		}
		if _, dup := c.index[key]; dup {
			return nil, errx.Validation("duplicate food profile %q", p.Name)
		}
		if len(p.Colors) == 0 {
			return nil, errx.Validation("food profile %q has no representative colors", p.Name)
		}
		c.index[key] = len(c.profiles)
		c.profiles = append(c.profiles, clone(p))
	}
	return c, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(profiles ...model.FoodProfile) *Catalog {
	c, err := New(profiles...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup finds a profile by name, ignoring case and surrounding spaces.
func (c *Catalog) Lookup(name string) (model.FoodProfile, bool) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return model.FoodProfile{}, false
	}
	return clone(c.profiles[i]), true
}

// All returns every profile in declaration order.
func (c *Catalog) All() []model.FoodProfile {
	out := make([]model.FoodProfile, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = clone(p)
	}
	return out
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func clone(p model.FoodProfile) model.FoodProfile {
	p.Ingredients = append([]string(nil), p.Ingredients...)
	p.Colors = append([]model.RGB(nil), p.Colors...)
	return p
}
