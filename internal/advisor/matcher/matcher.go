// Package matcher maps an observed color signature to the nearest catalog dish.
package matcher

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/smart-spoon-core/advisor/internal/advisor/catalog"
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

// ErrUnmatchable is attached to a degraded result when no distance could be computed,
// for example when a channel of the signature is NaN.
var ErrUnmatchable = errors.New("signature has no finite distance to any catalog color")

// TieBreak decides which profile wins when two colors are exactly equidistant.
type TieBreak string

const (
	// TieBreakCatalogOrder keeps the first minimum encountered in declaration order.
	TieBreakCatalogOrder TieBreak = "catalog"
	// TieBreakName prefers the lexicographically smallest profile name.
	TieBreakName TieBreak = "name"
)

// ParseTieBreak maps a config value to a TieBreak; unknown values keep catalog order.
func ParseTieBreak(v string) TieBreak {
	if TieBreak(v) == TieBreakName {
		return TieBreakName
	}
	return TieBreakCatalogOrder
}

type Option func(*Matcher)

// WithRand sets the source used for the degraded fallback pick.
func WithRand(r *rand.Rand) Option {
	return func(m *Matcher) {
		if r != nil {
			m.rng = r
		}
	}
}

// WithSeed seeds the fallback source; 0 keeps the clock-seeded default.
func WithSeed(seed int64) Option {
	return func(m *Matcher) {
		if seed != 0 {
			m.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		}
	}
}

func WithTieBreak(tb TieBreak) Option {
	return func(m *Matcher) {
		m.tieBreak = tb
	}
}

// Matcher finds the catalog entry closest to an observed color.
// It is not safe for concurrent use because the fallback source is not.
type Matcher struct {
	catalog  *catalog.Catalog
	rng      *rand.Rand
	tieBreak TieBreak
}

func New(cat *catalog.Catalog, opts ...Option) *Matcher {
	now := uint64(time.Now().UnixNano())
	m := &Matcher{
		catalog:  cat,
		rng:      rand.New(rand.NewPCG(now, now>>1)),
		tieBreak: TieBreakCatalogOrder,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the profile owning the globally smallest distance across every
// profile and every one of its representative colors.
func (m *Matcher) Match(observed model.ColorSignature) model.MatchResult {
	var (
		best    *model.FoodProfile
		minDist = math.Inf(1)
	)

	profiles := m.catalog.All()
	for i := range profiles {
		p := &profiles[i]
		for _, c := range p.Colors {
			d := Distance(observed, c)
			switch {
			case d < minDist:
				minDist, best = d, p
			case d == minDist && m.tieBreak == TieBreakName && best != nil && p.Name < best.Name:
				best = p
			}
		}
	}

	if best == nil {
		return m.degrade(ErrUnmatchable)
	}

	logx.Debug().
		Str("food", best.Name).
		Float64("distance", minDist).
		Floats64("signature", []float64{observed.R, observed.G, observed.B}).
		Msg("color matched")

	return model.MatchResult{
		Outcome:  model.Matched,
		Profile:  *best,
		Distance: minDist,
	}
}

// Resolve matches observed unless the signature could not be produced, in which
// case it picks a uniformly random profile. It always returns a profile.
func (m *Matcher) Resolve(observed model.ColorSignature, sigErr error) model.MatchResult {
	if sigErr != nil {
		return m.degrade(sigErr)
	}
	return m.Match(observed)
}

func (m *Matcher) degrade(cause error) model.MatchResult {
	profiles := m.catalog.All()
	pick := profiles[m.rng.IntN(len(profiles))]

	logx.Warn().Err(cause).Str("food", pick.Name).Msg("color analysis failed, picked a random dish")

	return model.MatchResult{
		Outcome:  model.Degraded,
		Profile:  pick,
		Distance: math.NaN(),
		Err:      cause,
	}
}

// Distance is the Euclidean distance between a signature and a catalog color.
func Distance(a model.ColorSignature, b model.RGB) float64 {
	dr := a.R - float64(b.R)
	dg := a.G - float64(b.G)
	db := a.B - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
