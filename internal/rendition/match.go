package rendition

import (
	"sort"
	"strconv"

	"vimeomover/internal/models"
)

type MatchKind int

const (
	NoVariantAvailable MatchKind = iota
	MatchExact
	MatchBelow
	MatchAbove
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchBelow:
		return "nearest-below"
	case MatchAbove:
		return "nearest-above"
	default:
		return "none"
	}
}

// Match is the outcome of matching one video against a target key.
// Variant is only meaningful when Kind is not NoVariantAvailable.
type Match struct {
	Kind    MatchKind
	Variant models.Variant
}

func (m Match) Found() bool {
	return m.Kind != NoVariantAvailable
}

// QualityKey returns the leading number of a quality label, 0 if there is none.
func QualityKey(label string) int {
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	key, err := strconv.Atoi(label[:end])
	if err != nil {
		return 0
	}
	return key
}

// MatchVariant applies the exact, nearest-below, nearest-above policy.
// Variants may be in any order; on ties the earliest variant wins.
func MatchVariant(variants []models.Variant, key int) Match {
	below, above := -1, -1
	for i, v := range variants {
		k := QualityKey(v.Quality)
		switch {
		case k == key:
			return Match{Kind: MatchExact, Variant: v}
		case k < key:
			if below < 0 || k > QualityKey(variants[below].Quality) {
				below = i
			}
		default:
			if above < 0 || k < QualityKey(variants[above].Quality) {
				above = i
			}
		}
	}

	if below >= 0 {
		return Match{Kind: MatchBelow, Variant: variants[below]}
	}
	if above >= 0 {
		return Match{Kind: MatchAbove, Variant: variants[above]}
	}
	return Match{Kind: NoVariantAvailable}
}

// Labels returns the distinct quality labels across all videos, ascending by key.
func Labels(videos []models.Video) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, video := range videos {
		for _, v := range video.Variants {
			if v.Quality == "" || seen[v.Quality] {
				continue
			}
			seen[v.Quality] = true
			labels = append(labels, v.Quality)
		}
	}

	sort.SliceStable(labels, func(i, j int) bool {
		ki, kj := QualityKey(labels[i]), QualityKey(labels[j])
		if ki != kj {
			return ki < kj
		}
		return labels[i] < labels[j]
	})
	return labels
}
