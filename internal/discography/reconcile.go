package discography

import "fmt"

// MatchMode selects how catalog and reference titles are compared
type MatchMode int

const (
	// MatchExact compares trimmed, whitespace-collapsed, case-folded titles.
	MatchExact MatchMode = iota

	// MatchEditionInsensitive additionally drops trailing edition suffixes
	// such as "(Deluxe Edition)" or "- Remastered 2009" before comparing.
	// Titles that still differ after stripping are excluded.
	MatchEditionInsensitive
)

// String returns the configuration name of the MatchMode
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchEditionInsensitive:
		return "edition-insensitive"
	default:
		return "unknown"
	}
}

// ParseMatchMode converts a configuration value into a MatchMode.
// An empty string selects MatchExact.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "exact":
		return MatchExact, nil
	case "edition-insensitive":
		return MatchEditionInsensitive, nil
	default:
		return MatchExact, fmt.Errorf("unknown match mode %q (want exact or edition-insensitive)", s)
	}
}

func (m MatchMode) key(title string) string {
	if m == MatchEditionInsensitive {
		return normalizeEditionInsensitive(title)
	}
	return NormalizeTitle(title)
}

// Reconcile returns the catalog albums whose titles exactly match a
// reference title after normalization.
//
// The result keeps the catalog's order and holds each normalized title at
// most once (the first catalog occurrence wins). An empty reference list
// yields an empty result: unmatched catalog albums are never let through.
func Reconcile(catalog, reference []Album) []Album {
	return ReconcileWith(catalog, reference, MatchExact)
}

// ReconcileWith is Reconcile with an explicit MatchMode.
func ReconcileWith(catalog, reference []Album, mode MatchMode) []Album {
	result := []Album{}
	if len(catalog) == 0 || len(reference) == 0 {
		return result
	}

	canonical := make(map[string]Album, len(reference))
	for _, r := range reference {
		k := mode.key(r.Title)
		if k == "" {
			continue
		}
		if _, ok := canonical[k]; !ok {
			canonical[k] = r
		}
	}

	seen := make(map[string]struct{}, len(canonical))
	for _, a := range catalog {
		k := mode.key(a.Title)
		ref, ok := canonical[k]
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if a.Link == "" {
			a.Link = ref.Link
		}
		result = append(result, a)
	}

	return result
}
