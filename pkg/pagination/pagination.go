package pagination

import "strconv"

const (
	// DefaultLimit is the page size used when the client sends no usable limit.
	DefaultLimit  = 20
	DefaultOffset = 0
)

// Sort is one of the closed set of listing orders. Anything outside the set
// resolves to SortActive.
type Sort string

const (
	SortNewest   Sort = "newest"   // creation time, newest first
	SortOldest   Sort = "oldest"   // creation time, oldest first
	SortActive   Sort = "active"   // last activity, most recent first
	SortPopular  Sort = "popular"  // view count, highest first
	SortEngaging Sort = "engaging" // total reactions, highest first
)

// Params holds validated limit/offset/sort values for a listing request.
type Params struct {
	Limit  int
	Offset int
	Sort   Sort
}

// Parse normalizes raw query values into bounded Params. Absent, non-numeric
// or negative limit/offset fall back to the defaults; malformed input is never
// an error. An unrecognized sort resolves to SortActive.
func Parse(limit, offset, sort string) Params {
	p := Params{
		Limit:  parseBounded(limit, DefaultLimit),
		Offset: parseBounded(offset, DefaultOffset),
		Sort:   ResolveSort(sort),
	}
	// A zero limit would render every page empty; treat it like an absent value.
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// ResolveSort maps a raw sort value onto the closed enumeration.
func ResolveSort(raw string) Sort {
	switch Sort(raw) {
	case SortNewest, SortOldest, SortActive, SortPopular, SortEngaging:
		return Sort(raw)
	default:
		return SortActive
	}
}

func parseBounded(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
