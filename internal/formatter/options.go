package formatter

// Field groups expandable inside an include list. A group name in the
// include expands to its member fields.
var Groups = map[string][]string{
	"coords":    {"lat", "lng"},
	"pricing":   {"is_free", "price_cents", "pricing_model"},
	"labels":    {"name", "address_line", "place_hint", "access_method"},
	"counts":    {"reviews_count", "photos_count"},
	"meta":      {"created_at", "updated_at"},
	"relations": {"category", "wilaya", "owner", "photos", "open_hours", "is_favorite"},
}

// Options controls a single projection.
type Options struct {
	// All short-circuits include resolution: every field is wanted.
	All bool
	// Include lists wanted field names; group names expand. A nil or
	// empty resolved set means everything.
	Include []string
	// Exclude always wins, even over All.
	Exclude []string

	// DropNulls removes null-valued keys from the final map.
	DropNulls bool
	// DropEmptyArrays removes keys holding empty lists.
	DropEmptyArrays bool

	// Lang selects the label language for amenity and rule metadata.
	Lang string
}

// includeSet is the resolved form of Options: either unfiltered, or a
// positive name set, always paired with the exclusions.
type includeSet struct {
	unfiltered bool
	names      map[string]bool
	exclude    map[string]bool
}

func resolveIncludes(opts Options) includeSet {
	set := includeSet{exclude: map[string]bool{}}
	for _, name := range opts.Exclude {
		if name != "" {
			set.exclude[name] = true
		}
	}

	if opts.All {
		set.unfiltered = true
		return set
	}

	names := map[string]bool{}
	for _, token := range opts.Include {
		switch token {
		case "":
			continue
		case "all", "*", "everything":
			set.unfiltered = true
			return set
		}
		if members, ok := Groups[token]; ok {
			for _, f := range members {
				names[f] = true
			}
			continue
		}
		names[token] = true
	}

	// An include list that resolves to nothing behaves like no include
	// list at all.
	if len(names) == 0 {
		set.unfiltered = true
		return set
	}

	set.names = names
	return set
}

func (s includeSet) want(field string) bool {
	if s.exclude[field] {
		return false
	}
	if s.unfiltered {
		return true
	}
	return s.names[field]
}
