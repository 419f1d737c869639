package store

import (
	"fmt"
	"strings"
)

// FilterField selects the optional field a Filter inspects
type FilterField int

const (
	// NoFilter matches every credential
	NoFilter FilterField = iota
	// TagFilter matches on the credential tag
	TagFilter
	// SiteFilter matches on the credential site
	SiteFilter
)

// String returns the field name used in filter expressions
func (f FilterField) String() string {
	switch f {
	case TagFilter:
		return "tag"
	case SiteFilter:
		return "site"
	default:
		return ""
	}
}

// Filter restricts search results by a case-sensitive prefix of tag or site.
// The zero value matches everything.
type Filter struct {
	Field FilterField
	Value string
}

// Tag returns a filter on the tag field
func Tag(value string) Filter {
	return Filter{Field: TagFilter, Value: value}
}

// Site returns a filter on the site field
func Site(value string) Filter {
	return Filter{Field: SiteFilter, Value: value}
}

// ParseFilter parses "<field>/<value>" where field is tag or site.
// An empty expression yields the zero Filter.
func ParseFilter(expr string) (Filter, error) {
	if expr == "" {
		return Filter{}, nil
	}

	field, value, ok := strings.Cut(expr, "/")
	if !ok {
		return Filter{}, fmt.Errorf("%w: %q (expected <field>/<value> with field tag or site)", ErrUnexpectedFilterSyntax, expr)
	}

	switch field {
	case "tag":
		return Tag(value), nil
	case "site":
		return Site(value), nil
	default:
		return Filter{}, fmt.Errorf("%w: unknown field %q (expected tag or site)", ErrUnexpectedFilterSyntax, field)
	}
}

// Match reports whether c passes the filter
func (f Filter) Match(c Credential) bool {
	var field string
	switch f.Field {
	case NoFilter:
		return true
	case TagFilter:
		field = c.Tag
	case SiteFilter:
		field = c.Site
	}

	// An absent field never matches a non-empty value
	if field == "" {
		return f.Value == ""
	}
	return strings.HasPrefix(field, f.Value)
}

// String renders the filter back to its expression form
func (f Filter) String() string {
	if f.Field == NoFilter {
		return ""
	}
	return f.Field.String() + "/" + f.Value
}
