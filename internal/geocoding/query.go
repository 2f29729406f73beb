package geocoding

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// DefaultCountry is assumed for ZIP codes and two-part "City, State" queries
const DefaultCountry = "us"

var (
	// ErrEmptyQuery is returned when the search box holds nothing but whitespace
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrInvalidQuery is returned for input such as "Chatham,,MA"
	ErrInvalidQuery = errors.New("invalid query")
)

var (
	zipPattern     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	separatorRegex = regexp.MustCompile(`\s*,\s*`)
)

// QueryKind tells which geocoding endpoint a query is answered by
type QueryKind int

const (
	KindPlace QueryKind = iota // geo/1.0/direct
	KindZip                    // geo/1.0/zip
)

func (k QueryKind) String() string {
	if k == KindZip {
		return "zip"
	}
	return "place"
}

// Query is a parsed search box entry
type Query struct {
	Kind    QueryKind
	Zip     string // five digits, KindZip only
	City    string
	State   string
	Country string
}

// ParseQuery decides whether input is a ZIP code, a bare place name, a
// "City, State" pair (in defaultCountry) or a "City, State, Country" triple.
// Parts beyond the third are ignored.
func ParseQuery(input, defaultCountry string) (Query, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}, ErrEmptyQuery
	}
	if defaultCountry == "" {
		defaultCountry = DefaultCountry
	}

	parts := separatorRegex.Split(input, -1)
	for _, p := range parts {
		if p == "" {
			return Query{}, fmt.Errorf("%w %q: empty component", ErrInvalidQuery, input)
		}
	}

	switch len(parts) {
	case 1:
		if isZipcode(parts[0]) {
			return Query{Kind: KindZip, Zip: parts[0][:5], Country: defaultCountry}, nil
		}
		return Query{Kind: KindPlace, City: parts[0]}, nil
	case 2:
		return Query{Kind: KindPlace, City: parts[0], State: parts[1], Country: defaultCountry}, nil
	default:
		return Query{Kind: KindPlace, City: parts[0], State: parts[1], Country: parts[2]}, nil
	}
}

// Key is the canonical comma-joined form, e.g. "02633,us" or "Chatham,MA,us".
// It doubles as the q/zip parameter value sent to the API.
func (q Query) Key() string {
	if q.Kind == KindZip {
		return q.Zip + "," + q.Country
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{q.City, q.State, q.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ",")
}

// Values returns the geocoding request parameters for q, excluding appid.
// ZIP queries use the zip parameter; everything else uses q with a limit.
func (q Query) Values(limit int) url.Values {
	v := url.Values{}
	if q.Kind == KindZip {
		v.Set("zip", q.Key())
		return v
	}
	v.Set("q", q.Key())
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func (q Query) String() string {
	return q.Key()
}

// isZipcode checks if a string looks like a US zipcode
func isZipcode(s string) bool {
	return zipPattern.MatchString(s)
}
