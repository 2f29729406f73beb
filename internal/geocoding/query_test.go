package geocoding

import (
	"errors"
	"testing"
)

func TestIsZipcode(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"12345", true},
		{"12345-6789", true},
		{"02139", true},
		{"90210", true},
		{"1234", false},
		{"123456", false},
		{"abcde", false},
		{"12a45", false},
		{"12345-678", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isZipcode(tt.input); got != tt.expected {
				t.Errorf("isZipcode(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Query
		wantKey string
	}{
		{
			name:    "zip",
			input:   "02633",
			want:    Query{Kind: KindZip, Zip: "02633", Country: "us"},
			wantKey: "02633,us",
		},
		{
			name:    "zip plus four",
			input:   " 02633-1234 ",
			want:    Query{Kind: KindZip, Zip: "02633", Country: "us"},
			wantKey: "02633,us",
		},
		{
			name:    "bare place",
			input:   "London",
			want:    Query{Kind: KindPlace, City: "London"},
			wantKey: "London",
		},
		{
			name:    "city and state",
			input:   "Chatham, MA",
			want:    Query{Kind: KindPlace, City: "Chatham", State: "MA", Country: "us"},
			wantKey: "Chatham,MA,us",
		},
		{
			name:    "city state country",
			input:   "Halifax ,NS,  ca",
			want:    Query{Kind: KindPlace, City: "Halifax", State: "NS", Country: "ca"},
			wantKey: "Halifax,NS,ca",
		},
		{
			name:    "extra parts ignored",
			input:   "Springfield, IL, us, planet earth",
			want:    Query{Kind: KindPlace, City: "Springfield", State: "IL", Country: "us"},
			wantKey: "Springfield,IL,us",
		},
		{
			name:    "four digits is a place",
			input:   "1234",
			want:    Query{Kind: KindPlace, City: "1234"},
			wantKey: "1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.input, "")
			if err != nil {
				t.Fatalf("ParseQuery(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", got.Key(), tt.wantKey)
			}
		})
	}
}

func TestParseQuery_DefaultCountry(t *testing.T) {
	q, err := ParseQuery("10115", "de")
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}
	if q.Key() != "10115,de" {
		t.Errorf("Key() = %q, want 10115,de", q.Key())
	}
}

func TestParseQuery_Errors(t *testing.T) {
	if _, err := ParseQuery("   ", "us"); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("blank query error = %v, want ErrEmptyQuery", err)
	}

	for _, input := range []string{"Chatham,", ",MA", "a,,b"} {
		if _, err := ParseQuery(input, "us"); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("ParseQuery(%q) error = %v, want ErrInvalidQuery", input, err)
		}
	}
}

func TestQueryValues(t *testing.T) {
	zip := Query{Kind: KindZip, Zip: "02633", Country: "us"}
	v := zip.Values(5)
	if v.Get("zip") != "02633,us" {
		t.Errorf("zip = %q, want 02633,us", v.Get("zip"))
	}
	if v.Has("limit") || v.Has("q") {
		t.Errorf("zip query should carry only zip, got %v", v)
	}

	place := Query{Kind: KindPlace, City: "Chatham", State: "MA", Country: "us"}
	v = place.Values(5)
	if v.Get("q") != "Chatham,MA,us" {
		t.Errorf("q = %q, want Chatham,MA,us", v.Get("q"))
	}
	if v.Get("limit") != "5" {
		t.Errorf("limit = %q, want 5", v.Get("limit"))
	}
}
