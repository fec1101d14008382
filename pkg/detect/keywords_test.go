package detect

import (
	"testing"

	"github.com/gallerydesk/nlsql/pkg/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.Parse(schema.DefaultDescription)
}

func TestDetectKeywords_Synonyms(t *testing.T) {
	cases := []struct {
		word string
		want string
	}{
		{"clients", "customer"},
		{"best", "top"},
		{"revenue", "sales"},
		{"show", "list"},
		{"spent", "spending"},
		{"reps", "salesperson"},
	}
	s := testSchema(t)
	for _, tc := range cases {
		d := DetectKeywords(Tokenize(tc.word), s)
		if !d.Has(tc.want) {
			t.Errorf("DetectKeywords(%q) = %v, want %q", tc.word, d.Keywords, tc.want)
		}
	}
}

func TestDetectKeywords_SynonymAndSchemaBothFire(t *testing.T) {
	d := DetectKeywords(Tokenize("customers"), testSchema(t))

	var sources []string
	for _, m := range d.Matched {
		if m.Term == "customers" {
			sources = append(sources, m.Source)
		}
	}
	if len(sources) != 2 {
		t.Fatalf("Matched sources for customers = %v, want synonym and schema", sources)
	}
	if !d.Has("customer") || !d.Has("customers") {
		t.Errorf("Keywords = %v, want both canonical and schema forms", d.Keywords)
	}
}

func TestDetectKeywords_NilSchema(t *testing.T) {
	d := DetectKeywords(Tokenize("top customers"), nil)
	if !d.Has("top") || !d.Has("customer") {
		t.Errorf("Keywords = %v, want synonym matches without a schema", d.Keywords)
	}
	for _, m := range d.Matched {
		if m.Source == "schema" {
			t.Errorf("unexpected schema match %+v with nil schema", m)
		}
	}
}

func TestDetectKeywords_DeduplicatesCanonical(t *testing.T) {
	d := DetectKeywords(Tokenize("show list display"), testSchema(t))

	count := 0
	for _, k := range d.Keywords {
		if k == "list" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("canonical keyword list appears %d times, want 1", count)
	}
	if len(d.Matched) < 3 {
		t.Errorf("Matched = %v, want every term traced", d.Matched)
	}
}

func TestDetection_HasAny(t *testing.T) {
	d := DetectKeywords(Tokenize("monthly sales"), testSchema(t))
	if !d.HasAny("quarterly", "monthly") {
		t.Error("HasAny(quarterly, monthly) = false, want true")
	}
	if d.HasAny("gallery", "customer") {
		t.Error("HasAny(gallery, customer) = true, want false")
	}
}

func TestCityIn(t *testing.T) {
	city, ok := cityIn([]string{"customers", "in", "london"})
	if !ok || city != "london" {
		t.Errorf("cityIn = %q, %v, want london, true", city, ok)
	}
	if _, ok := cityIn([]string{"customers", "in", "paris"}); ok {
		t.Error("cityIn found unknown city")
	}
}
