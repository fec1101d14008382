package generator

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestGetSuggestions(t *testing.T) {
	g := newTestGenerator(t)

	t.Run("keyword match", func(t *testing.T) {
		got := g.GetSuggestions("something about customers")
		if len(got) == 0 {
			t.Fatal("GetSuggestions() returned nothing")
		}
		found := false
		for _, s := range got {
			if strings.Contains(s, "customers") {
				found = true
			}
		}
		if !found {
			t.Errorf("GetSuggestions() = %v, want a customer example", got)
		}
	})

	t.Run("never empty", func(t *testing.T) {
		if got := g.GetSuggestions("zzzzz"); len(got) == 0 {
			t.Error("GetSuggestions() returned nothing for unmatched input")
		}
	})

	t.Run("no duplicates", func(t *testing.T) {
		got := g.GetSuggestions("gallery sales by gallery")
		seen := make(map[string]bool)
		for _, s := range got {
			if seen[s] {
				t.Errorf("duplicate suggestion %q", s)
			}
			seen[s] = true
		}
	})
}

func TestValidateInput(t *testing.T) {
	g := newTestGenerator(t)

	cases := []struct {
		name   string
		input  string
		substr string
		valid  bool
	}{
		{name: "empty", input: "", substr: "please enter a question"},
		{name: "whitespace only", input: "   ", substr: "please enter a question"},
		{name: "too short", input: "hi", substr: "too short"},
		{name: "too long", input: strings.Repeat("x", 501), substr: "too long"},
		{name: "implausible year", input: "sales in 1995", substr: "before 2000"},
		{name: "valid", input: "top customers this year", valid: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := g.ValidateInput(tc.input)
			if tc.valid {
				if len(issues) != 0 {
					t.Errorf("ValidateInput(%q) = %v, want none", tc.input, issues)
				}
				return
			}
			found := false
			for _, issue := range issues {
				if strings.Contains(issue, tc.substr) {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateInput(%q) = %v, want issue containing %q", tc.input, issues, tc.substr)
			}
		})
	}
}

func TestGetAvailableTemplates(t *testing.T) {
	g := newTestGenerator(t)

	got := g.GetAvailableTemplates()
	if len(got) != 7 {
		t.Fatalf("GetAvailableTemplates() = %d entries, want 7", len(got))
	}
	for _, info := range got {
		if info.Name == "" || info.Description == "" {
			t.Errorf("incomplete template info %+v", info)
		}
	}
}

func TestGetSchemaInfo(t *testing.T) {
	uninitialized := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if uninitialized.GetSchemaInfo() != nil {
		t.Error("GetSchemaInfo() before Initialize should be nil")
	}

	g := newTestGenerator(t)
	info := g.GetSchemaInfo()
	if info == nil {
		t.Fatal("GetSchemaInfo() = nil after Initialize")
	}
	if len(info.Tables) != 5 || len(info.Relationships) != 4 {
		t.Errorf("SchemaInfo = %+v, want 5 tables and 4 relationships", info)
	}
	if info.KeywordCount == 0 {
		t.Error("KeywordCount = 0, want > 0")
	}
}
