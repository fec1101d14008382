package templates

import (
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("All() = %d templates, want 7", len(all))
	}
	if all[0].Name != "top_customers" || all[len(all)-1].Name != "customer_list" {
		t.Errorf("catalog order changed: first %q last %q", all[0].Name, all[len(all)-1].Name)
	}
	for _, tpl := range all {
		if tpl.Name == "" || tpl.SQL == "" || len(tpl.RequiredTables) == 0 {
			t.Errorf("template %+v incomplete", tpl)
		}
		if !strings.Contains(tpl.SQL, "{where_clause}") {
			t.Errorf("template %q has no where_clause placeholder", tpl.Name)
		}
	}
}

func TestGet(t *testing.T) {
	tpl, ok := Get("gallery_sales")
	if !ok {
		t.Fatal("Get(gallery_sales) not found")
	}
	if tpl.Title != "Sales by gallery" {
		t.Errorf("Title = %q", tpl.Title)
	}
	if _, ok := Get("no_such_template"); ok {
		t.Error("Get(no_such_template) = ok, want miss")
	}
}

func TestFindBest(t *testing.T) {
	cases := []struct {
		name     string
		keywords []string
		intent   string
		want     string
	}{
		{
			name:     "keyword majority",
			keywords: []string{"top", "customer", "spending"},
			intent:   "",
			want:     "top_customers",
		},
		{
			name:     "intent boost decides",
			keywords: []string{"sales", "total"},
			intent:   "gallery_sales",
			want:     "gallery_sales",
		},
		{
			name:     "intent alone",
			keywords: nil,
			intent:   "customer_list",
			want:     "customer_list",
		},
		{
			name:     "tie goes to earlier declaration",
			keywords: []string{"total"},
			intent:   "",
			want:     "top_customers",
		},
		{
			name:     "no signal",
			keywords: []string{"weather"},
			intent:   "unknown",
			want:     "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FindBest(tc.keywords, tc.intent); got != tc.want {
				t.Errorf("FindBest(%v, %q) = %q, want %q", tc.keywords, tc.intent, got, tc.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := Process("top_customers", nil)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if !strings.Contains(p.Query, "SELECT TOP 10") {
			t.Errorf("Query missing default limit:\n%s", p.Query)
		}
		if !strings.Contains(p.Query, "ORDER BY TotalSpend DESC") {
			t.Errorf("Query missing default direction:\n%s", p.Query)
		}
		if strings.Contains(p.Query, "{") {
			t.Errorf("Query has unresolved placeholders:\n%s", p.Query)
		}
	})

	t.Run("param overrides", func(t *testing.T) {
		p, err := Process("top_customers", map[string]string{
			"limit":      "5",
			"order_dir":  "ASC",
			"conditions": "YEAR(s.SaleDate) = 2024",
		})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		for _, want := range []string{"SELECT TOP 5", "ORDER BY TotalSpend ASC", "WHERE YEAR(s.SaleDate) = 2024"} {
			if !strings.Contains(p.Query, want) {
				t.Errorf("Query missing %q:\n%s", want, p.Query)
			}
		}
	})

	t.Run("empty conditions blank the where clause", func(t *testing.T) {
		p, err := Process("customer_list", map[string]string{"conditions": "  "})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if strings.Contains(p.Query, "WHERE") {
			t.Errorf("Query has stray WHERE:\n%s", p.Query)
		}
	})

	t.Run("period selector month", func(t *testing.T) {
		p, err := Process("sales_by_period", nil)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if !strings.Contains(p.Query, "FORMAT(s.SaleDate, 'yyyy-MM')") {
			t.Errorf("Query missing month selector:\n%s", p.Query)
		}
	})

	t.Run("period selector quarter", func(t *testing.T) {
		p, err := Process("sales_by_period", map[string]string{"period": "quarter"})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if !strings.Contains(p.Query, "DATEPART(QUARTER, s.SaleDate)") {
			t.Errorf("Query missing quarter selector:\n%s", p.Query)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		if _, err := Process("no_such_template", nil); err == nil {
			t.Error("Process() expected error for unknown template")
		}
	})

	t.Run("required tables carried through", func(t *testing.T) {
		p, err := Process("order_details", nil)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if len(p.RequiredTables) != 3 {
			t.Errorf("RequiredTables = %v, want 3 tables", p.RequiredTables)
		}
	})
}

func TestStripPlaceholders(t *testing.T) {
	got := StripPlaceholders("SELECT * FROM Sales {additional_where} ORDER BY {sort_col}")
	if strings.Contains(got, "{") {
		t.Errorf("StripPlaceholders left placeholders: %q", got)
	}
}
