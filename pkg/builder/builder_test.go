package builder

import (
	"strings"
	"testing"

	"github.com/gallerydesk/nlsql/pkg/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.Parse(schema.DefaultDescription)
}

func TestBuild_Minimal(t *testing.T) {
	got := New(testSchema(t)).From("Sales", "s").Build()
	want := "SELECT *\nFROM Sales s"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuild_FullClauses(t *testing.T) {
	got := New(testSchema(t)).
		Select("c.FirstName", "SUM(s.TotalAmount) AS TotalSpend").
		From("Sales", "s").
		LeftJoin("Customers", "c", "s.CustID = c.CustID").
		Where("YEAR(s.SaleDate) = 2024").
		GroupBy("c.CustID", "c.FirstName").
		Having("SUM(s.TotalAmount) > 1000").
		OrderBy("TotalSpend DESC").
		Limit(5).
		Build()

	want := strings.Join([]string{
		"SELECT TOP 5 c.FirstName, SUM(s.TotalAmount) AS TotalSpend",
		"FROM Sales s",
		"LEFT JOIN Customers c ON s.CustID = c.CustID",
		"WHERE YEAR(s.SaleDate) = 2024",
		"GROUP BY c.CustID, c.FirstName",
		"HAVING SUM(s.TotalAmount) > 1000",
		"ORDER BY TotalSpend DESC",
	}, "\n")
	if got != want {
		t.Errorf("Build() =\n%s\nwant\n%s", got, want)
	}
}

func TestWhere_IgnoresEmpty(t *testing.T) {
	got := New(testSchema(t)).From("Sales", "s").Where("  ").Where("").Build()
	if strings.Contains(got, "WHERE") {
		t.Errorf("Build() = %q, want no WHERE", got)
	}
}

func TestWhere_MultipleAnded(t *testing.T) {
	got := New(testSchema(t)).From("Sales", "s").
		Where("a = 1").Where("b = 2").Build()
	if !strings.Contains(got, "WHERE a = 1 AND b = 2") {
		t.Errorf("Build() = %q", got)
	}
}

func TestReset(t *testing.T) {
	q := New(testSchema(t)).Select("x").From("Sales", "s").Where("a = 1").Limit(3)
	got := q.Reset().From("Customers", "c").Build()
	want := "SELECT *\nFROM Customers c"
	if got != want {
		t.Errorf("Build() after Reset = %q, want %q", got, want)
	}
}

func TestAutoJoin(t *testing.T) {
	t.Run("central plus one", func(t *testing.T) {
		got := New(testSchema(t)).Select("g.GalleryName").
			AutoJoin([]string{"Sales", "Galleries"}).Build()

		if !strings.Contains(got, "FROM Sales s") {
			t.Errorf("Build() missing FROM Sales:\n%s", got)
		}
		if !strings.Contains(got, "LEFT JOIN Galleries g ON s.GalleryID = g.GalleryID") {
			t.Errorf("Build() missing gallery join:\n%s", got)
		}
	})

	t.Run("central pulled in for the chain", func(t *testing.T) {
		got := New(testSchema(t)).AutoJoin([]string{"Sales", "SaleItems"}).Build()
		if !strings.Contains(got, "LEFT JOIN SaleItems si ON si.SaleID = s.SaleID") {
			t.Errorf("Build() missing sale items join:\n%s", got)
		}
	})

	t.Run("central prepended for multi-table chains", func(t *testing.T) {
		got := New(testSchema(t)).Select("c.FirstName", "g.GalleryName").
			AutoJoin([]string{"Customers", "Galleries"}).Build()

		if !strings.Contains(got, "FROM Sales s") {
			t.Errorf("Build() missing central anchor:\n%s", got)
		}
		if !strings.Contains(got, "LEFT JOIN Customers c ON s.CustID = c.CustID") {
			t.Errorf("Build() missing customer join:\n%s", got)
		}
		if !strings.Contains(got, "LEFT JOIN Galleries g ON s.GalleryID = g.GalleryID") {
			t.Errorf("Build() missing gallery join:\n%s", got)
		}
	})

	t.Run("single non-central table", func(t *testing.T) {
		got := New(testSchema(t)).AutoJoin([]string{"Customers"}).Build()
		if !strings.Contains(got, "FROM Customers c") {
			t.Errorf("Build() = %q, want FROM Customers c", got)
		}
		if strings.Contains(got, "JOIN") {
			t.Errorf("Build() = %q, want no joins", got)
		}
	})

	t.Run("empty required set", func(t *testing.T) {
		got := New(testSchema(t)).From("Sales", "s").AutoJoin(nil).Build()
		if !strings.Contains(got, "FROM Sales s") {
			t.Errorf("Build() = %q", got)
		}
	})
}

func TestAliases(t *testing.T) {
	q := New(testSchema(t)).From("Sales", "s").
		LeftJoin("Customers", "c", "s.CustID = c.CustID")

	aliases := q.Aliases()
	if !aliases["s"] || !aliases["c"] {
		t.Errorf("Aliases() = %v, want s and c", aliases)
	}
	if aliases["g"] {
		t.Errorf("Aliases() = %v, g should be absent", aliases)
	}
}

func TestConvenienceBuilders(t *testing.T) {
	s := testSchema(t)

	t.Run("TopCustomers", func(t *testing.T) {
		got := New(s).TopCustomers(5).Build()
		for _, want := range []string{
			"SELECT TOP 5",
			"LEFT JOIN Customers c ON s.CustID = c.CustID",
			"GROUP BY c.CustID, c.FirstName, c.LastName",
			"ORDER BY TotalSpend DESC",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("Build() missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("SalespersonList", func(t *testing.T) {
		got := New(s).SalespersonList().Build()
		if !strings.Contains(got, "FROM Staff st") {
			t.Errorf("Build() missing FROM Staff:\n%s", got)
		}
		if !strings.Contains(got, "ORDER BY st.LastName, st.FirstName") {
			t.Errorf("Build() missing ordering:\n%s", got)
		}
	})

	t.Run("GallerySales", func(t *testing.T) {
		got := New(s).GallerySales().Build()
		if !strings.Contains(got, "LEFT JOIN Galleries g ON s.GalleryID = g.GalleryID") {
			t.Errorf("Build() missing gallery join:\n%s", got)
		}
	})

	t.Run("CustomerList", func(t *testing.T) {
		got := New(s).CustomerList().Build()
		if !strings.Contains(got, "c.Email") || !strings.Contains(got, "FROM Customers c") {
			t.Errorf("Build() = %s", got)
		}
	})
}
