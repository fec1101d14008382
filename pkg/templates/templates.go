// Package templates holds the catalog of parameterized query skeletons and
// the scoring that matches them against detected keywords.
package templates

// Template is one pre-written SQL skeleton with named placeholders.
type Template struct {
	Name           string
	Title          string
	Description    string
	SQL            string
	Defaults       map[string]string
	RequiredTables []string
	// Patterns are the keywords that vote for this template during
	// scoring.
	Patterns []string
}

// catalog is declaration-ordered; FindBest breaks score ties by this
// order, which makes template selection deterministic.
var catalog = []Template{
	{
		Name:        "top_customers",
		Title:       "Top customers by spending",
		Description: "Ranks customers by their total spend.",
		SQL: `SELECT TOP {limit} c.FirstName, c.LastName, SUM(s.TotalAmount) AS TotalSpend
FROM Sales s
LEFT JOIN Customers c ON s.CustID = c.CustID
{where_clause}
GROUP BY c.CustID, c.FirstName, c.LastName
ORDER BY TotalSpend {order_dir}`,
		Defaults:       map[string]string{"limit": "10", "order_dir": "DESC"},
		RequiredTables: []string{"Sales", "Customers"},
		Patterns:       []string{"top", "customer", "spending", "total"},
	},
	{
		Name:        "salesperson_list",
		Title:       "Salesperson directory",
		Description: "Lists all staff with their roles.",
		SQL: `SELECT st.StaffID, st.FirstName, st.LastName, st.Role
FROM Staff st
{where_clause}
ORDER BY st.LastName, st.FirstName`,
		Defaults:       map[string]string{},
		RequiredTables: []string{"Staff"},
		Patterns:       []string{"salesperson", "list"},
	},
	{
		Name:        "gallery_sales",
		Title:       "Sales by gallery",
		Description: "Totals sales per gallery.",
		SQL: `SELECT g.GalleryName, g.City, COUNT(s.SaleID) AS SaleCount, SUM(s.TotalAmount) AS TotalSales
FROM Sales s
LEFT JOIN Galleries g ON s.GalleryID = g.GalleryID
{where_clause}
GROUP BY g.GalleryID, g.GalleryName, g.City
ORDER BY TotalSales DESC`,
		Defaults:       map[string]string{},
		RequiredTables: []string{"Sales", "Galleries"},
		Patterns:       []string{"gallery", "sales", "total"},
	},
	{
		Name:        "salesperson_sales",
		Title:       "Sales by salesperson",
		Description: "Totals sales per staff member.",
		SQL: `SELECT st.FirstName, st.LastName, COUNT(s.SaleID) AS SaleCount, SUM(s.TotalAmount) AS TotalSales
FROM Sales s
LEFT JOIN Staff st ON s.StaffID = st.StaffID
{where_clause}
GROUP BY st.StaffID, st.FirstName, st.LastName
ORDER BY TotalSales DESC`,
		Defaults:       map[string]string{},
		RequiredTables: []string{"Sales", "Staff"},
		Patterns:       []string{"salesperson", "sales", "total"},
	},
	{
		Name:        "sales_by_period",
		Title:       "Sales trend by period",
		Description: "Groups sales into monthly or quarterly buckets.",
		SQL: `SELECT {period_selector} AS Period, COUNT(s.SaleID) AS SaleCount, SUM(s.TotalAmount) AS TotalSales
FROM Sales s
{where_clause}
GROUP BY {period_selector}
ORDER BY Period`,
		Defaults:       map[string]string{"period": "month"},
		RequiredTables: []string{"Sales"},
		Patterns:       []string{"sales", "monthly", "quarterly", "total"},
	},
	{
		Name:        "order_details",
		Title:       "Order details",
		Description: "Shows sales with customer and line-item breakdown.",
		SQL: `SELECT s.SaleID, s.SaleDate, c.FirstName, c.LastName, s.TotalAmount,
STRING_AGG(CONCAT(si.Quantity, ' x item ', si.ItemID), ', ') AS Items
FROM Sales s
LEFT JOIN Customers c ON s.CustID = c.CustID
LEFT JOIN SaleItems si ON si.SaleID = s.SaleID
{where_clause}
GROUP BY s.SaleID, s.SaleDate, c.FirstName, c.LastName, s.TotalAmount
ORDER BY s.SaleDate DESC`,
		Defaults:       map[string]string{},
		RequiredTables: []string{"Sales", "Customers", "SaleItems"},
		Patterns:       []string{"order", "details", "item"},
	},
	{
		Name:        "customer_list",
		Title:       "Customer directory",
		Description: "Lists customers with contact details.",
		SQL: `SELECT c.CustID, c.FirstName, c.LastName, c.City, c.Email
FROM Customers c
{where_clause}
ORDER BY c.LastName, c.FirstName`,
		Defaults:       map[string]string{},
		RequiredTables: []string{"Customers"},
		Patterns:       []string{"customer", "list"},
	},
}

// intentBoost is added when the caller's intent names the template.
const intentBoost = 2

// All returns the catalog in declaration order.
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the named template.
func Get(name string) (Template, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// FindBest scores every template against the detected keyword set: one
// point per pattern keyword present, plus a fixed boost when the intent
// query type names the template. The highest score wins; ties go to the
// earlier declaration. Returns "" when nothing scores above zero.
func FindBest(keywords []string, intentType string) string {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}

	bestName := ""
	bestScore := 0
	for _, t := range catalog {
		score := 0
		for _, p := range t.Patterns {
			if set[p] {
				score++
			}
		}
		if t.Name == intentType {
			score += intentBoost
		}
		if score > bestScore {
			bestScore = score
			bestName = t.Name
		}
	}
	return bestName
}
