package builder

// Convenience builders mirroring the most common templates. The generator
// uses these when template confidence is too low to be trusted but the
// intent still names a recognizable question shape.

// TopCustomers builds the customer spending ranking.
func (q *Query) TopCustomers(limit int) *Query {
	return q.Reset().
		Select("c.FirstName", "c.LastName", "SUM(s.TotalAmount) AS TotalSpend").
		From("Sales", "s").
		LeftJoin("Customers", "c", "s.CustID = c.CustID").
		GroupBy("c.CustID", "c.FirstName", "c.LastName").
		OrderBy("TotalSpend DESC").
		Limit(limit)
}

// SalespersonList builds the staff directory listing.
func (q *Query) SalespersonList() *Query {
	return q.Reset().
		Select("st.StaffID", "st.FirstName", "st.LastName", "st.Role").
		From("Staff", "st").
		OrderBy("st.LastName").
		OrderBy("st.FirstName")
}

// GallerySales builds per-gallery sale totals.
func (q *Query) GallerySales() *Query {
	return q.Reset().
		Select("g.GalleryName", "g.City", "COUNT(s.SaleID) AS SaleCount", "SUM(s.TotalAmount) AS TotalSales").
		From("Sales", "s").
		LeftJoin("Galleries", "g", "s.GalleryID = g.GalleryID").
		GroupBy("g.GalleryID", "g.GalleryName", "g.City").
		OrderBy("TotalSales DESC")
}

// SalespersonSales builds per-staff sale totals.
func (q *Query) SalespersonSales() *Query {
	return q.Reset().
		Select("st.FirstName", "st.LastName", "COUNT(s.SaleID) AS SaleCount", "SUM(s.TotalAmount) AS TotalSales").
		From("Sales", "s").
		LeftJoin("Staff", "st", "s.StaffID = st.StaffID").
		GroupBy("st.StaffID", "st.FirstName", "st.LastName").
		OrderBy("TotalSales DESC")
}

// OrderDetails builds the sale listing with customer names.
func (q *Query) OrderDetails() *Query {
	return q.Reset().
		Select("s.SaleID", "s.SaleDate", "c.FirstName", "c.LastName", "s.TotalAmount").
		From("Sales", "s").
		LeftJoin("Customers", "c", "s.CustID = c.CustID").
		OrderBy("s.SaleDate DESC")
}

// CustomerList builds the customer directory listing.
func (q *Query) CustomerList() *Query {
	return q.Reset().
		Select("c.CustID", "c.FirstName", "c.LastName", "c.City", "c.Email").
		From("Customers", "c").
		OrderBy("c.LastName").
		OrderBy("c.FirstName")
}
