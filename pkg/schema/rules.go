package schema

// knownAliases is the fixed alias lookup for the five known tables.
var knownAliases = map[string]string{
	"Sales":     "s",
	"Customers": "c",
	"Staff":     "st",
	"Galleries": "g",
	"SaleItems": "si",
}

// patternRule maps a substring to the synonyms it contributes.
type patternRule struct {
	substr   string
	synonyms []string
}

// namePatternRules contribute synonyms when the substring appears anywhere
// in the lowercased column name. Every matching rule applies.
var namePatternRules = []patternRule{
	{"custid", []string{"customer", "client", "customerid"}},
	{"staffid", []string{"salesperson", "staff", "employee"}},
	{"galleryid", []string{"gallery", "venue"}},
	{"saleid", []string{"sale", "order", "transaction"}},
	{"itemid", []string{"item", "artwork", "piece"}},
	{"firstname", []string{"name", "first", "firstname"}},
	{"lastname", []string{"name", "last", "surname"}},
	{"galleryname", []string{"gallery", "venue", "location"}},
	{"saledate", []string{"date", "when", "time"}},
	{"totalamount", []string{"total", "amount", "spend", "spending", "revenue"}},
	{"unitprice", []string{"price", "cost"}},
	{"quantity", []string{"quantity", "qty"}},
	{"city", []string{"city", "location", "place"}},
	{"email", []string{"email", "contact"}},
	{"role", []string{"role", "position", "job"}},
}

// typePatternRules contribute synonyms from the declared data type.
// Matching short-circuits at the first hit, so order matters.
var typePatternRules = []patternRule{
	{"money", []string{"money", "amount", "value", "price"}},
	{"datetime", []string{"date", "time", "when"}},
	{"date", []string{"date", "when"}},
	{"int", []string{"number", "count"}},
	{"varchar", []string{"text"}},
}

// tableSynonyms are table-level keywords keyed by table name.
var tableSynonyms = map[string][]string{
	"Sales": {
		"sales", "sale", "order", "orders",
		"transaction", "transactions", "purchase", "purchases",
	},
	"Customers": {
		"customer", "customers", "client", "clients", "buyer", "buyers",
	},
	"Staff": {
		"staff", "salesperson", "salespeople", "salespersons",
		"employee", "employees", "rep", "reps", "seller", "sellers",
	},
	"Galleries": {
		"gallery", "galleries", "venue", "venues",
		"location", "locations", "store", "stores",
	},
	"SaleItems": {
		"item", "items", "artwork", "artworks", "piece", "pieces",
	},
}
