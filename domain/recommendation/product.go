package recommendation

// ProductMatch is one product returned by a vector similarity query.
// Score mirrors the index's distance metric and is not bounded to [0,1];
// within one result list scores are non-increasing. Optional catalog fields
// that were missing from the index payload stay nil rather than dropping
// the result.
type ProductMatch struct {
	ProductName  string   `json:"product_name"`
	Brand        *string  `json:"brand"`
	Category     *string  `json:"category"`
	SupplierName *string  `json:"supplier_name"`
	UnitPrice    *float64 `json:"unit_price"`
	Score        float64  `json:"score"`
}

// Result reasons surfaced to the client alongside the product list.
const (
	ReasonNoHistory      = "no history yet"
	ReasonRecentActivity = "based on recent activity"
)

// Recommendations is the answer to "what should this user see now".
type Recommendations struct {
	Products []ProductMatch `json:"products"`
	Reason   string         `json:"reason"`
}
