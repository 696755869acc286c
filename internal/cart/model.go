package cart

// Line is one pending order line. LineTotal is kept consistent with
// UnitPrice*Quantity by every mutation.
type Line struct {
	ID        string
	ItemID    string
	Name      string
	UnitPrice float64
	Quantity  int
	LineTotal float64
}

// ItemRef identifies an orderable menu item at its current price.
type ItemRef struct {
	ItemID    string
	Name      string
	UnitPrice float64
}
