package pricing

// LineItem is the priced result for one document.
type LineItem struct {
	DocumentLabel       string  `json:"document_label"`
	BillablePages       float64 `json:"billable_pages"`
	TierMultiplier      float64 `json:"tier_multiplier"`
	UnitRate            float64 `json:"unit_rate"`
	AmountPages         float64 `json:"amount_pages"`
	CertificationAmount float64 `json:"certification_amount"`
	LineTotal           float64 `json:"line_total"`
}

// Totals are the order-level sums over line items.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// PriceDocument combines aggregated pages with the resolved tier multiplier
// and certification fee. The unit rate is the base rate scaled by the tier
// multiplier and rounded up to the currency increment before any 2-decimal
// rounding downstream.
func PriceDocument(label string, pages, tierMultiplier, baseRate, increment, certFee float64) LineItem {
	if tierMultiplier <= 0 {
		tierMultiplier = 1
	}
	unit := RoundUpToIncrement(baseRate*tierMultiplier, increment)
	amountPages := Round2(pages * unit)
	return LineItem{
		DocumentLabel:       label,
		BillablePages:       pages,
		TierMultiplier:      tierMultiplier,
		UnitRate:            Round2(unit),
		AmountPages:         amountPages,
		CertificationAmount: Round2(certFee),
		LineTotal:           Round2(amountPages + certFee),
	}
}

// ComputeTotals sums line totals into subtotal, tax and total.
func ComputeTotals(items []LineItem, taxRate float64) Totals {
	var sum float64
	for _, it := range items {
		sum += it.LineTotal
	}
	subtotal := Round2(sum)
	tax := Round2(subtotal * taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    Round2(subtotal + tax),
	}
}
