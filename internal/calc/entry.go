package calc

// WeightedFill is a single executed fill contributing to the average entry
// price of a position
type WeightedFill struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// WeightedEntryResult holds the cost basis averaged across fills
type WeightedEntryResult struct {
	AverageEntryPrice float64 `json:"average_entry_price"`
	TotalQuantity     float64 `json:"total_quantity"`
	TotalValue        float64 `json:"total_value"`
}

// WeightedEntryPrice averages cost basis across multiple fills. A fill with
// zero quantity contributes no weight; an empty list yields an all-zero
// result, not an error.
func WeightedEntryPrice(fills []WeightedFill) WeightedEntryResult {
	var totalValue, totalQuantity float64
	for _, fill := range fills {
		totalValue += fill.Price * fill.Quantity
		totalQuantity += fill.Quantity
	}

	result := WeightedEntryResult{
		TotalQuantity: totalQuantity,
		TotalValue:    totalValue,
	}
	if totalQuantity > 0 {
		result.AverageEntryPrice = totalValue / totalQuantity
	}
	return result
}
