package entities

type JobItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
}

// Total is the derived line amount (qty × rate).
func (j JobItem) Total() float64 {
	return j.Qty * j.Rate
}
