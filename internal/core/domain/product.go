package domain

import "time"

// DefaultPageSize is the number of products returned per catalog page.
const DefaultPageSize = 33

// Product is a stock-keeping unit. Qty and Sold move only together, through
// order items; Mini and Maxi are informational thresholds.
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SellPrice   int64     `json:"sell_price"`
	BuyPrice    int64     `json:"buy_price"`
	Qty         int64     `json:"qty"`
	Mini        int64     `json:"mini"`
	Maxi        int64     `json:"maxi"`
	Sold        int64     `json:"sold"`
	Image       []byte    `json:"image,omitempty"`
	CreatedBy   uint      `json:"created_by"`
	CreatedOn   time.Time `json:"created_on"`
}

// BelowMinimum reports whether the stock level dropped under the soft minimum.
func (p *Product) BelowMinimum() bool {
	return p.Qty < p.Mini
}

// AboveMaximum reports whether the stock level exceeds the soft maximum.
func (p *Product) AboveMaximum() bool {
	return p.Qty > p.Maxi
}

// TotalPages returns ceil(total/size). A non-positive size yields 0.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
