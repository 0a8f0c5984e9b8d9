package domain

import "time"

type Product struct {
	ID              int64           `json:"id"`
	CategoryID      int64           `json:"category"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	FullDescription string          `json:"fullDescription,omitempty"`
	PriceCents      int64           `json:"price"`
	SalePriceCents  *int64          `json:"-"`
	Count           int             `json:"count"`
	Available       bool            `json:"available"`
	FreeDelivery    bool            `json:"freeDelivery"`
	CreatedAt       time.Time       `json:"date"`
	Images          []Image         `json:"images"`
	Tags            []Tag           `json:"tags"`
	Specifications  []Specification `json:"specifications,omitempty"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"reviews"`
}

// EffectivePriceCents is the price a buyer currently pays: the sale
// price while a sale is active, the catalog price otherwise.
func (p Product) EffectivePriceCents() int64 {
	if p.SalePriceCents != nil {
		return *p.SalePriceCents
	}
	return p.PriceCents
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Sale is a discounted price window for one product.
type Sale struct {
	ProductID      int64      `json:"id"`
	Title          string     `json:"title"`
	PriceCents     int64      `json:"price"`
	SalePriceCents int64      `json:"salePrice"`
	DateFrom       *time.Time `json:"dateFrom,omitempty"`
	DateTo         *time.Time `json:"dateTo,omitempty"`
	Images         []Image    `json:"images"`
}
