package domain

type Category struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Image         Image         `json:"image"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Subcategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"-"`
	Title      string `json:"title"`
	Image      Image  `json:"image"`
}
