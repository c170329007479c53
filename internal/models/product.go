package models

// Product is a catalog entry. Prices maps each jar size to its unit price.
type Product struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	ImageRef    string                `json:"image_ref"`
	Prices      map[SalsaSize]float64 `json:"prices"`
	Available   bool                  `json:"available"`
}
