package models

type Gif struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Link     string `json:"link"`
	Category string `json:"category"`
}
