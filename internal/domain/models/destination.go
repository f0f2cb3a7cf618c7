package models

// Destination is a named point on the map. At most one should carry IsCampus
// and acts as the campus anchor for trip-type autofill.
type Destination struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Address  string  `json:"address"`
	MapURL   string  `json:"mapUrl,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
	IsCampus bool    `json:"isCampus"`
}
