package client

// Kind is the catalog section an item belongs to.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
)

// Kinds lists every catalog section in fetch order.
var Kinds = []Kind{KindMovie, KindShow}

// Item is one poster entry from GET /api/v1/catalog/{kind}.
type Item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Kind     Kind     `json:"kind"`
	Year     int      `json:"year"`
	Rating   float64  `json:"rating"`
	Runtime  int      `json:"runtime,omitempty"` // minutes
	Seasons  int      `json:"seasons,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Overview string   `json:"overview,omitempty"`
}

// CatalogPage from GET /api/v1/catalog/{kind}?page=N. Pages are 1-based.
type CatalogPage struct {
	Items      []Item `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
