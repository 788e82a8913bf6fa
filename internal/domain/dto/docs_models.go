package dto

// The types below exist for the API documentation only. Responses are
// produced from entity schemas, never from these structs.

// Degree documents a user's degree.
type Degree struct {
	ID         int64  `json:"id" example:"1"`
	CreatedAt  string `json:"created_at" example:"2020-01-01T00:00:00Z"`
	TypeDegree string `json:"type_degree" enums:"newbie,expert" example:"expert"`
}

// User documents a user.
type User struct {
	ID     int64    `json:"id" example:"4"`
	Role   string   `json:"role" example:"investor"`
	Name   string   `json:"name" example:"Homer"`
	Degree []Degree `json:"degree"`
}

// Trade documents a trade.
type Trade struct {
	ID       int64   `json:"id" example:"1"`
	UserID   int64   `json:"user_id" example:"1"`
	Currency string  `json:"currency" maxLength:"5" example:"BTC"`
	Side     string  `json:"side" example:"buy"`
	Price    float64 `json:"price" minimum:"0" example:"123"`
	Amount   float64 `json:"amount" example:"2.12"`
}
