package dto

// MonthEarning is one zero-filled bucket of the yearly series.
type MonthEarning struct {
	Month  int   `json:"month"`
	Amount int64 `json:"amount"`
}

type MonthlyEarnings struct {
	TurfID    string         `json:"turf_id"`
	Year      int            `json:"year"`
	Component string         `json:"component"`
	Currency  string         `json:"currency"`
	Months    []MonthEarning `json:"months"`
}

type CurrentMonthEarnings struct {
	TurfID    string `json:"turf_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Component string `json:"component"`
	Currency  string `json:"currency"`
	Amount    int64  `json:"amount"`
}
