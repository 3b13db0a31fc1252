package domain

// Flight is a bookable flight listing. Times are kept as the strings the
// listing was created with.
type Flight struct {
	ID               int64  `json:"id"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	Price            int    `json:"price"`
}
