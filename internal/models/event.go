package models

// Event is a farmers-market or popup appearance shown on the events screen.
// Date is an ISO-8601 calendar date (2006-01-02); StartTime and EndTime are
// free-form display strings like "9:00 AM".
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description,omitempty"`
}

// ValidEvent reports whether e carries the fields every stored event
// must have. Used when sanitizing persisted data.
func ValidEvent(e Event) bool {
	return e.ID != "" && e.Title != "" && e.Location != "" &&
		e.Address != "" && e.Date != "" && e.StartTime != "" && e.EndTime != ""
}
