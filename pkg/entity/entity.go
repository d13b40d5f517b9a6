package entity

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Exercise as persisted. Date is epoch milliseconds (UTC).
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    float64
	Date        int64
}

type ExerciseResponse struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

type ExerciseLog struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// ExerciseFilter selects a user's exercises with From <= Date < To.
// Limit 0 means no limit.
type ExerciseFilter struct {
	UserID string
	From   int64
	To     int64
	Limit  int
}
