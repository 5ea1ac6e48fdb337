package domain

// Business validation constants
const (
	MaxCancellationDetailsLength = 500
)

// Time format constants
const (
	DateTimeFormat = "2006-01-02 15:04"
	DateFormat     = "2006-01-02"
)
