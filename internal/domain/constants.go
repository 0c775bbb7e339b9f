package domain

// Default values for new bookings
const (
	DefaultPaymentMethod = "Pay At Hotel"
	MinGuests            = 1
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, которые не занимают номер
// Используется для фильтрации при проверке доступности
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
