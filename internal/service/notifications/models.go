package notifications

// Типы уведомлений
const (
	KindConfirmation = "confirmation"
	KindAdminNew     = "admin_new"
	KindReminder     = "reminder"
	KindShipped      = "shipped"
)

// view данные, доступные шаблонам писем
type view struct {
	Brand      string
	TypeLabel  string
	Date       string
	TimeRange  string
	StartTime  string
	Status     string
	Product    string
	Notes      string
	Name       string
	Email      string
	Phone      string
	IDNumber   string
	City       string
	Address    string
	Neighbor   string
	Carrier    string
	Tracking   string
	TripLink   string
	Cost       string
	LeadMins   int
	IsShipping bool
	IsTryout   bool
	IsPicap    bool
}
