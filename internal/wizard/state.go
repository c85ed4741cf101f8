package wizard

type Stage int

const (
	Idle Stage = iota
	AwaitingEmail
	AwaitingPassword
	AwaitingPhone
	AwaitingSizeSelection
	AwaitingRentalConfirmation
	AwaitingReturnSelection
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingEmail:
		return "awaiting_email"
	case AwaitingPassword:
		return "awaiting_password"
	case AwaitingPhone:
		return "awaiting_phone"
	case AwaitingSizeSelection:
		return "awaiting_size_selection"
	case AwaitingRentalConfirmation:
		return "awaiting_rental_confirmation"
	case AwaitingReturnSelection:
		return "awaiting_return_selection"
	default:
		return "unknown"
	}
}

// State is the per-identity wizard session. A missing session means Idle.
type State struct {
	Stage Stage

	// registration
	Email    string
	Password string

	// rental
	Size   int
	UnitID int64
}

type Identity struct {
	TelegramID  int64
	DisplayName string
}
