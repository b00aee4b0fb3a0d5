package event

// Event は予約対象のイベントを表す
// ID は外部で採番され、このサービスでは参照のみ行う
type Event struct {
	ID         int64
	Name       string
	TotalSeats int
}

// Availability はイベントと空席状況の組
type Availability struct {
	Event          *Event
	AvailableSeats int
	IsFull         bool
}

// NewAvailability は予約済み件数から空席状況を計算する
// 何らかの理由で予約数が定員を超えていても満席として扱う
func NewAvailability(e *Event, booked int) *Availability {
	available := e.TotalSeats - booked
	return &Availability{
		Event:          e,
		AvailableSeats: available,
		IsFull:         available <= 0,
	}
}
