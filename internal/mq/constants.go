package mq

// Queue names and message definitions

// immediate queue from the rental workflow to the audit consumer
// deliver message to record a completed rent or return in the rental log
const (
	RentalEventQueue = "rental.events.immediate"
)

type RentalEventMessage struct {
	CopyID  uint   `json:"copy_id"`
	MovieID uint   `json:"movie_id"`
	UserID  uint   `json:"user_id"`
	Action  string `json:"action"`
}
