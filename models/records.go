package models

import "time"

// Portal record kinds.
const (
	RecordKindNews   = "news"
	RecordKindTicket = "ticket"
	RecordKindPoll   = "poll"
)

// Maintenance ticket statuses.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
)

// PollVote records a single resident's choice in a poll.
type PollVote struct {
	UserID string `bson:"user_id" json:"userId"`
	Option string `bson:"option" json:"option"`
}

// Record is a generic portal record: a news post, a maintenance ticket or a
// poll. The portal treats these uniformly as a filterable record store; only
// the payment subsystem gets a dedicated repository.
type Record struct {
	ID        string     `bson:"id" json:"id"`
	Kind      string     `bson:"kind" json:"kind"`
	Title     string     `bson:"title" json:"title"`
	Body      string     `bson:"body" json:"body"`
	AuthorID  string     `bson:"author_id" json:"authorId"`
	Status    string     `bson:"status,omitempty" json:"status,omitempty"`   // tickets only
	Options   []string   `bson:"options,omitempty" json:"options,omitempty"` // polls only
	Votes     []PollVote `bson:"votes,omitempty" json:"votes,omitempty"`     // polls only
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}
