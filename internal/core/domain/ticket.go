package domain

import "time"

// Ticket is a completed sale. Tickets are written once at sale time and never
// mutated afterwards; a ticket without an owning user is excluded from sales
// aggregation.
type Ticket struct {
	TicketNumber string    `json:"ticketNumber" bson:"ticketNumber"`
	UserID       string    `json:"userId,omitempty" bson:"userId,omitempty"`
	GrandTotal   float64   `json:"grandTotal" bson:"grandTotal"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
