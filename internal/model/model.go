// Package model contains domain models for the single-coach reservation engine.
package model

import "time"

// ─── Enums ──────────────────────────────────────────────────

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// BerthType identifies one of the four physical berth categories in the coach.
type BerthType string

const (
	Lower     BerthType = "lower"
	Middle    BerthType = "middle"
	Upper     BerthType = "upper"
	SideLower BerthType = "side_lower"
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusConfirmed TicketStatus = "confirmed"
	StatusRAC       TicketStatus = "rac"
	StatusWaiting   TicketStatus = "waiting"
	StatusCancelled TicketStatus = "cancelled"
)

// PriorityClass governs lower-berth preference within a Confirmed allocation.
// It never affects RAC/Waiting queue order — those are strict FIFO.
type PriorityClass int

const (
	PriorityNormal PriorityClass = iota
	PrioritySenior
	PriorityLadyWithChild
)

// SeniorAgeThreshold and ChildAgeThreshold define the age-derived passenger
// classes used throughout the engine.
const (
	ChildAgeThreshold  = 5
	SeniorAgeThreshold = 60
)

// ─── Inventory sizing ───────────────────────────────────────

const (
	LowerBerths     = 21
	MiddleBerths    = 21
	UpperBerths     = 21
	SideLowerBerths = 9
	SideLowerSlots  = 2 // occupants per side-lower berth

	RACCapacity     = SideLowerBerths * SideLowerSlots // 18
	WaitingCapacity = 10

	MaxGroupSize = 6
)

// ─── Domain models ──────────────────────────────────────────

// BerthID identifies a single physical berth.
type BerthID struct {
	Type  BerthType `json:"type"`
	Index int       `json:"index"` // 1-based, lowest-index-first allocation order
}

// Passenger is one traveler within a booking. Name/Age/Gender/IsParent and
// ParentIdentifier are immutable after creation; Berth,
// RACPosition and WaitingPosition mutate as the passenger moves through the
// allocation/promotion lifecycle.
type Passenger struct {
	ID               int64    `json:"id"`
	TicketID         int64    `json:"-"`
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	Gender           Gender   `json:"gender"`
	IsParent         bool     `json:"is_parent,omitempty"`
	ParentIdentifier string   `json:"parent_identifier,omitempty"`
	Berth            *BerthID `json:"berth,omitempty"`
	RACPosition      *int     `json:"rac_position,omitempty"`
	WaitingPosition  *int     `json:"waiting_position,omitempty"`
}

// IsChild reports whether the passenger is too young to occupy a berth.
func (p *Passenger) IsChild() bool { return p.Age < ChildAgeThreshold }

// IsSenior reports whether the passenger qualifies for senior priority.
func (p *Passenger) IsSenior() bool { return p.Age >= SeniorAgeThreshold }

// Ticket groups the passengers of one booking request.
type Ticket struct {
	ID          int64        `json:"id"`
	Status      TicketStatus `json:"status"`
	BookingTime time.Time    `json:"booking_time"`
	Passengers  []*Passenger `json:"passengers"`
}

// Berth is one physical sleeping position and its current occupants.
type Berth struct {
	ID        BerthID
	Occupants []*Passenger
}

// Capacity returns the maximum number of simultaneous occupants for this berth's type.
func (b *Berth) Capacity() int {
	if b.ID.Type == SideLower {
		return SideLowerSlots
	}
	return 1
}

// Free reports whether the berth has room for at least one more occupant.
func (b *Berth) Free() bool { return len(b.Occupants) < b.Capacity() }
