package entities

import (
	"fmt"
	"time"
)

// ConfigID identifies a requisition configuration (one season)
type ConfigID int64

// UserRole controls which season phases permit edits
type UserRole int

const (
	RoleUser UserRole = iota
	RoleEmployee
	RoleAdmin
)

// String method for UserRole enum
func (r UserRole) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleEmployee:
		return "EMPLOYEE"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "Unknown"
	}
}

// UserCategory is a member's labor-contribution tier. Each tier carries its
// own price multiplier in the pricing table.
type UserCategory int

const (
	Cat100 UserCategory = iota
	Cat115
	Cat130
)

// String method for UserCategory enum
func (c UserCategory) String() string {
	switch c {
	case Cat100:
		return "CAT100"
	case Cat115:
		return "CAT115"
	case Cat130:
		return "CAT130"
	default:
		return "Unknown"
	}
}

// ParseUserCategory converts a configuration string into a UserCategory
func ParseUserCategory(s string) (UserCategory, error) {
	switch s {
	case "CAT100":
		return Cat100, nil
	case "CAT115":
		return Cat115, nil
	case "CAT130":
		return Cat130, nil
	default:
		return 0, fmt.Errorf("unknown user category: %q", s)
	}
}

// RequisitionConfig defines one season: the ordering window, the bidding
// round, the active delivery period and the season budget.
//
// The boundaries partition time into six phases, each inclusive at its
// lower bound and exclusive at its upper bound:
//
//	now < StartOrder                      before order
//	StartOrder <= now < StartBiddingRound free ordering
//	StartBiddingRound <= now < EndBiddingRound  bidding (increase only)
//	EndBiddingRound <= now < ValidFrom    locked until season start
//	ValidFrom <= now < ValidTo            active season
//	ValidTo <= now                        after season
type RequisitionConfig struct {
	ID                ConfigID
	Name              string
	StartOrder        time.Time
	StartBiddingRound time.Time
	EndBiddingRound   time.Time
	ValidFrom         time.Time
	ValidTo           time.Time
	Budget            int64
}

// NewRequisitionConfig creates a validated RequisitionConfig. The
// bidding round window may lie inside the season: re-bidding rounds
// adjust orders that are already running.
func NewRequisitionConfig(
	id ConfigID,
	name string,
	startOrder, startBiddingRound, endBiddingRound, validFrom, validTo time.Time,
	budget int64,
) (*RequisitionConfig, error) {
	if id <= 0 {
		return nil, fmt.Errorf("config id must be positive, got %d", id)
	}
	if startOrder.After(startBiddingRound) {
		return nil, fmt.Errorf("startOrder %v cannot be after startBiddingRound %v", startOrder, startBiddingRound)
	}
	if startBiddingRound.After(endBiddingRound) {
		return nil, fmt.Errorf("startBiddingRound %v cannot be after endBiddingRound %v", startBiddingRound, endBiddingRound)
	}
	if !validFrom.Before(validTo) {
		return nil, fmt.Errorf("season start %v must be before season end %v", validFrom, validTo)
	}

	return &RequisitionConfig{
		ID:                id,
		Name:              name,
		StartOrder:        startOrder,
		StartBiddingRound: startBiddingRound,
		EndBiddingRound:   endBiddingRound,
		ValidFrom:         validFrom,
		ValidTo:           validTo,
		Budget:            budget,
	}, nil
}
