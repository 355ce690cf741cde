package services

import (
	"time"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// SeasonPhase is the temporal phase a season configuration is in at a
// given instant. Every boundary belongs to the later phase.
type SeasonPhase int

const (
	PhaseBeforeOrder SeasonPhase = iota
	PhaseOrder
	PhaseBidding
	PhaseBetweenBiddingAndSeason
	PhaseSeason
	PhaseAfterSeason
)

// String method for SeasonPhase enum
func (p SeasonPhase) String() string {
	switch p {
	case PhaseBeforeOrder:
		return "BEFORE_ORDER"
	case PhaseOrder:
		return "ORDER_PHASE"
	case PhaseBidding:
		return "BIDDING_PHASE"
	case PhaseBetweenBiddingAndSeason:
		return "BETWEEN_BIDDING_AND_SEASON"
	case PhaseSeason:
		return "SEASON_PHASE"
	case PhaseAfterSeason:
		return "AFTER_SEASON"
	default:
		return "Unknown"
	}
}

// SeasonPhaseAt evaluates the phase state machine for a configuration.
// Boundaries are inclusive at the lower bound and exclusive at the upper
// bound, so an instant exactly on a boundary already belongs to the later
// phase.
func SeasonPhaseAt(config entities.RequisitionConfig, now time.Time) SeasonPhase {
	switch {
	case now.Before(config.StartOrder):
		return PhaseBeforeOrder
	case now.Before(config.StartBiddingRound):
		return PhaseOrder
	case now.Before(config.EndBiddingRound):
		return PhaseBidding
	case now.Before(config.ValidFrom):
		return PhaseBetweenBiddingAndSeason
	case now.Before(config.ValidTo):
		return PhaseSeason
	default:
		return PhaseAfterSeason
	}
}

// IsRequisitionActive reports whether a user may currently interact with
// the requisition at all. Inactive accounts never may; non-admins only
// within the ordering and bidding window.
func IsRequisitionActive(role entities.UserRole, userActive bool, config entities.RequisitionConfig, now time.Time) bool {
	if !userActive {
		return false
	}
	if role == entities.RoleAdmin {
		return true
	}
	if now.Before(config.StartOrder) {
		return false
	}
	if now.After(config.EndBiddingRound) {
		return false
	}
	return true
}

// IsIncreaseOnly reports whether edits are restricted to increases: true
// for non-admins from the start of the bidding round onward.
func IsIncreaseOnly(role entities.UserRole, config entities.RequisitionConfig, now time.Time) bool {
	if role == entities.RoleAdmin {
		return false
	}
	return !now.Before(config.StartBiddingRound)
}

// IsValidBiddingOrder checks a proposed order against the increase-only
// rule. Outside the increase-only window, or without a prior saved order,
// any proposal is valid. Otherwise the offer must not drop and no
// previously nonzero item value may decrease; items not present in the
// saved order impose no constraint. Admins are exempt.
func IsValidBiddingOrder(
	role entities.UserRole,
	config entities.RequisitionConfig,
	now time.Time,
	savedOrder *entities.SavedOrder,
	proposedOrder entities.SavedOrder,
) bool {
	if !IsIncreaseOnly(role, config, now) {
		return true
	}
	if savedOrder == nil {
		return true
	}

	if savedOrder.Offer > proposedOrder.Offer {
		return false
	}
	for _, savedItem := range savedOrder.OrderItems {
		if savedItem.Value.Sign() <= 0 {
			continue
		}
		proposedItem, ok := proposedOrder.ItemByProductID(savedItem.ProductID)
		if !ok || proposedItem.Value.LessThan(savedItem.Value) {
			return false
		}
	}
	return true
}

// OfferedMsrp pairs a contribution breakdown with the offer the member
// actually chose.
type OfferedMsrp struct {
	Msrp  entities.Msrp
	Offer int64
}

// ModificationMsrpValidation is the advisory verdict on a proposed
// modification: four independent rule checks plus the reasons of every
// rule that failed. Callers decide whether to block the save or only warn.
type ModificationMsrpValidation struct {
	OfferValid       bool
	SelfgrownValid   bool
	CooperationValid bool
	TotalValid       bool
	AllValid         bool
	Errors           []string
}

// ValidateModificationMsrp checks a modification's monthly figures against
// the previous order:
//   - the offer must not decrease
//   - the selfgrown contribution must not decrease, since the selfgrown
//     budget is already committed to the season's production plan
//   - the cooperation contribution may only decrease when the selfgrown
//     increase at least offsets it
//   - the monthly total must not decrease
func ValidateModificationMsrp(previous, modification OfferedMsrp) ModificationMsrpValidation {
	selfgrownDelta := modification.Msrp.Monthly.Selfgrown - previous.Msrp.Monthly.Selfgrown
	cooperationDelta := modification.Msrp.Monthly.Cooperation - previous.Msrp.Monthly.Cooperation

	result := ModificationMsrpValidation{
		OfferValid:       previous.Offer <= modification.Offer,
		SelfgrownValid:   previous.Msrp.Monthly.Selfgrown <= modification.Msrp.Monthly.Selfgrown,
		CooperationValid: cooperationDelta >= 0 || cooperationDelta >= -selfgrownDelta,
		TotalValid:       previous.Msrp.Monthly.Total <= modification.Msrp.Monthly.Total,
	}
	result.AllValid = result.OfferValid && result.SelfgrownValid && result.CooperationValid && result.TotalValid

	if !result.OfferValid {
		result.Errors = append(result.Errors, "the new contribution offer must not be lower than the previous one")
	}
	if !result.SelfgrownValid {
		result.Errors = append(result.Errors, "the new contribution for selfgrown products must not be lower than the previous one")
	}
	if !result.CooperationValid {
		result.Errors = append(result.Errors, "the new contribution for cooperation products may only drop when the selfgrown increase offsets it")
	}
	if !result.TotalValid {
		result.Errors = append(result.Errors, "the new monthly total must not be lower than the previous one")
	}

	return result
}

// IsOfferChangeValid rejects offer reductions relative to the predecessor
// order for everyone but admins.
func IsOfferChangeValid(role entities.UserRole, proposedOffer, predecessorOffer int64) bool {
	if role == entities.RoleAdmin {
		return true
	}
	return proposedOffer >= predecessorOffer
}

// CanEditOrder reports whether a role may edit a specific order. Members
// may only touch the determined modification order; admins any order.
func CanEditOrder(role entities.UserRole, modificationOrderID *entities.OrderID, requestedOrderID entities.OrderID) bool {
	if role == entities.RoleAdmin {
		return true
	}
	return modificationOrderID != nil && *modificationOrderID == requestedOrderID
}
