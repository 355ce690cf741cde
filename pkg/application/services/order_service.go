package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/dto"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/repositories"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/services"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/events"
)

// OrderService runs the save-order validation pipeline: every rule is
// checked and every violation collected, so a member sees all problems
// with their proposal at once instead of one per attempt.
type OrderService struct {
	config   services.PricingConfig
	calc     *services.MsrpCalculator
	resolver *services.EffectiveMsrpChainResolver
	logger   *zap.Logger
}

// NewOrderService creates an order service for a pricing configuration
func NewOrderService(config services.PricingConfig, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	calc := services.NewMsrpCalculator(config)
	return &OrderService{
		config:   config,
		calc:     calc,
		resolver: services.NewEffectiveMsrpChainResolver(calc),
		logger:   logger,
	}
}

// SaveOrder validates a proposed order and persists it when every rule
// passes. Validation failures are reported in the result, not as errors;
// an error means the snapshot or the stores are inconsistent.
func (s *OrderService) SaveOrder(
	ctx context.Context,
	request dto.SaveOrderRequest,
	now time.Time,
	orderRepo repositories.OrderRepository,
	catalogRepo repositories.CatalogRepository,
	depotRepo repositories.DepotRepository,
	configRepo repositories.ConfigRepository,
	statsRepo repositories.StatisticsRepository,
	eventStore events.EventStore,
) (*dto.SaveOrderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &dto.SaveOrderResult{OrderID: request.OrderID}

	season, err := configRepo.GetConfig(request.ConfigID)
	if err != nil {
		return nil, fmt.Errorf("loading season config: %w", err)
	}

	if !services.IsRequisitionActive(request.Role, request.UserActive, *season, now) {
		result.Errors = append(result.Errors, "ordering is currently closed for this season")
		return s.finish(result, request, eventStore)
	}

	chain, err := orderRepo.GetOrderChain(request.UserID, request.ConfigID)
	if err != nil {
		return nil, fmt.Errorf("loading order chain: %w", err)
	}

	savedOrder, err := s.resolveEditTarget(request, chain, now, result)
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return s.finish(result, request, eventStore)
	}
	if savedOrder != nil && request.OrderID == 0 {
		// a zero id falls back to the determined modification order
		request.OrderID = savedOrder.ID
		result.OrderID = savedOrder.ID
	}

	s.checkCategory(request, result)

	if err := s.checkDepot(request, savedOrder, depotRepo, statsRepo, result); err != nil {
		return nil, err
	}

	productsByID, err := catalogRepo.GetProductsByID()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if err := s.checkItems(request, savedOrder, productsByID, statsRepo, result); err != nil {
		return nil, err
	}

	s.checkBiddingRules(request, savedOrder, *season, now, result)

	if err := s.checkOffer(request, savedOrder, chain, productsByID, *season, depotRepo, statsRepo, result); err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return s.finish(result, request, eventStore)
	}

	order := s.buildOrder(request, savedOrder, *season)
	if err := orderRepo.SaveOrder(order); err != nil {
		return nil, fmt.Errorf("saving order: %w", err)
	}

	result.Valid = true
	result.OrderID = order.ID

	updatedChain, err := orderRepo.GetOrderChain(request.UserID, request.ConfigID)
	if err != nil {
		return nil, fmt.Errorf("reloading order chain: %w", err)
	}
	predecessor := services.DeterminePredecessorOrder(updatedChain, order.ID)
	if eventStore != nil {
		event := events.NewOrderSavedEvent(*order, predecessor, result.Msrp)
		if err := eventStore.AppendEvent(event.StreamID(), event); err != nil {
			s.logger.Warn("failed to publish order saved event", zap.Error(err))
		}
	}

	s.logger.Info("order saved",
		zap.Int64("user_id", int64(request.UserID)),
		zap.Int64("order_id", int64(order.ID)),
		zap.Int64("offer", order.Offer))

	return result, nil
}

// CreateOrderModification appends a new chain link during a bidding
// round: the member's currently valid order is truncated to the day
// before the new link starts and cloned forward to the season end. The
// clone starts at the Friday before the first delivery Thursday of the
// month after the bidding round ends, so the member can then raise it
// without touching the already running order.
func (s *OrderService) CreateOrderModification(
	ctx context.Context,
	userID entities.UserID,
	configID entities.ConfigID,
	role entities.UserRole,
	userActive bool,
	now time.Time,
	orderRepo repositories.OrderRepository,
	configRepo repositories.ConfigRepository,
	eventStore events.EventStore,
) (*entities.SavedOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	season, err := configRepo.GetConfig(configID)
	if err != nil {
		return nil, fmt.Errorf("loading season config: %w", err)
	}

	if !services.IsRequisitionActive(role, userActive, *season, now) {
		return nil, fmt.Errorf("ordering is currently closed for this season")
	}
	if !services.IsIncreaseOnly(role, *season, now) {
		return nil, fmt.Errorf("order modifications are only possible during the bidding round")
	}
	if !now.Before(season.EndBiddingRound) {
		return nil, fmt.Errorf("the bidding round has already ended")
	}

	chain, err := orderRepo.GetOrderChain(userID, configID)
	if err != nil {
		return nil, fmt.Errorf("loading order chain: %w", err)
	}

	var current *entities.SavedOrder
	for i := range chain {
		if chain[i].ValidFrom.After(now) {
			return nil, fmt.Errorf("an order starting in the future already exists")
		}
		if chain[i].ValidTo.After(now) {
			current = &chain[i]
		}
	}
	if current == nil {
		return nil, fmt.Errorf("no currently valid order to modify")
	}

	newValidFrom := services.NewOrderValidFrom(season.EndBiddingRound)

	predecessor := *current
	predecessor.ValidTo = services.PreviousOrderValidTo(newValidFrom)
	if err := orderRepo.SaveOrder(&predecessor); err != nil {
		return nil, fmt.Errorf("truncating current order: %w", err)
	}

	clone := predecessor
	clone.ID = 0
	clone.ValidFrom = newValidFrom
	clone.ValidTo = season.ValidTo
	clone.OrderItems = make([]entities.OrderItem, len(current.OrderItems))
	copy(clone.OrderItems, current.OrderItems)
	if err := orderRepo.SaveOrder(&clone); err != nil {
		return nil, fmt.Errorf("saving modification order: %w", err)
	}

	if eventStore != nil {
		event := events.NewOrderModificationCreatedEvent(clone, predecessor)
		if err := eventStore.AppendEvent(event.StreamID(), event); err != nil {
			s.logger.Warn("failed to publish order modification event", zap.Error(err))
		}
	}

	s.logger.Info("order modification created",
		zap.Int64("user_id", int64(userID)),
		zap.Int64("order_id", int64(clone.ID)),
		zap.Time("valid_from", clone.ValidFrom))

	return &clone, nil
}

// resolveEditTarget determines which chain link the request may modify.
// A member with no chain yet creates their first order; otherwise only
// the determined modification order is editable (admins excepted). A
// request without an order id targets the modification order.
func (s *OrderService) resolveEditTarget(
	request dto.SaveOrderRequest,
	chain []entities.SavedOrder,
	now time.Time,
	result *dto.SaveOrderResult,
) (*entities.SavedOrder, error) {
	if len(chain) == 0 {
		if request.OrderID != 0 {
			return nil, fmt.Errorf("order %d not found for user %d", request.OrderID, request.UserID)
		}
		return nil, nil
	}

	var modifiable *entities.OrderID
	if id, ok := services.DetermineModificationOrderID(chain, now); ok {
		modifiable = &id
	}

	requestedID := request.OrderID
	if requestedID == 0 && modifiable != nil {
		requestedID = *modifiable
	}

	if !services.CanEditOrder(request.Role, modifiable, requestedID) {
		result.Errors = append(result.Errors, "this order can no longer be modified")
		return nil, nil
	}

	for i := range chain {
		if chain[i].ID == requestedID {
			return &chain[i], nil
		}
	}
	return nil, fmt.Errorf("order %d not found for user %d", requestedID, request.UserID)
}

func (s *OrderService) checkCategory(request dto.SaveOrderRequest, result *dto.SaveOrderResult) {
	if !s.config.CategoryAvailable(request.Category) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("contribution category %s is not available", request.Category))
	}
	if !s.config.IsCategoryReasonValid(request.Category, request.CategoryReason) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("contribution category %s requires a reason", request.Category))
	}
}

func (s *OrderService) checkDepot(
	request dto.SaveOrderRequest,
	savedOrder *entities.SavedOrder,
	depotRepo repositories.DepotRepository,
	statsRepo repositories.StatisticsRepository,
	result *dto.SaveOrderResult,
) error {
	depot, err := depotRepo.GetDepot(request.DepotID)
	if err != nil {
		result.Errors = append(result.Errors, "the chosen depot does not exist")
		return nil
	}
	if !depot.Active {
		result.Errors = append(result.Errors, fmt.Sprintf("depot %s is not available", depot.Name))
		return nil
	}

	capacityByDepot, err := statsRepo.GetCapacityByDepotID(request.ConfigID)
	if err != nil {
		return fmt.Errorf("loading depot capacity: %w", err)
	}

	var savedDepotID entities.DepotID
	if savedOrder != nil {
		savedDepotID = savedOrder.DepotID
	}

	remaining := services.GetRemainingDepotCapacity(*depot, capacityByDepot[depot.ID].Reserved, savedDepotID)
	if remaining != nil && *remaining <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("depot %s is full", depot.Name))
	}
	return nil
}

func (s *OrderService) checkItems(
	request dto.SaveOrderRequest,
	savedOrder *entities.SavedOrder,
	productsByID entities.ProductsByID,
	statsRepo repositories.StatisticsRepository,
	result *dto.SaveOrderResult,
) error {
	soldByProductID, err := statsRepo.GetSoldByProductID(request.ConfigID)
	if err != nil {
		return fmt.Errorf("loading sales snapshot: %w", err)
	}

	for _, item := range request.OrderItems {
		reason, err := services.CheckOrderItemValid(savedOrder, item, soldByProductID, productsByID)
		if err != nil {
			return err
		}
		if reason != "" {
			result.Errors = append(result.Errors, reason)
		}
	}
	return nil
}

func (s *OrderService) checkBiddingRules(
	request dto.SaveOrderRequest,
	savedOrder *entities.SavedOrder,
	season entities.RequisitionConfig,
	now time.Time,
	result *dto.SaveOrderResult,
) {
	proposed := entities.SavedOrder{
		ID:         request.OrderID,
		UserID:     request.UserID,
		OrderItems: request.OrderItems,
		Offer:      request.Offer,
	}

	if !services.IsValidBiddingOrder(request.Role, season, now, savedOrder, proposed) {
		result.Errors = append(result.Errors,
			"during the bidding round the offer and committed quantities may only increase")
	}
}

// checkOffer prices the proposal and checks the offer floor against the
// effective monthly total. When the modified order has a predecessor in
// the chain, the proposal is composed with it first, so walking back an
// already committed item cannot lower the floor, and the modification
// rules against the predecessor apply.
func (s *OrderService) checkOffer(
	request dto.SaveOrderRequest,
	savedOrder *entities.SavedOrder,
	chain []entities.SavedOrder,
	productsByID entities.ProductsByID,
	season entities.RequisitionConfig,
	depotRepo repositories.DepotRepository,
	statsRepo repositories.StatisticsRepository,
	result *dto.SaveOrderResult,
) error {
	validFrom := season.ValidFrom
	if savedOrder != nil && !savedOrder.ValidFrom.IsZero() {
		validFrom = savedOrder.ValidFrom
	}
	proposed := entities.SavedOrder{
		ID:         request.OrderID,
		UserID:     request.UserID,
		OrderItems: request.OrderItems,
		Offer:      request.Offer,
		Category:   request.Category,
		ValidFrom:  validFrom,
		ValidTo:    season.ValidTo,
	}

	// mid-season amendments only pay for distribution still outstanding
	weights, err := currentMsrpWeights(request.ConfigID, productsByID, depotRepo, statsRepo)
	if err != nil {
		return err
	}

	months := services.OrderValidMonths(validFrom, season.ValidTo)
	raw, err := s.calc.GetMsrp(request.Category, request.OrderItems, productsByID, months, weights)
	if err != nil {
		return fmt.Errorf("pricing proposal: %w", err)
	}

	effective := raw
	predecessor := services.DeterminePredecessorOrder(chain, request.OrderID)
	if predecessor != nil {
		predMonths := services.OrderValidMonths(predecessor.ValidFrom, season.ValidTo)
		predRaw, err := s.calc.GetMsrp(predecessor.Category, predecessor.OrderItems, productsByID, predMonths, weights)
		if err != nil {
			return fmt.Errorf("pricing predecessor order %d: %w", predecessor.ID, err)
		}

		rawByID := map[entities.OrderID]entities.Msrp{
			predecessor.ID: predRaw,
			proposed.ID:    raw,
		}
		weightsByID := map[entities.OrderID]entities.ProductMsrpWeights{
			predecessor.ID: weights,
			proposed.ID:    weights,
		}
		effective, err = s.resolver.CalculateEffectiveMsrp(*predecessor, proposed, rawByID, weightsByID, productsByID)
		if err != nil {
			return fmt.Errorf("composing proposal with predecessor: %w", err)
		}

		if !services.IsOfferChangeValid(request.Role, request.Offer, predecessor.Offer) {
			result.Errors = append(result.Errors,
				"the new offer must not be lower than the previous order's offer")
		}

		if request.Role != entities.RoleAdmin {
			verdict := services.ValidateModificationMsrp(
				services.OfferedMsrp{Msrp: predRaw, Offer: predecessor.Offer},
				services.OfferedMsrp{Msrp: effective, Offer: request.Offer},
			)
			msgs := verdict.Errors
			if !verdict.OfferValid {
				// an offer drop is already reported by the
				// dedicated predecessor check above
				msgs = msgs[1:]
			}
			result.Errors = append(result.Errors, msgs...)
		}
	}
	result.Msrp = effective

	if !s.config.IsOfferValid(request.Offer, effective.Monthly.Total) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("the offer %d is below the minimum for a reference contribution of %d",
				request.Offer, effective.Monthly.Total))
	}
	if !s.config.IsOfferReasonValid(request.Offer, effective.Monthly.Total, request.OfferReason) {
		result.Errors = append(result.Errors,
			"an offer below the reference contribution requires a reason")
	}
	return nil
}

// buildOrder merges the request into the edit target, or creates the
// member's first order starting at the season begin
func (s *OrderService) buildOrder(
	request dto.SaveOrderRequest,
	savedOrder *entities.SavedOrder,
	season entities.RequisitionConfig,
) *entities.SavedOrder {
	order := entities.SavedOrder{
		UserID:              request.UserID,
		RequisitionConfigID: request.ConfigID,
		ValidFrom:           season.ValidFrom,
		ValidTo:             season.ValidTo,
	}
	if savedOrder != nil {
		order = *savedOrder
	}

	order.OrderItems = request.OrderItems
	order.DepotID = request.DepotID
	order.AlternateDepotID = request.AlternateDepotID
	order.Offer = request.Offer
	order.OfferReason = request.OfferReason
	order.Category = request.Category
	order.CategoryReason = request.CategoryReason

	return &order
}

// finish publishes a rejection event when validation failed and returns
// the result
func (s *OrderService) finish(
	result *dto.SaveOrderResult,
	request dto.SaveOrderRequest,
	eventStore events.EventStore,
) (*dto.SaveOrderResult, error) {
	if eventStore != nil && len(result.Errors) > 0 {
		event := events.NewOrderRejectedEvent(request.UserID, request.ConfigID, request.OrderID, result.Errors)
		if err := eventStore.AppendEvent(event.StreamID(), event); err != nil {
			s.logger.Warn("failed to publish order rejected event", zap.Error(err))
		}
	}
	return result, nil
}
