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
)

// PricingService computes the priced view of a member's season: the raw
// and effective contribution of every chain link plus a per-product
// breakdown.
type PricingService struct {
	config   services.PricingConfig
	calc     *services.MsrpCalculator
	resolver *services.EffectiveMsrpChainResolver
	logger   *zap.Logger
}

// NewPricingService creates a pricing service for a pricing configuration
func NewPricingService(config services.PricingConfig, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	calc := services.NewMsrpCalculator(config)
	return &PricingService{
		config:   config,
		calc:     calc,
		resolver: services.NewEffectiveMsrpChainResolver(calc),
		logger:   logger,
	}
}

// PriceMemberChain prices a member's whole order chain for a season.
//
// Links whose delivery-aligned start is still in the future are priced
// with the current delivery-progress weights, so a mid-season amendment
// is not charged for distribution that already happened. Links already
// running were committed at full weight and stay that way.
func (s *PricingService) PriceMemberChain(
	ctx context.Context,
	userID entities.UserID,
	configID entities.ConfigID,
	now time.Time,
	orderRepo repositories.OrderRepository,
	catalogRepo repositories.CatalogRepository,
	depotRepo repositories.DepotRepository,
	configRepo repositories.ConfigRepository,
	statsRepo repositories.StatisticsRepository,
) (*dto.PricedChain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	season, err := configRepo.GetConfig(configID)
	if err != nil {
		return nil, fmt.Errorf("loading season config: %w", err)
	}
	productsByID, err := catalogRepo.GetProductsByID()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	chain, err := orderRepo.GetOrderChain(userID, configID)
	if err != nil {
		return nil, fmt.Errorf("loading order chain: %w", err)
	}

	weights, err := currentMsrpWeights(configID, productsByID, depotRepo, statsRepo)
	if err != nil {
		return nil, err
	}

	rawByID := make(map[entities.OrderID]entities.Msrp, len(chain))
	weightsByID := make(map[entities.OrderID]entities.ProductMsrpWeights, len(chain))
	monthsByID := make(map[entities.OrderID]int, len(chain))

	for _, order := range chain {
		months := services.OrderValidMonths(order.ValidFrom, season.ValidTo)
		monthsByID[order.ID] = months

		var orderWeights entities.ProductMsrpWeights
		if !order.ValidFrom.IsZero() && now.Before(services.SameOrNextThursday(order.ValidFrom)) {
			orderWeights = weights
		}
		weightsByID[order.ID] = orderWeights

		raw, err := s.calc.GetMsrp(order.Category, order.OrderItems, productsByID, months, orderWeights)
		if err != nil {
			return nil, fmt.Errorf("pricing order %d: %w", order.ID, err)
		}
		rawByID[order.ID] = raw
	}

	effective, err := s.resolver.CalculateEffectiveMsrpChain(chain, rawByID, weightsByID, productsByID)
	if err != nil {
		return nil, fmt.Errorf("resolving chain: %w", err)
	}

	sorted := entities.SortChain(chain)
	priced := make([]dto.PricedOrder, 0, len(sorted))
	for i, order := range sorted {
		items, err := s.itemBreakdown(order, productsByID, monthsByID[order.ID], weightsByID[order.ID])
		if err != nil {
			return nil, err
		}
		priced = append(priced, dto.PricedOrder{
			OrderID:       order.ID,
			Offer:         order.Offer,
			Months:        monthsByID[order.ID],
			RawMsrp:       rawByID[order.ID],
			EffectiveMsrp: effective[i],
			Items:         items,
		})
	}

	s.logger.Debug("priced member chain",
		zap.Int64("user_id", int64(userID)),
		zap.Int64("config_id", int64(configID)),
		zap.Int("links", len(priced)))

	return &dto.PricedChain{
		UserID:   userID,
		ConfigID: configID,
		Phase:    services.SeasonPhaseAt(*season, now).String(),
		Orders:   priced,
	}, nil
}

// currentMsrpWeights derives the per-product pricing weights from the
// season's delivery progress. Both the chain view and the save pipeline
// price against the same snapshot.
func currentMsrpWeights(
	configID entities.ConfigID,
	productsByID entities.ProductsByID,
	depotRepo repositories.DepotRepository,
	statsRepo repositories.StatisticsRepository,
) (entities.ProductMsrpWeights, error) {
	delivered, err := statsRepo.GetDeliveredByProductID(configID)
	if err != nil {
		return nil, fmt.Errorf("loading delivery progress: %w", err)
	}
	depotPtrs, err := depotRepo.GetAllDepots()
	if err != nil {
		return nil, fmt.Errorf("loading depots: %w", err)
	}

	depots := make([]entities.Depot, 0, len(depotPtrs))
	for _, depot := range depotPtrs {
		depots = append(depots, *depot)
	}

	return services.CalculateMsrpWeights(productsByID, delivered, depots), nil
}

func (s *PricingService) itemBreakdown(
	order entities.SavedOrder,
	productsByID entities.ProductsByID,
	months int,
	weights entities.ProductMsrpWeights,
) ([]dto.ItemPrice, error) {
	items := make([]dto.ItemPrice, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("order %d references unknown product %d", order.ID, item.ProductID)
		}
		monthly, err := s.calc.OrderItemAdjustedMonthlyMsrp(order.Category, item, productsByID, months, weights)
		if err != nil {
			return nil, fmt.Errorf("pricing item %d of order %d: %w", item.ProductID, order.ID, err)
		}
		items = append(items, dto.ItemPrice{
			ProductID:   item.ProductID,
			Name:        product.Name,
			Value:       item.Value,
			Unit:        product.Unit,
			MonthlyMsrp: monthly,
		})
	}
	return items, nil
}
