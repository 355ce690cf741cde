package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/dto"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/repositories"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/services"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/events"
)

// ShipmentService distributes an aggregate shipment quantity over the
// depots that currently have open commitments for the product.
type ShipmentService struct {
	config      services.PricingConfig
	apportioner *services.Apportioner
	logger      *zap.Logger
}

// NewShipmentService creates a shipment service. rng drives the random
// tie-break of the apportioner; nil selects a fixed seed.
func NewShipmentService(config services.PricingConfig, rng *rand.Rand, logger *zap.Logger) *ShipmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentService{
		config:      config,
		apportioner: services.NewApportioner(rng),
		logger:      logger,
	}
}

// SplitShipment converts a harvest quantity in the product's unit into
// per-depot delivered quantities. Quantities use the delivered convention
// of hundredths of a unit; amounts are rounded to the unit's configured
// step before apportioning, so no depot receives an unshippable fraction.
// Depots are weighted by their open shipment value; depots with nothing
// outstanding receive nothing.
func (s *ShipmentService) SplitShipment(
	ctx context.Context,
	configID entities.ConfigID,
	productID entities.ProductID,
	quantity decimal.Decimal,
	catalogRepo repositories.CatalogRepository,
	statsRepo repositories.StatisticsRepository,
	eventStore events.EventStore,
) (*dto.ShipmentSplit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if quantity.Sign() < 0 {
		return nil, fmt.Errorf("shipment quantity must not be negative, got %s", quantity)
	}

	product, err := catalogRepo.GetProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("loading product: %w", err)
	}

	deliveredByProductID, err := statsRepo.GetDeliveredByProductID(configID)
	if err != nil {
		return nil, fmt.Errorf("loading delivery snapshot: %w", err)
	}

	shares := shipmentShares(deliveredByProductID[productID])

	step := s.config.ShipmentRounding[product.Unit]
	if step <= 0 {
		step = 1
	}

	// hundredths of a unit, reduced to whole rounding steps
	delivered := quantity.Shift(2).Round(0).IntPart()
	reduced := delivered / step

	byDepot := s.apportioner.SplitTotal(reduced, shares)
	total := int64(0)
	for depotID, units := range byDepot {
		byDepot[depotID] = units * step
		total += units * step
	}

	split := &dto.ShipmentSplit{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Unit:         product.Unit,
		Total:        total,
		RoundingStep: step,
		ByDepot:      byDepot,
	}

	if eventStore != nil {
		event := events.NewShipmentSplitEvent(product.ID, total, byDepot)
		if err := eventStore.AppendEvent(event.StreamID(), event); err != nil {
			s.logger.Warn("failed to publish shipment split event", zap.Error(err))
		}
	}

	s.logger.Info("shipment split",
		zap.Int64("product_id", int64(product.ID)),
		zap.Int64("delivered_total", total),
		zap.Int("depots", len(byDepot)))

	return split, nil
}

// shipmentShares weighs each depot by its outstanding shipment value.
// Depot order is fixed before handing the shares to the apportioner so
// runs differ only by the apportioner's own tie-break.
func shipmentShares(byDepot map[entities.DepotID]entities.DeliveryEntry) []services.DepotShare {
	shares := make([]services.DepotShare, 0, len(byDepot))
	for depotID, entry := range byDepot {
		if entry.ValueForShipment <= 0 {
			continue
		}
		shares = append(shares, services.DepotShare{
			DepotID: depotID,
			Weight:  entry.ValueForShipment,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		return shares[i].DepotID < shares[j].DepotID
	})
	return shares
}
