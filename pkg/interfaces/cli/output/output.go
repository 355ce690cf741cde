package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/dto"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// GeneratePricedChain writes a member's priced chain in the configured
// format
func GeneratePricedChain(chain *dto.PricedChain, config Config) error {
	switch config.Format {
	case "", "text":
		return pricedChainText(chain, config)
	case "json":
		return writeJSON(chain, "priced_chain.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateSaveResult writes a save-order validation report
func GenerateSaveResult(result *dto.SaveOrderResult, config Config) error {
	switch config.Format {
	case "", "text":
		return saveResultText(result)
	case "json":
		return writeJSON(result, "validation.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateOrderModification writes the chain link appended during a
// bidding round
func GenerateOrderModification(order *entities.SavedOrder, config Config) error {
	switch config.Format {
	case "", "text":
		return orderModificationText(order)
	case "json":
		return writeJSON(order, "order_modification.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateShipmentSplit writes a shipment distribution
func GenerateShipmentSplit(split *dto.ShipmentSplit, config Config) error {
	switch config.Format {
	case "", "text":
		return shipmentSplitText(split)
	case "json":
		return writeJSON(split, "shipment_split.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func pricedChainText(chain *dto.PricedChain, config Config) error {
	fmt.Printf("💶 Member Contribution Summary\n")
	fmt.Printf("==============================\n\n")
	fmt.Printf("User: %d  Season: %d  Phase: %s\n", chain.UserID, chain.ConfigID, chain.Phase)
	fmt.Printf("Chain links: %d\n\n", len(chain.Orders))

	for _, order := range chain.Orders {
		fmt.Printf("📋 Order %d (%d months)\n", order.OrderID, order.Months)
		fmt.Printf("%-8s %-20s %-12s %-8s %-10s\n",
			"Product", "Name", "Value", "Unit", "Monthly")
		fmt.Printf("%-8s %-20s %-12s %-8s %-10s\n",
			"--------", "--------------------", "------------", "--------", "----------")
		for _, item := range order.Items {
			fmt.Printf("%-8d %-20s %-12s %-8s %-10d\n",
				item.ProductID, item.Name, item.Value.String(), item.Unit.String(), item.MonthlyMsrp)
		}
		fmt.Printf("Raw monthly total:       %4d (selfgrown %d, cooperation %d)\n",
			order.RawMsrp.Monthly.Total, order.RawMsrp.Monthly.Selfgrown, order.RawMsrp.Monthly.Cooperation)
		fmt.Printf("Effective monthly total: %4d (selfgrown %d, cooperation %d)\n",
			order.EffectiveMsrp.Monthly.Total, order.EffectiveMsrp.Monthly.Selfgrown, order.EffectiveMsrp.Monthly.Cooperation)
		fmt.Printf("Offer:                   %4d\n\n", order.Offer)
	}

	if config.Verbose {
		fmt.Println("🏁 Pricing complete!")
	}
	return nil
}

func saveResultText(result *dto.SaveOrderResult) error {
	fmt.Printf("🔍 Order Validation Report\n")
	fmt.Printf("==========================\n\n")

	if result.Valid {
		fmt.Printf("✅ Proposal is valid (order %d)\n", result.OrderID)
	} else {
		fmt.Printf("❌ Proposal violates %d rule(s):\n", len(result.Errors))
		for _, reason := range result.Errors {
			fmt.Printf("  - %s\n", reason)
		}
	}

	fmt.Printf("\nReference contribution: %d/month (selfgrown %d, cooperation %d), %d/year\n",
		result.Msrp.Monthly.Total, result.Msrp.Monthly.Selfgrown,
		result.Msrp.Monthly.Cooperation, result.Msrp.Yearly.Total)
	return nil
}

func orderModificationText(order *entities.SavedOrder) error {
	fmt.Printf("📝 Order Modification Created\n")
	fmt.Printf("=============================\n\n")
	fmt.Printf("New order %d for user %d, valid %s to %s\n",
		order.ID, order.UserID,
		order.ValidFrom.Format("2006-01-02"), order.ValidTo.Format("2006-01-02"))
	fmt.Printf("Carried over: offer %d, depot %d, %d item(s)\n",
		order.Offer, order.DepotID, len(order.OrderItems))
	fmt.Println("Raise the new order during the bidding round; the previous order keeps running until the new one starts.")
	return nil
}

func shipmentSplitText(split *dto.ShipmentSplit) error {
	fmt.Printf("🚚 Shipment Distribution\n")
	fmt.Printf("========================\n\n")
	fmt.Printf("Product: %s (%d), unit %s, rounding step %d\n",
		split.ProductName, split.ProductID, split.Unit, split.RoundingStep)
	fmt.Printf("Distributed total: %d (hundredths of a unit)\n\n", split.Total)

	depotIDs := make([]entities.DepotID, 0, len(split.ByDepot))
	for id := range split.ByDepot {
		depotIDs = append(depotIDs, id)
	}
	sort.Slice(depotIDs, func(i, j int) bool { return depotIDs[i] < depotIDs[j] })

	fmt.Printf("%-8s %-12s\n", "Depot", "Quantity")
	fmt.Printf("%-8s %-12s\n", "--------", "------------")
	for _, id := range depotIDs {
		fmt.Printf("%-8d %-12d\n", id, split.ByDepot[id])
	}
	return nil
}

func writeJSON(v interface{}, filename string, config Config) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("💾 Results saved to: %s\n", path)
	}
	return nil
}
