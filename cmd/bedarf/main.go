package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		action      = flag.String("action", "price", "Action to run: price, validate, split")
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		productsFile = flag.String("products", "", "Path to products CSV file")
		depotsFile   = flag.String("depots", "", "Path to depots CSV file")
		configsFile  = flag.String("configs", "", "Path to season configs CSV file")
		ordersFile   = flag.String("orders", "", "Path to orders CSV file")
		pricingFile  = flag.String("pricing", "", "Path to YAML pricing configuration (optional)")
		outputDir    = flag.String("output", "", "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")

		userID   = flag.Int64("user", 0, "Member user id")
		configID = flag.Int64("season", 0, "Season config id")
		date     = flag.String("date", "", "Evaluation date, RFC3339 or YYYY-MM-DD (default: now)")

		orderID        = flag.Int64("order", 0, "Order id to modify (0 creates a new order)")
		depotID        = flag.Int64("depot", 0, "Depot id for the proposal")
		offer          = flag.Int64("offer", 0, "Monthly offer in euros")
		offerReason    = flag.String("offer-reason", "", "Reason for an offer below the reference")
		category       = flag.String("category", "CAT130", "Contribution category: CAT100, CAT115, CAT130")
		categoryReason = flag.String("category-reason", "", "Reason for a reason-bearing category")
		items          = flag.String("items", "", `Order items as productID:value pairs, e.g. "1:500;2:4"`)
		admin          = flag.Bool("admin", false, "Run the proposal with admin privileges")

		productID = flag.Int64("product", 0, "Product id to split")
		quantity  = flag.String("quantity", "", "Shipment quantity in the product's unit")
	)

	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	// Create command configuration
	config := commands.Config{
		Action:         *action,
		ScenarioDir:    *scenarioDir,
		ProductsFile:   *productsFile,
		DepotsFile:     *depotsFile,
		ConfigsFile:    *configsFile,
		OrdersFile:     *ordersFile,
		PricingFile:    *pricingFile,
		OutputDir:      *outputDir,
		Format:         *format,
		Verbose:        *verbose,
		Help:           *help,
		UserID:         *userID,
		ConfigID:       *configID,
		Date:           *date,
		OrderID:        *orderID,
		DepotID:        *depotID,
		Offer:          *offer,
		OfferReason:    *offerReason,
		Category:       *category,
		CategoryReason: *categoryReason,
		Items:          *items,
		Admin:          *admin,
		ProductID:      *productID,
		Quantity:       *quantity,
	}

	// Create and execute command
	cmd := commands.NewBedarfCommand(config, logger)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
