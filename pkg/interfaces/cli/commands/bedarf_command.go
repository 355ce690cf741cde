package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/dto"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/services"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	domainservices "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/services"
	appconfig "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/config"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/events"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/repositories/csv"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/repositories/memory"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/interfaces/cli/output"
)

// Config holds configuration for the bedarf command
type Config struct {
	Action      string
	ScenarioDir string

	ProductsFile string
	DepotsFile   string
	ConfigsFile  string
	OrdersFile   string
	PricingFile  string

	OutputDir string
	Format    string
	Verbose   bool
	Help      bool

	UserID   int64
	ConfigID int64
	Date     string

	// validate action
	OrderID        int64
	DepotID        int64
	Offer          int64
	OfferReason    string
	Category       string
	CategoryReason string
	Items          string
	Admin          bool

	// split action
	ProductID int64
	Quantity  string
}

// BedarfCommand handles the main CLI execution logic
type BedarfCommand struct {
	config Config
	logger *zap.Logger
}

// NewBedarfCommand creates a new bedarf command with the given configuration
func NewBedarfCommand(config Config, logger *zap.Logger) *BedarfCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BedarfCommand{
		config: config,
		logger: logger,
	}
}

// scenario bundles the loaded snapshot repositories
type scenario struct {
	catalog *memory.CatalogRepository
	depots  *memory.DepotRepository
	orders  *memory.OrderRepository
	configs *memory.ConfigRepository
	stats   *memory.StatisticsRepository
	pricing domainservices.PricingConfig
	store   *events.InMemoryEventStore
}

// Execute runs the bedarf command
func (c *BedarfCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	now, err := c.resolveDate()
	if err != nil {
		return err
	}

	sc, err := c.loadScenario()
	if err != nil {
		return err
	}

	switch c.config.Action {
	case "price":
		return c.runPrice(ctx, sc, now)
	case "validate":
		return c.runValidate(ctx, sc, now)
	case "modify":
		return c.runModify(ctx, sc, now)
	case "split":
		return c.runSplit(ctx, sc)
	default:
		return fmt.Errorf("unsupported action: %s (expected price, validate, modify or split)", c.config.Action)
	}
}

func (c *BedarfCommand) runPrice(ctx context.Context, sc *scenario, now time.Time) error {
	if c.config.Verbose {
		fmt.Println("💶 Pricing member chain...")
	}

	service := services.NewPricingService(sc.pricing, c.logger)
	chain, err := service.PriceMemberChain(ctx,
		entities.UserID(c.config.UserID), entities.ConfigID(c.config.ConfigID), now,
		sc.orders, sc.catalog, sc.depots, sc.configs, sc.stats)
	if err != nil {
		return fmt.Errorf("error pricing member chain: %w", err)
	}

	return output.GeneratePricedChain(chain, c.outputConfig())
}

func (c *BedarfCommand) runValidate(ctx context.Context, sc *scenario, now time.Time) error {
	if c.config.Verbose {
		fmt.Println("🔍 Validating proposed order...")
	}

	request, err := c.buildSaveRequest()
	if err != nil {
		return err
	}

	service := services.NewOrderService(sc.pricing, c.logger)
	result, err := service.SaveOrder(ctx, request, now,
		sc.orders, sc.catalog, sc.depots, sc.configs, sc.stats, sc.store)
	if err != nil {
		return fmt.Errorf("error validating order: %w", err)
	}

	return output.GenerateSaveResult(result, c.outputConfig())
}

func (c *BedarfCommand) runModify(ctx context.Context, sc *scenario, now time.Time) error {
	if c.config.Verbose {
		fmt.Println("📝 Appending an order modification link...")
	}

	role := entities.RoleUser
	if c.config.Admin {
		role = entities.RoleAdmin
	}

	service := services.NewOrderService(sc.pricing, c.logger)
	order, err := service.CreateOrderModification(ctx,
		entities.UserID(c.config.UserID), entities.ConfigID(c.config.ConfigID),
		role, true, now, sc.orders, sc.configs, sc.store)
	if err != nil {
		return fmt.Errorf("error creating order modification: %w", err)
	}

	return output.GenerateOrderModification(order, c.outputConfig())
}

func (c *BedarfCommand) runSplit(ctx context.Context, sc *scenario) error {
	if c.config.Verbose {
		fmt.Println("🚚 Splitting shipment across depots...")
	}

	quantity, err := decimal.NewFromString(c.config.Quantity)
	if err != nil {
		return fmt.Errorf("invalid shipment quantity %q: %w", c.config.Quantity, err)
	}

	service := services.NewShipmentService(sc.pricing, nil, c.logger)
	split, err := service.SplitShipment(ctx,
		entities.ConfigID(c.config.ConfigID), entities.ProductID(c.config.ProductID), quantity,
		sc.catalog, sc.stats, sc.store)
	if err != nil {
		return fmt.Errorf("error splitting shipment: %w", err)
	}

	return output.GenerateShipmentSplit(split, c.outputConfig())
}

func (c *BedarfCommand) buildSaveRequest() (dto.SaveOrderRequest, error) {
	category, err := entities.ParseUserCategory(c.config.Category)
	if err != nil {
		return dto.SaveOrderRequest{}, err
	}
	items, err := csv.ParseOrderItems(c.config.Items)
	if err != nil {
		return dto.SaveOrderRequest{}, fmt.Errorf("invalid -items: %w", err)
	}

	role := entities.RoleUser
	if c.config.Admin {
		role = entities.RoleAdmin
	}

	return dto.SaveOrderRequest{
		UserID:         entities.UserID(c.config.UserID),
		Role:           role,
		UserActive:     true,
		OrderID:        entities.OrderID(c.config.OrderID),
		ConfigID:       entities.ConfigID(c.config.ConfigID),
		DepotID:        entities.DepotID(c.config.DepotID),
		Offer:          c.config.Offer,
		OfferReason:    c.config.OfferReason,
		Category:       category,
		CategoryReason: c.config.CategoryReason,
		OrderItems:     items,
	}, nil
}

func (c *BedarfCommand) loadScenario() (*scenario, error) {
	files, err := c.resolveInputFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
		fmt.Println("📂 Loading snapshot from CSV files...")
	}

	loader := csv.NewLoader()

	products, err := loader.LoadProducts(files["Products"])
	if err != nil {
		return nil, fmt.Errorf("error loading products: %w", err)
	}
	depots, err := loader.LoadDepots(files["Depots"])
	if err != nil {
		return nil, fmt.Errorf("error loading depots: %w", err)
	}
	configs, err := loader.LoadConfigs(files["Configs"])
	if err != nil {
		return nil, fmt.Errorf("error loading season configs: %w", err)
	}
	orders, err := loader.LoadOrders(files["Orders"])
	if err != nil {
		return nil, fmt.Errorf("error loading orders: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Snapshot loaded successfully:\n")
		fmt.Printf("  Products: %d\n", len(products))
		fmt.Printf("  Depots: %d\n", len(depots))
		fmt.Printf("  Seasons: %d\n", len(configs))
		fmt.Printf("  Orders: %d\n", len(orders))
		fmt.Println()
	}

	pricing := domainservices.DefaultPricingConfig()
	if c.config.PricingFile != "" {
		pricing, err = appconfig.LoadPricingConfig(c.config.PricingFile)
		if err != nil {
			return nil, fmt.Errorf("error loading pricing config: %w", err)
		}
	}

	sc := &scenario{
		catalog: memory.NewCatalogRepository(len(products)),
		depots:  memory.NewDepotRepository(len(depots)),
		orders:  memory.NewOrderRepository(),
		configs: memory.NewConfigRepository(),
		pricing: pricing,
		store:   events.NewInMemoryEventStore(c.logger),
	}
	if err := sc.catalog.LoadProducts(products); err != nil {
		return nil, fmt.Errorf("failed to load products into repository: %w", err)
	}
	if err := sc.depots.LoadDepots(depots); err != nil {
		return nil, fmt.Errorf("failed to load depots into repository: %w", err)
	}
	if err := sc.configs.LoadConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to load season configs into repository: %w", err)
	}
	if err := sc.orders.LoadOrders(orders); err != nil {
		return nil, fmt.Errorf("failed to load orders into repository: %w", err)
	}
	sc.stats = memory.NewStatisticsRepository(sc.orders, sc.catalog, sc.depots)

	return sc, nil
}

// validateInputs validates the command configuration
func (c *BedarfCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.ProductsFile == "" || c.config.DepotsFile == "" ||
			c.config.ConfigsFile == "" || c.config.OrdersFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}
	if c.config.ConfigID <= 0 {
		return fmt.Errorf("must specify a season with -season")
	}
	switch c.config.Action {
	case "price":
		if c.config.UserID <= 0 {
			return fmt.Errorf("price requires -user")
		}
	case "validate":
		if c.config.UserID <= 0 {
			return fmt.Errorf("validate requires -user")
		}
	case "modify":
		if c.config.UserID <= 0 {
			return fmt.Errorf("modify requires -user")
		}
	case "split":
		if c.config.ProductID <= 0 || c.config.Quantity == "" {
			return fmt.Errorf("split requires -product and -quantity")
		}
	}
	return nil
}

// resolveDate parses the -date flag, defaulting to the current time
func (c *BedarfCommand) resolveDate() (time.Time, error) {
	if c.config.Date == "" {
		return time.Now().UTC(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, c.config.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid -date %q (expected RFC3339 or YYYY-MM-DD)", c.config.Date)
}

// resolveInputFiles determines the actual file paths to use
func (c *BedarfCommand) resolveInputFiles() (map[string]string, error) {
	var productsPath, depotsPath, configsPath, ordersPath string

	if c.config.ScenarioDir != "" {
		productsPath = filepath.Join(c.config.ScenarioDir, "products.csv")
		depotsPath = filepath.Join(c.config.ScenarioDir, "depots.csv")
		configsPath = filepath.Join(c.config.ScenarioDir, "configs.csv")
		ordersPath = filepath.Join(c.config.ScenarioDir, "orders.csv")
	} else {
		productsPath = c.config.ProductsFile
		depotsPath = c.config.DepotsFile
		configsPath = c.config.ConfigsFile
		ordersPath = c.config.OrdersFile
	}

	files := map[string]string{
		"Products": productsPath,
		"Depots":   depotsPath,
		"Configs":  configsPath,
		"Orders":   ordersPath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

func (c *BedarfCommand) outputConfig() output.Config {
	return output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
}

// printHeader prints the command header information
func (c *BedarfCommand) printHeader(files map[string]string) {
	fmt.Printf("🥕 Bedarf CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Products: %s\n", files["Products"])
	fmt.Printf("  Depots: %s\n", files["Depots"])
	fmt.Printf("  Configs: %s\n", files["Configs"])
	fmt.Printf("  Orders: %s\n", files["Orders"])
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *BedarfCommand) showHelp() {
	fmt.Printf(`Bedarf CLI - Vegetable Subscription Allocation and Pricing

USAGE:
    bedarf -action price -scenario <dir> -season <id> -user <id>
    bedarf -action validate -scenario <dir> -season <id> -user <id> -items <pairs> ...
    bedarf -action modify -scenario <dir> -season <id> -user <id>
    bedarf -action split -scenario <dir> -season <id> -product <id> -quantity <q>

OPTIONS:
    -action <name>      Action to run: price, validate, modify, split (default: price)
    -scenario <dir>     Path to scenario directory containing CSV files
    -products <file>    Path to products CSV file
    -depots <file>      Path to depots CSV file
    -configs <file>     Path to season configs CSV file
    -orders <file>      Path to orders CSV file
    -pricing <file>     Path to YAML pricing configuration (optional)
    -season <id>        Season config id
    -user <id>          Member user id (price, validate, modify)
    -date <date>        Evaluation date, RFC3339 or YYYY-MM-DD (default: now)
    -order <id>         Order id to modify (validate; 0 creates a new order)
    -depot <id>         Depot id for the proposal (validate)
    -offer <amount>     Monthly offer in euros (validate)
    -offer-reason <s>   Reason for an offer below the reference (validate)
    -category <name>    Contribution category: CAT100, CAT115, CAT130 (validate)
    -category-reason <s> Reason for a reason-bearing category (validate)
    -items <pairs>      Order items as productID:value pairs, e.g. "1:500;2:4"
    -admin              Run the proposal with admin privileges (validate)
    -product <id>       Product id to split (split)
    -quantity <q>       Shipment quantity in the product's unit (split)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    bedarf -action price -scenario testdata/season -season 1 -user 7
    bedarf -action validate -scenario testdata/season -season 1 -user 7 \
        -depot 2 -offer 13 -category CAT130 -items "1:500;2:4"
    bedarf -action modify -scenario testdata/season -season 1 -user 7 -date 2025-06-15
    bedarf -action split -scenario testdata/season -season 1 -product 1 -quantity 75

CSV FORMATS:
    products.csv: id,name,unit,msrp,frequency,quantity,quantity_min,quantity_max,quantity_step,category_type,active
    depots.csv:   id,name,capacity,active
    configs.csv:  id,name,start_order,start_bidding_round,end_bidding_round,valid_from,valid_to,budget
    orders.csv:   id,user_id,config_id,depot_id,offer,category,valid_from,valid_to,items
`)
}
