package commands

import (
	"context"
	"fmt"
	"os"

	"abcplan/pkg/application/services/classify"
	"abcplan/pkg/application/services/normalize"
	"abcplan/pkg/application/services/orchestration"
	"abcplan/pkg/application/services/policy"
	"abcplan/pkg/infrastructure/config"
	"abcplan/pkg/infrastructure/events"
	"abcplan/pkg/infrastructure/logging"
	"abcplan/pkg/infrastructure/repositories/csv"
	"abcplan/pkg/infrastructure/repositories/memory"
	"abcplan/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	InputFile   string
	ConfigFile  string
	OutputDir   string
	Format      string
	DayPrefix   string
	ValueColumn string
	Verbose     bool
	Help        bool
}

// PlanCommand handles the classification-and-policy run
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{config: config}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.InputFile == "" {
		return fmt.Errorf("validation error: must specify -input sales CSV file")
	}
	if _, err := os.Stat(c.config.InputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", c.config.InputFile)
	}

	appConfig, err := c.resolveConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if c.config.Verbose {
		c.printHeader()
	}

	// Load the raw sales table
	if c.config.Verbose {
		fmt.Println("📂 Loading sales data...")
	}

	loader := csv.NewLoader()
	table, err := loader.LoadSalesTable(c.config.InputFile)
	if err != nil {
		return fmt.Errorf("error loading sales table: %w", err)
	}

	productRepo := memory.NewProductRepository()
	if err := productRepo.LoadTable(table); err != nil {
		return fmt.Errorf("failed to load table into repository: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Columns: %d\n", len(table.Columns))
		fmt.Printf("  Products: %d\n", productRepo.RowCount())
		fmt.Println()
	}

	orchestrator, err := orchestration.NewPlanningOrchestrator(
		pipelineConfig(appConfig),
		events.NewInMemoryEventStore(),
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🔄 Running ABC classification and policy computation...")
	}

	stored, err := productRepo.GetTable()
	if err != nil {
		return err
	}

	result, err := orchestrator.Run(ctx, stored)
	if err != nil {
		return fmt.Errorf("error running pipeline: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Pipeline completed in %v\n\n", result.Elapsed)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 ABC policy analysis complete!")
	}
	return nil
}

// resolveConfig loads the configuration file (or defaults) and applies the
// flag overrides
func (c *PlanCommand) resolveConfig() (*config.Config, error) {
	appConfig := config.Default()
	if c.config.ConfigFile != "" {
		loaded, err := config.Load(c.config.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
		appConfig = loaded
	}

	if c.config.DayPrefix != "" {
		appConfig.DemandColumnPrefix = c.config.DayPrefix
	}
	if c.config.ValueColumn != "" {
		appConfig.ValueColumn = c.config.ValueColumn
	}

	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return appConfig, nil
}

// pipelineConfig maps the file/flag configuration onto the stage configs
func pipelineConfig(appConfig *config.Config) orchestration.Config {
	normalizeConfig := normalize.DefaultConfig()
	normalizeConfig.DemandColumnPrefix = appConfig.DemandColumnPrefix

	return orchestration.Config{
		Normalize:           normalizeConfig,
		DefaultLeadTimeDays: appConfig.DefaultLeadTimeDays,
		Classify: classify.Config{
			ValueColumn: appConfig.ValueColumn,
			ACutoff:     appConfig.ACutoff,
			BCutoff:     appConfig.BCutoff,
		},
		Policy: policy.Params{
			OrderingCost:      appConfig.OrderingCost,
			HoldingRate:       appConfig.HoldingRate,
			ServiceLevelA:     appConfig.ServiceLevelA,
			ServiceLevelB:     appConfig.ServiceLevelB,
			ZScoreA:           appConfig.ZScoreA,
			ZScoreB:           appConfig.ZScoreB,
			ReviewPeriodBDays: appConfig.ReviewPeriodBDays,
			Parallelism:       appConfig.Parallelism,
		},
	}
}

func (c *PlanCommand) printHeader() {
	fmt.Printf("🚀 ABC Inventory Policy CLI\n")
	fmt.Printf("Input file: %s\n", c.config.InputFile)
	if c.config.ConfigFile != "" {
		fmt.Printf("Config file: %s\n", c.config.ConfigFile)
	}
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	fmt.Printf(`ABC Inventory Policy CLI - ABC classification and replenishment policies

USAGE:
    abcplan -input <sales.csv>                 # Run with default parameters
    abcplan -input <sales.csv> -config <yaml>  # Run with a parameter file

OPTIONS:
    -input <file>       Path to the sales CSV file (required)
    -config <file>      Path to a yaml parameter file (optional)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -day-prefix <s>     Demand-observation column prefix (default: Dia_)
    -value-column <s>   Value measure column for ABC ranking (default: total_mes)
    -verbose            Enable verbose output
    -help               Show this help message

SALES CSV FORMAT:
    codigo,nombre,Dia_1,Dia_2,...,Costo_unitario,Lead_Time,Stock_actual
    P001,Harina 1kg,12,9,...,1200,3,40

    Day columns are detected by prefix. Unit cost, sales value, lead time
    and current stock are optional; missing lead time defaults to 3 days
    and missing stock is treated as unknown, not zero.

PARAMETER FILE (yaml):
    a_cutoff: 0.80
    b_cutoff: 0.95
    ordering_cost: 30000
    holding_rate: 0.20
    service_level_a: 0.98
    service_level_b: 0.95
    review_period_b_days: 5

EXAMPLES:
    # Classify and print the policy table
    abcplan -input ventas_mes.csv -verbose

    # Export the full output table as CSV
    abcplan -input ventas_mes.csv -format csv -output results/

    # Rank by sales value instead of monthly units
    abcplan -input ventas_mes.csv -value-column Dinero_Ventas
`)
}
