package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"abcplan/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		inputFile  = flag.String("input", "", "Path to sales CSV file")
		configFile = flag.String("config", "", "Path to yaml parameter file (optional)")
		outputDir  = flag.String("output", "", "Output directory for results (optional)")
		format     = flag.String("format", "text", "Output format: text, json, csv")
		dayPrefix  = flag.String("day-prefix", "", "Demand-observation column prefix (default: Dia_)")
		valueCol   = flag.String("value-column", "", "Value measure column for ABC ranking (default: total_mes)")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		InputFile:   *inputFile,
		ConfigFile:  *configFile,
		OutputDir:   *outputDir,
		Format:      *format,
		DayPrefix:   *dayPrefix,
		ValueColumn: *valueCol,
		Verbose:     *verbose,
		Help:        *help,
	}

	// Create and execute command
	cmd := commands.NewPlanCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
