package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepMass/pkg/config"
	"github.com/ChrisMcGann/PepMass/pkg/core"
	"github.com/ChrisMcGann/PepMass/pkg/filter"
	"github.com/ChrisMcGann/PepMass/pkg/reader/fasta"
	"github.com/ChrisMcGann/PepMass/pkg/writer/sqlite"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Calculate masses for every record of a FASTA file",
	Long: `Read a FASTA file, calculate molecular weight, m/z at charges 1-3,
composition and formula for every record, and write the results to a
SQLite database. Records with unknown residues are skipped with a warning.

Examples:
  # Monoisotopic masses for all records
  pepmass batch --in epitopes.fasta --out epitopes.db

  # Average masses, 8-11mers only, with a run configuration
  pepmass batch --in proteome.fasta --out scan.db --config run.yaml

  # Record the effective settings next to the output
  pepmass batch -i epitopes.fasta -o epitopes.db -t average --save-config epitopes.yaml`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	cfg, err := loadBatchConfig(cmd)
	if err != nil {
		return err
	}
	mt, err := cfg.ParsedMassType()
	if err != nil {
		return err
	}

	db, err := cfg.ModDatabase()
	if err != nil {
		return err
	}
	// Run-wide modifications are resolved once, before any output exists.
	for _, mod := range cfg.Modifications {
		if _, err := db.Resolve(mod); err != nil {
			return fmt.Errorf("modifications: %w", err)
		}
	}
	calc := core.NewCalculator(db)

	if saveConfigFile != "" {
		if err := cfg.SaveToFile(saveConfigFile); err != nil {
			return err
		}
		logger.Info("saved run configuration", slog.String("path", saveConfigFile))
	}

	// Open input file
	inFile, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	reader := fasta.NewReader(inFile, inputFile)

	writer, err := sqlite.NewWriter(outputFile, sqlite.RunInfo{
		MassType:    mt,
		SourceFile:  inputFile,
		Description: cfg.Output.Description,
		Precision:   cfg.Output.Precision,
	})
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	// Close is a no-op after Finalize; on any earlier return it leaves
	// HeaderTable empty.
	defer writer.Close()

	logger.Info("starting batch",
		slog.String("input", inputFile),
		slog.String("output", outputFile),
		slog.String("mass_type", string(mt)),
		slog.String("run_id", writer.RunID()))

	fc := cfg.FilterConfig()
	invalid, filtered := 0, 0

	for reader.Next() {
		p := reader.Peptide()
		p.Modifications = cfg.Modifications

		if err := calc.Evaluate(p, mt); err != nil {
			logger.Warn("skipping invalid record", slog.String("record", p.Name()), slog.String("error", err.Error()))
			writer.Skip()
			invalid++
			continue
		}

		if err := fc.Apply(p); err != nil {
			var rej *filter.Rejection
			if !errors.As(err, &rej) {
				return fmt.Errorf("failed to filter %s: %w", p.Name(), err)
			}
			logger.Debug("record filtered", slog.String("record", p.Name()), slog.String("reason", rej.Reason))
			writer.Skip()
			filtered++
			continue
		}

		if err := writer.WritePeptide(p); err != nil {
			return fmt.Errorf("failed to write peptide %s: %w", p.Name(), err)
		}

		if every := cfg.Output.ProgressEvery; every > 0 && writer.Count()%every == 0 {
			logger.Info("progress", slog.Int("written", writer.Count()))
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	written := writer.Count()
	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nBatch complete!\n")
	fmt.Fprintf(out, "Records read: %d\n", reader.Count())
	fmt.Fprintf(out, "Written: %d\n", written)
	if invalid > 0 {
		fmt.Fprintf(out, "Skipped: %d (invalid sequence or modification)\n", invalid)
	}
	if filtered > 0 {
		fmt.Fprintf(out, "Filtered: %d\n", filtered)
	}
	fmt.Fprintf(out, "Output: %s\n", outputFile)

	return nil
}

// loadBatchConfig reads --config when given, then applies flag overrides
func loadBatchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mass-type") {
		cfg.MassType = massTypeFlag()
	}
	if flags.Changed("mods-csv") {
		cfg.ModsCSV = modsCSV
	}
	if flags.Changed("mod") {
		cfg.Modifications = modTokens()
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = precision
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
