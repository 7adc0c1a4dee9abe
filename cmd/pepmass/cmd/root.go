// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepMass/pkg/config"
	"github.com/ChrisMcGann/PepMass/pkg/core"
)

var (
	// Global flags
	massTypeName string
	modsCSV      string
	precision    int
	verbose      bool

	// Flags for calculation commands
	modifications []string
	charge        int

	// Flags for batch command
	inputFile      string
	outputFile     string
	configFile     string
	saveConfigFile string
)

// demoSequences are printed when pepmass runs without a subcommand.
var demoSequences = []string{
	"ACDEFGHIKLMNPQRSTVWY", // all 20 standard residues
	"SIINFEKL",             // OVA257-264, mouse MHC-I epitope
	"GILGFVFTL",            // influenza M1, HLA-A2 epitope
}

var rootCmd = &cobra.Command{
	Use:   "pepmass",
	Short: "PepMass - Peptide mass and m/z calculator",
	Long: `PepMass computes peptide molecular weights, m/z values and amino acid
composition from one-letter sequences over the 20 standard amino acids.

Run without a subcommand to print example calculations for a few
well-known peptides.

Supports:
- Monoisotopic and average masses
- Named post-translational modifications (see 'pepmass mods')
- Batch processing of FASTA files into a SQLite database`,
	Version:       "1.0.0",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDemo,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(mwCmd)
	rootCmd.AddCommand(mzCmd)
	rootCmd.AddCommand(compositionCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(formulaCmd)
	rootCmd.AddCommand(modsCmd)
	rootCmd.AddCommand(batchCmd)

	rootCmd.PersistentFlags().StringVarP(&massTypeName, "mass-type", "t", string(core.Monoisotopic), "Mass type: monoisotopic or average")
	rootCmd.PersistentFlags().StringVar(&modsCSV, "mods-csv", "", "CSV file extending the modification table (mod,massshift[,sites])")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", 5, "Decimal places in printed results")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	for _, c := range []*cobra.Command{mwCmd, mzCmd, batchCmd} {
		c.Flags().StringArrayVarP(&modifications, "mod", "m", nil, "Modification name or mass shift (repeatable, or a comma-separated list)")
	}
	mzCmd.Flags().IntVarP(&charge, "charge", "z", 1, "Charge state (positive integer)")

	batchCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input FASTA file (required)")
	batchCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output database file (required)")
	batchCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML run configuration")
	batchCmd.Flags().StringVar(&saveConfigFile, "save-config", "", "Write the effective run configuration to this YAML file")
	batchCmd.MarkFlagRequired("in")
	batchCmd.MarkFlagRequired("out")
}

// newLogger returns a text logger on w; debug level when --verbose is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// massTypeFlag returns --mass-type with case and surrounding space folded.
func massTypeFlag() string {
	return strings.ToLower(strings.TrimSpace(massTypeName))
}

// modTokens flattens the --mod values; each may be a "," or ";" separated list.
func modTokens() []string {
	var mods []string
	for _, v := range modifications {
		mods = append(mods, core.ParseModString(v)...)
	}
	return mods
}

// newModDatabase returns the default modification table, extended by
// --mods-csv when given.
func newModDatabase() (*core.ModDatabase, error) {
	cfg := config.DefaultConfig()
	cfg.ModsCSV = modsCSV
	return cfg.ModDatabase()
}

func newCalculator() (*core.Calculator, error) {
	db, err := newModDatabase()
	if err != nil {
		return nil, err
	}
	return core.NewCalculator(db), nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	mt, err := core.ParseMassType(massTypeFlag())
	if err != nil {
		return err
	}
	calc, err := newCalculator()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, seq := range demoSequences {
		summary, err := calc.Summary(seq, mt)
		if err != nil {
			return fmt.Errorf("%s: %w", seq, err)
		}
		printSummary(out, summary)
		fmt.Fprintln(out)
	}
	return nil
}

// printSummary writes a human-readable summary
func printSummary(w io.Writer, s *core.Summary) {
	fmt.Fprintf(w, "Sequence: %s\n", s.Sequence)
	fmt.Fprintf(w, "  Length: %d aa\n", s.Length)
	fmt.Fprintf(w, "  Molecular weight (%s): %.*f Da\n", s.MassType, precision, s.MolecularWeight)
	fmt.Fprintf(w, "  [M+H]+:   %.*f\n", precision, s.MZByCharge[1])
	fmt.Fprintf(w, "  [M+2H]2+: %.*f\n", precision, s.MZByCharge[2])
	fmt.Fprintf(w, "  [M+3H]3+: %.*f\n", precision, s.MZByCharge[3])
	fmt.Fprintf(w, "  Composition: %s\n", s.Composition)
}
