package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepMass/pkg/core"
)

var mwCmd = &cobra.Command{
	Use:   "mw SEQUENCE...",
	Short: "Calculate peptide molecular weight",
	Long: `Calculate the neutral molecular weight of one or more peptides.

Examples:
  pepmass mw SIINFEKL
  pepmass mw --mass-type average GILGFVFTL
  pepmass mw --mod phosphorylation --mod oxidation MSIINFEKL
  pepmass mw --mod phosphorylation,oxidation MSIINFEKL`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mt, calc, err := calcSetup()
		if err != nil {
			return err
		}
		mods := modTokens()
		for _, seq := range args {
			mw, err := calc.MolecularWeight(seq, mt, mods)
			if err != nil {
				return fmt.Errorf("%s: %w", seq, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.*f\n", core.NormalizeSequence(seq), precision, mw)
		}
		return nil
	},
}

var mzCmd = &cobra.Command{
	Use:   "mz SEQUENCE...",
	Short: "Calculate peptide m/z for a charge state",
	Long: `Calculate (M + z*proton) / z for one or more peptides.

Examples:
  pepmass mz --charge 2 SIINFEKL
  pepmass mz -z 3 --mod carbamidomethylation ACDEFGHIK`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mt, calc, err := calcSetup()
		if err != nil {
			return err
		}
		mods := modTokens()
		for _, seq := range args {
			mz, err := calc.MZ(seq, charge, mt, mods)
			if err != nil {
				return fmt.Errorf("%s: %w", seq, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.*f\n", core.NormalizeSequence(seq), charge, precision, mz)
		}
		return nil
	},
}

var compositionCmd = &cobra.Command{
	Use:   "composition SEQUENCE",
	Short: "Count amino acids in a peptide",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comp, err := core.AminoAcidComposition(args[0])
		if err != nil {
			return err
		}

		residues := make([]rune, 0, len(comp))
		for aa := range comp {
			residues = append(residues, aa)
		}
		sort.Slice(residues, func(i, j int) bool { return residues[i] < residues[j] })

		out := cmd.OutOrStdout()
		for _, aa := range residues {
			fmt.Fprintf(out, "%c\t%d\n", aa, comp[aa])
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary SEQUENCE...",
	Short: "Print weight, m/z at charges 1-3 and composition",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mt, calc, err := calcSetup()
		if err != nil {
			return err
		}
		for i, seq := range args {
			summary, err := calc.Summary(seq, mt)
			if err != nil {
				return fmt.Errorf("%s: %w", seq, err)
			}
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			printSummary(cmd.OutOrStdout(), summary)
		}
		return nil
	},
}

var formulaCmd = &cobra.Command{
	Use:   "formula SEQUENCE...",
	Short: "Print the elemental formula of unmodified peptides",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, seq := range args {
			formula, err := core.MolecularFormula(seq)
			if err != nil {
				return fmt.Errorf("%s: %w", seq, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", core.NormalizeSequence(seq), formula)
		}
		return nil
	},
}

var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "List recognized modifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := newModDatabase()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s %12s  %s\n", "NAME", "DELTA (Da)", "SITES")
		fmt.Fprintln(out, strings.Repeat("-", 44))
		for _, e := range db.Entries() {
			fmt.Fprintf(out, "%-22s %12.5f  %s\n", e.Name, e.Mass, e.Sites)
		}
		return nil
	},
}

// calcSetup resolves --mass-type and builds the calculator
func calcSetup() (core.MassType, *core.Calculator, error) {
	mt, err := core.ParseMassType(massTypeFlag())
	if err != nil {
		return "", nil, err
	}
	calc, err := newCalculator()
	if err != nil {
		return "", nil, err
	}
	return mt, calc, nil
}
