package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fhdl/internal/shape"
)

var shapeCmd = &cobra.Command{
	Use:   "shape [--min N --max M | VALUE...]",
	Short: "Show the shape needed for a value range or constants",
	Long: `With --min/--max print the shape of a signal holding every integer in
[min, max). With VALUE arguments print the default shape of each constant.`,
	RunE: runShape,
}

func init() {
	shapeCmd.Flags().Int64("min", 0, "inclusive lower bound")
	shapeCmd.Flags().Int64("max", 0, "exclusive upper bound")
}

func runShape(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
		if len(args) > 0 {
			return fmt.Errorf("use either --min/--max or VALUE arguments, not both")
		}
		lo, err := cmd.Flags().GetInt64("min")
		if err != nil {
			return err
		}
		hi, err := cmd.Flags().GetInt64("max")
		if err != nil {
			return err
		}
		sh, err := shape.ForRange(lo, hi)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%d, %d) -> %s\n", lo, hi, sh)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("expected --min/--max or at least one VALUE")
	}
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", arg, err)
		}
		fmt.Fprintf(out, "%s -> %s\n", arg, shape.Of(v))
	}
	return nil
}
