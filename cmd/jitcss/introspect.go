package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/jitcss"
	"github.com/npillmayer/jitcss/engine"
	"github.com/spf13/cobra"
)

var sortCmd = &cobra.Command{
	Use:   "sort class...",
	Short: "Print classes in the order their rules appear in the output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := buildContext(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sortClasses(ctx, args), " "))
		return nil
	},
}

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the classes the configuration is able to generate",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := buildContext(cmd)
		if err != nil {
			return err
		}
		withModifiers, _ := cmd.Flags().GetBool("modifiers")
		out := cmd.OutOrStdout()
		for _, entry := range ctx.ClassList(withModifiers) {
			if len(entry.Modifiers) > 0 {
				fmt.Fprintf(out, "%s /%s\n", entry.Name, strings.Join(entry.Modifiers, ","))
				continue
			}
			fmt.Fprintln(out, entry.Name)
		}
		return nil
	},
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the registered variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := buildContext(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, info := range ctx.Variants() {
			switch {
			case len(info.Values) > 0:
				fmt.Fprintf(out, "%-16s %s\n", info.Name, strings.Join(info.Values, " "))
			case info.IsArbitrary:
				fmt.Fprintf(out, "%-16s [...]\n", info.Name)
			default:
				fmt.Fprintf(out, "%-16s %s\n", info.Name, strings.Join(info.Selectors("", ""), ", "))
			}
		}
		return nil
	},
}

func init() {
	classesCmd.Flags().Bool("modifiers", false, "list accepted modifiers with each class")
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(variantsCmd)
}

// buildContext builds the input once and returns the resulting context.
func buildContext(cmd *cobra.Command) (*engine.Context, error) {
	in, err := input(cmd)
	if err != nil {
		return nil, err
	}
	res, err := jitcss.New().Process(in)
	if err != nil {
		return nil, err
	}
	return res.Context, nil
}

// sortClasses orders classes by their position in the output. Unknown
// classes come first, in their original order.
func sortClasses(ctx *engine.Context, classes []string) []string {
	ordered := ctx.ClassOrder(classes)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Order, ordered[j].Order
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return a.Cmp(b) < 0
	})
	sorted := make([]string, len(ordered))
	for i, c := range ordered {
		sorted[i] = c.Name
	}
	return sorted
}
