package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"recipe-manager/internal/client"
	"recipe-manager/internal/pkg/common"

	"github.com/spf13/cobra"
)

// app state shared by the commands
type app struct {
	server  string
	timeout time.Duration
	api     *client.Client
	out     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "recipectl",
		Short:         "Manage recipes on a recipe-manager server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.api = client.New(a.server, a.timeout)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.server, "server", "http://localhost:8080", "server base URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(
		a.listCmd(),
		a.searchCmd(),
		a.deleteCmd(),
		a.saveCmd(),
		a.showCmd(),
		a.suggestCmd(),
		a.editCmd(),
	)
	return root
}

func (a *app) printRecipes(recipes []common.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(a.out, "no recipes")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tINGREDIENTS")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Name, r.Ingredients)
	}
	_ = tw.Flush()
}

func (a *app) printDetails(details *common.RecipeDetails) {
	fmt.Fprintln(a.out, "Ingredients:")
	for i, ing := range details.Ingredients {
		fmt.Fprintf(a.out, "  [%d] %s %gg\n", i, ing.Item, ing.AmountG)
	}
	fmt.Fprintln(a.out, "Instructions:")
	for i, step := range details.Instructions {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, step)
	}
	if n := details.Nutrition; n != nil {
		fmt.Fprintf(a.out, "Nutrition: %g kcal, protein %gg, fat %gg, carbs %gg\n", n.Calories, n.ProteinG, n.FatG, n.CarbsG)
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", raw)
	}
	return id, nil
}

// parseItems parses item=grams pairs
func parseItems(pairs []string) ([]common.IngredientAmount, error) {
	items := make([]common.IngredientAmount, 0, len(pairs))
	for _, p := range pairs {
		name, grams, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid item %q, want item=grams", p)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(grams), 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("invalid amount in %q", p)
		}
		items = append(items, common.IngredientAmount{Item: name, AmountG: amount})
	}
	return items, nil
}
