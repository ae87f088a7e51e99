package main

import (
	"fmt"

	recipeService "recipe-manager/internal/core/recipe"

	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := a.api.List(cmd.Context())
			if err != nil {
				return err
			}
			a.printRecipes(recipes)
			return nil
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <ingredient,...>",
		Short: "Find recipes containing all given main ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := a.api.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printRecipes(recipes)
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted recipe %d\n", id)
			return nil
		},
	}
}

func (a *app) saveCmd() *cobra.Command {
	var (
		id          int64
		name        string
		ingredients string
		items       []string
		steps       []string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Insert a recipe, or update it with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseItems(items)
			if err != nil {
				return err
			}
			if steps == nil {
				steps = []string{}
			}

			req := &recipeService.SaveRequest{
				Name:        name,
				Ingredients: ingredients,
				Details: &recipeService.SaveDetails{
					Ingredients:  amounts,
					Instructions: steps,
				},
			}
			if id > 0 {
				req.ID = &id
			}

			saved, err := a.api.Save(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "saved recipe %d\n", saved)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "id of the recipe to update")
	cmd.Flags().StringVar(&name, "name", "", "recipe name")
	cmd.Flags().StringVar(&ingredients, "ingredients", "", "comma-separated main ingredients")
	cmd.Flags().StringArrayVar(&items, "item", nil, "structured ingredient as item=grams (repeatable)")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "instruction step (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("ingredients")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var ingredients string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show stored instructions, generating them when the recipe is not stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			result, err := a.api.Instructions(cmd.Context(), name)
			if err != nil {
				return err
			}
			if result.Exists && result.Instructions != nil {
				a.printDetails(result.Instructions)
				return nil
			}

			if ingredients == "" {
				return fmt.Errorf("recipe %q is not stored; pass --ingredients to generate instructions", name)
			}
			details, err := a.api.GenerateDetails(cmd.Context(), name, ingredients)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "(generated)")
			a.printDetails(details)
			return nil
		},
	}
	cmd.Flags().StringVar(&ingredients, "ingredients", "", "ingredients used when generating")
	return cmd
}

func (a *app) suggestCmd() *cobra.Command {
	var flexibility, maxExtras int

	cmd := &cobra.Command{
		Use:   "suggest <ingredient,...>",
		Short: "Ask the AI for recipe ideas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := a.api.SuggestRecipes(cmd.Context(), args[0], flexibility, maxExtras)
			if err != nil {
				return err
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(a.out, "no suggestions")
				return nil
			}
			for i, s := range suggestions {
				fmt.Fprintf(a.out, "%d. %s (%s)\n", i+1, s.Name, s.Ingredients)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flexibility, "flexibility", 1, "1 strict, 2 common extras, 3 any extras")
	cmd.Flags().IntVar(&maxExtras, "max-extras", 0, "maximum number of extra ingredients")
	return cmd
}
