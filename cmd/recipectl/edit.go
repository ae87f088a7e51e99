package main

import (
	"context"
	"fmt"
	"strconv"

	"recipe-manager/internal/core/ingredient"
	"recipe-manager/internal/pkg/common"

	"github.com/spf13/cobra"
)

// editFunc changes a loaded recipe in place
type editFunc func(r *common.Recipe) error

// applyEdit loads the recipe, applies fn and saves it back under the same id
func (a *app) applyEdit(ctx context.Context, rawID string, fn editFunc) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	r, err := a.api.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(r); err != nil {
		return err
	}
	if _, err := a.api.SaveRecipe(ctx, r); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "recipe %d: %s\n", r.ID, r.Ingredients)
	a.printDetails(&r.Details)
	return nil
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid ingredient index %q", raw)
	}
	return index, nil
}

func (a *app) editCmd() *cobra.Command {
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Edit the ingredients of a stored recipe",
	}

	edit.AddCommand(
		&cobra.Command{
			Use:   "sync <id> <ingredient,...>",
			Short: "Replace the main ingredients and rebuild the structured list",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.applyEdit(cmd.Context(), args[0], func(r *common.Recipe) error {
					r.Details.Ingredients = ingredient.SyncMainFromFlat(args[1], r.Details.Ingredients)
					r.Ingredients = args[1]
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <id> <index> <name>",
			Short: "Rename a structured ingredient",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return a.applyEdit(cmd.Context(), args[0], func(r *common.Recipe) error {
					list, flat, err := ingredient.RenameIngredient(r.Details.Ingredients, index, args[2], r.Ingredients)
					if err != nil {
						return err
					}
					r.Details.Ingredients, r.Ingredients = list, flat
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <id> <index>",
			Short: "Remove a structured ingredient",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return a.applyEdit(cmd.Context(), args[0], func(r *common.Recipe) error {
					list, flat, err := ingredient.RemoveIngredient(r.Details.Ingredients, index, r.Ingredients)
					if err != nil {
						return err
					}
					r.Details.Ingredients, r.Ingredients = list, flat
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <id> <ingredient>",
			Short: "Add a main ingredient",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.applyEdit(cmd.Context(), args[0], func(r *common.Recipe) error {
					tokens, list, added := ingredient.AddMainIngredient(args[1], ingredient.ParseMain(r.Ingredients), r.Details.Ingredients)
					if !added {
						return fmt.Errorf("%q is empty or already a main ingredient", args[1])
					}
					r.Details.Ingredients, r.Ingredients = list, ingredient.JoinMain(tokens)
					return nil
				})
			},
		},
	)
	return edit
}
