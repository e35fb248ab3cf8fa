package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/store"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List budget groups and their categories",
	RunE:  runCategoriesList,
}

var flagCategoryGroup string

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category under a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesAdd,
}

var categoriesRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a category, deactivating it if still referenced",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesRm,
}

var flagGroupOrder int

var groupsAddCmd = &cobra.Command{
	Use:   "add-group <name>",
	Short: "Add a budget group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupsAdd,
}

func init() {
	categoriesAddCmd.Flags().StringVarP(&flagCategoryGroup, "group", "g", "", "Group name (required)")
	_ = categoriesAddCmd.MarkFlagRequired("group")
	groupsAddCmd.Flags().IntVar(&flagGroupOrder, "order", 99, "Sort order on the budget screen")

	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesRmCmd)
	categoriesCmd.AddCommand(groupsAddCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	groups, err := s.ListGroups()
	if err != nil {
		return err
	}
	categories, err := s.ListCategories()
	if err != nil {
		return err
	}

	fmt.Println()
	for _, g := range groups {
		name := g.Name
		if !g.IsActive {
			name = cli.Dim(name + " (inactive)")
		}
		fmt.Printf("  %s\n", name)
		for _, c := range categories {
			if c.GroupID != g.ID {
				continue
			}
			line := "    " + c.Name
			if !c.IsActive {
				line = cli.Dim(line + " (inactive)")
			}
			fmt.Println(line)
		}
	}
	fmt.Println()
	return nil
}

func runCategoriesAdd(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	groups, err := s.ListGroups()
	if err != nil {
		return err
	}
	for _, g := range groups {
		if g.Name == flagCategoryGroup {
			if _, err := s.CreateCategory(args[0], g.ID); err != nil {
				return err
			}
			fmt.Printf("  Added category %q under %q.\n", args[0], g.Name)
			return nil
		}
	}
	return fmt.Errorf("no group named %q", flagCategoryGroup)
}

func runCategoriesRm(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	cat, err := s.FindCategoryByName(args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no category named %q", args[0])
	}
	if err != nil {
		return err
	}

	err = s.DeleteCategory(cat.ID)
	if errors.Is(err, store.ErrReferenced) {
		if err := s.DeactivateCategory(cat.ID); err != nil {
			return err
		}
		fmt.Printf("  %q still has budget data; deactivated instead of deleting.\n", cat.Name)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("  Deleted category %q.\n", cat.Name)
	return nil
}

func runGroupsAdd(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.CreateGroup(args[0], flagGroupOrder); err != nil {
		return err
	}
	fmt.Printf("  Added group %q.\n", args[0])
	return nil
}
