package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/garagectl/garagectl/pkg/catalog"
	"github.com/garagectl/garagectl/pkg/cli/internal/output"
	"github.com/garagectl/garagectl/pkg/client"
	"github.com/spf13/cobra"
)

var (
	brandAddName    string
	brandUpdateName string
)

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Manage vehicle brands",
}

var brandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all brands",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()
		if err := sess.LoadBrands(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}

		brands := sess.Snapshot().Brands
		if jsonOutput {
			return output.JSON(brands)
		}
		if len(brands) == 0 {
			fmt.Println("No brands")
			return nil
		}

		w := output.Table()
		_, _ = fmt.Fprintln(w, "ID\tNAME")
		for _, b := range brands {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", b.ID, b.Name)
		}
		return w.Flush()
	},
}

var brandAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new brand",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := brandAddName
		if !cmd.Flags().Changed("name") {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Brand name").
					Placeholder("Audi").
					Value(&name).
					Validate(required("brand name")),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		sess := newSession()
		sess.EditBrand(catalog.Brand{Name: name})
		created, err := sess.SubmitBrand()
		if err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}

		fmt.Printf("Created brand %d: %s\n", created.ID, created.Name)
		return nil
	},
}

var brandUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a brand by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sess := newSession()
		if err := sess.LoadBrands(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		rec, ok := findBrand(sess.Snapshot().Brands, id)
		if !ok {
			return fmt.Errorf("brand not found: %d", id)
		}
		sess.EditBrand(rec)

		name := brandUpdateName
		if !cmd.Flags().Changed("name") {
			name = rec.Name
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Brand name").
					Value(&name).
					Validate(required("brand name")),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		draft := sess.Snapshot().BrandDraft
		draft.Name = name
		sess.EditBrand(draft)

		if _, err := sess.SubmitBrand(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		fmt.Println(sess.Status())
		return nil
	},
}

var brandDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a brand (vehicles of it disappear from the catalog view)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sess := newSession()
		if err := sess.DeleteBrand(id); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		fmt.Println(sess.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(brandCmd)
	brandCmd.AddCommand(brandListCmd)
	brandCmd.AddCommand(brandAddCmd)
	brandCmd.AddCommand(brandUpdateCmd)
	brandCmd.AddCommand(brandDeleteCmd)

	brandAddCmd.Flags().StringVar(&brandAddName, "name", "", "Brand name")
	brandUpdateCmd.Flags().StringVar(&brandUpdateName, "name", "", "New brand name")
}
