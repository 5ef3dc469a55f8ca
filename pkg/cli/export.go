package cli

import (
	"fmt"
	"os"

	"github.com/garagectl/garagectl/pkg/catalog"
	"github.com/garagectl/garagectl/pkg/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML document exchanged by export and import.
type catalogFile struct {
	Segments []catalog.Segment `yaml:"segments"`
	Brands   []catalog.Brand   `yaml:"brands"`
	Vehicles []catalog.Vehicle `yaml:"vehicles"`
}

var exportOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML (stdout or file)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()
		if err := sess.LoadAll(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		snap := sess.Snapshot()

		data, err := yaml.Marshal(&catalogFile{
			Segments: snap.Segments,
			Brands:   snap.Brands,
			Vehicles: snap.Vehicles,
		})
		if err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}

		if exportOutputPath == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOutputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutputPath, err)
		}
		fmt.Printf("Exported %d segments, %d brands, %d vehicles to %s\n",
			len(snap.Segments), len(snap.Brands), len(snap.Vehicles), exportOutputPath)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create catalog entries from a YAML file",
	Long: `Create segments, brands, and vehicles from a YAML export, in that order.
Records are created fresh; ids in the file are ignored except for the
segment/brand references on vehicles, which must exist on the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		sess := newSession()
		var created int
		for _, s := range file.Segments {
			sess.EditSegment(catalog.Segment{Name: s.Name})
			if _, err := sess.SubmitSegment(); err != nil {
				return fmt.Errorf("imported %d records, then: %s", created, client.FormatConnectionError(err))
			}
			created++
		}
		for _, b := range file.Brands {
			sess.EditBrand(catalog.Brand{Name: b.Name})
			if _, err := sess.SubmitBrand(); err != nil {
				return fmt.Errorf("imported %d records, then: %s", created, client.FormatConnectionError(err))
			}
			created++
		}
		for _, v := range file.Vehicles {
			draft := v
			draft.ID = catalog.SentinelID
			sess.EditVehicle(draft)
			if _, err := sess.SubmitVehicle(); err != nil {
				return fmt.Errorf("imported %d records, then: %s", created, client.FormatConnectionError(err))
			}
			created++
		}

		fmt.Printf("Imported %d records\n", created)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "Write to file instead of stdout")
}
