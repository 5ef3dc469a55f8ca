package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/garagectl/garagectl/pkg/catalog"
	"github.com/garagectl/garagectl/pkg/cli/internal/output"
	"github.com/garagectl/garagectl/pkg/client"
	"github.com/garagectl/garagectl/pkg/session"
	"github.com/spf13/cobra"
)

var (
	vehicleName    string
	vehicleYear    int
	vehiclePrice   float64
	vehicleSegment int
	vehicleBrand   int
)

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Manage vehicles",
}

var vehicleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vehicles",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()
		if err := sess.LoadVehicles(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}

		vehicles := sess.Snapshot().Vehicles
		if jsonOutput {
			return output.JSON(vehicles)
		}
		if len(vehicles) == 0 {
			fmt.Println("No vehicles")
			return nil
		}

		w := output.Table()
		_, _ = fmt.Fprintln(w, "ID\tNAME\tYEAR\tPRICE\tSEGMENT\tBRAND")
		for _, v := range vehicles {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%s\t%s\n",
				v.ID, v.Name, v.ReleaseYear, v.Price, v.SegmentName, v.BrandName)
		}
		return w.Flush()
	},
}

var vehicleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new vehicle",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()

		draft := catalog.EmptyVehicle()
		if cmd.Flags().Changed("name") {
			draft.Name = vehicleName
			draft.ReleaseYear = vehicleYear
			draft.Price = vehiclePrice
			draft.Segment = vehicleSegment
			draft.Brand = vehicleBrand
		} else {
			if err := vehicleForm(sess, &draft); err != nil {
				return err
			}
		}

		sess.EditVehicle(draft)
		created, err := sess.SubmitVehicle()
		if err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}

		fmt.Printf("Created vehicle %d: %s\n", created.ID, created.Name)
		return nil
	},
}

var vehicleUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a vehicle by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sess := newSession()
		if err := sess.LoadVehicles(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		rec, ok := findVehicle(sess.Snapshot().Vehicles, id)
		if !ok {
			return fmt.Errorf("vehicle not found: %d", id)
		}
		sess.EditVehicle(rec)

		// Changed flags merge into the loaded draft one field at a time;
		// everything else keeps the record's current values.
		draft := sess.Snapshot().VehicleDraft
		anyFlag := false
		if cmd.Flags().Changed("name") {
			draft.Name = vehicleName
			anyFlag = true
		}
		if cmd.Flags().Changed("year") {
			draft.ReleaseYear = vehicleYear
			anyFlag = true
		}
		if cmd.Flags().Changed("price") {
			draft.Price = vehiclePrice
			anyFlag = true
		}
		if cmd.Flags().Changed("segment") {
			draft.Segment = vehicleSegment
			anyFlag = true
		}
		if cmd.Flags().Changed("brand") {
			draft.Brand = vehicleBrand
			anyFlag = true
		}
		if !anyFlag {
			if err := vehicleForm(sess, &draft); err != nil {
				return err
			}
		}
		sess.EditVehicle(draft)

		if _, err := sess.SubmitVehicle(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		fmt.Println(sess.Status())
		return nil
	},
}

var vehicleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sess := newSession()
		if err := sess.DeleteVehicle(id); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		fmt.Println(sess.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
	vehicleCmd.AddCommand(vehicleListCmd)
	vehicleCmd.AddCommand(vehicleAddCmd)
	vehicleCmd.AddCommand(vehicleUpdateCmd)
	vehicleCmd.AddCommand(vehicleDeleteCmd)

	for _, c := range []*cobra.Command{vehicleAddCmd, vehicleUpdateCmd} {
		c.Flags().StringVar(&vehicleName, "name", "", "Vehicle name")
		c.Flags().IntVar(&vehicleYear, "year", 2020, "Release year")
		c.Flags().Float64Var(&vehiclePrice, "price", 0.0, "Price")
		c.Flags().IntVar(&vehicleSegment, "segment", 0, "Segment id")
		c.Flags().IntVar(&vehicleBrand, "brand", 0, "Brand id")
	}
}

// vehicleForm prompts for all vehicle fields, with segment and brand picked
// from the live collections. The draft's current values preseed the form, so
// the same form serves both create and edit.
func vehicleForm(sess *session.Session, draft *catalog.Vehicle) error {
	if err := sess.LoadSegments(); err != nil {
		return fmt.Errorf("%s", client.FormatConnectionError(err))
	}
	if err := sess.LoadBrands(); err != nil {
		return fmt.Errorf("%s", client.FormatConnectionError(err))
	}
	snap := sess.Snapshot()

	segmentOptions := make([]huh.Option[int], 0, len(snap.Segments))
	for _, s := range snap.Segments {
		segmentOptions = append(segmentOptions, huh.NewOption(s.Name, s.ID))
	}
	brandOptions := make([]huh.Option[int], 0, len(snap.Brands))
	for _, b := range snap.Brands {
		brandOptions = append(brandOptions, huh.NewOption(b.Name, b.ID))
	}

	yearStr := strconv.Itoa(draft.ReleaseYear)
	priceStr := strconv.FormatFloat(draft.Price, 'f', -1, 64)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Vehicle name").
			Placeholder("Model 3").
			Value(&draft.Name).
			Validate(required("vehicle name")),
		huh.NewInput().
			Title("Release year").
			Value(&yearStr).
			Validate(func(s string) error {
				_, err := strconv.Atoi(s)
				return err
			}),
		huh.NewInput().
			Title("Price").
			Value(&priceStr).
			Validate(func(s string) error {
				_, err := strconv.ParseFloat(s, 64)
				return err
			}),
		huh.NewSelect[int]().
			Title("Segment").
			Options(segmentOptions...).
			Value(&draft.Segment),
		huh.NewSelect[int]().
			Title("Brand").
			Options(brandOptions...).
			Value(&draft.Brand),
	))
	if err := form.Run(); err != nil {
		return err
	}

	draft.ReleaseYear, _ = strconv.Atoi(yearStr)
	draft.Price, _ = strconv.ParseFloat(priceStr, 64)
	return nil
}
