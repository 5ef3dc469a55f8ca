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
	segmentAddName    string
	segmentUpdateName string
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Manage vehicle segments",
}

var segmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all segments",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()
		if err := sess.LoadSegments(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}

		segments := sess.Snapshot().Segments
		if jsonOutput {
			return output.JSON(segments)
		}
		if len(segments) == 0 {
			fmt.Println("No segments")
			return nil
		}

		w := output.Table()
		_, _ = fmt.Fprintln(w, "ID\tNAME")
		for _, s := range segments {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", s.ID, s.Name)
		}
		return w.Flush()
	},
}

var segmentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new segment",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := segmentAddName
		if !cmd.Flags().Changed("name") {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Segment name").
					Placeholder("SUV").
					Value(&name).
					Validate(required("segment name")),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		sess := newSession()
		sess.EditSegment(catalog.Segment{Name: name})
		created, err := sess.SubmitSegment()
		if err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}

		fmt.Printf("Created segment %d: %s\n", created.ID, created.Name)
		return nil
	},
}

var segmentUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a segment by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sess := newSession()
		if err := sess.LoadSegments(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		rec, ok := findSegment(sess.Snapshot().Segments, id)
		if !ok {
			return fmt.Errorf("segment not found: %d", id)
		}
		sess.EditSegment(rec)

		name := segmentUpdateName
		if !cmd.Flags().Changed("name") {
			name = rec.Name
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Segment name").
					Value(&name).
					Validate(required("segment name")),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		// One changed field, the rest of the draft preserved.
		draft := sess.Snapshot().SegmentDraft
		draft.Name = name
		sess.EditSegment(draft)

		if _, err := sess.SubmitSegment(); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		fmt.Println(sess.Status())
		return nil
	},
}

var segmentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a segment (vehicles in it disappear from the catalog view)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sess := newSession()
		if err := sess.DeleteSegment(id); err != nil {
			return fmt.Errorf("%s", client.FormatConnectionError(err))
		}
		fmt.Println(sess.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(segmentCmd)
	segmentCmd.AddCommand(segmentListCmd)
	segmentCmd.AddCommand(segmentAddCmd)
	segmentCmd.AddCommand(segmentUpdateCmd)
	segmentCmd.AddCommand(segmentDeleteCmd)

	segmentAddCmd.Flags().StringVar(&segmentAddName, "name", "", "Segment name")
	segmentUpdateCmd.Flags().StringVar(&segmentUpdateName, "name", "", "New segment name")
}
