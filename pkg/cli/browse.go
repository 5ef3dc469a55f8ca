package cli

import (
	"fmt"

	"github.com/garagectl/garagectl/internal/state"
	"github.com/garagectl/garagectl/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Fetch and display the whole catalog",
	Long: `Fetch segments, brands, and vehicles and display them together, the way
the catalog screen mounts all three panels. A failed fetch leaves that
collection at its placeholder state while the others still display.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()
		loadErr := sess.LoadAll()
		snap := sess.Snapshot()

		if jsonOutput {
			return output.JSON(struct {
				Segments interface{} `json:"segments"`
				Brands   interface{} `json:"brands"`
				Vehicles interface{} `json:"vehicles"`
				Status   string      `json:"status,omitempty"`
			}{snap.Segments, snap.Brands, snap.Vehicles, sess.Status()})
		}

		printCatalog(snap)
		if loadErr != nil {
			fmt.Println()
			fmt.Println(sess.Status())
		}
		return loadErr
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func printCatalog(snap state.Snapshot) {
	fmt.Println("Segments")
	w := output.Table()
	_, _ = fmt.Fprintln(w, "  ID\tNAME")
	for _, s := range snap.Segments {
		_, _ = fmt.Fprintf(w, "  %d\t%s\n", s.ID, s.Name)
	}
	_ = w.Flush()

	fmt.Println()
	fmt.Println("Brands")
	w = output.Table()
	_, _ = fmt.Fprintln(w, "  ID\tNAME")
	for _, b := range snap.Brands {
		_, _ = fmt.Fprintf(w, "  %d\t%s\n", b.ID, b.Name)
	}
	_ = w.Flush()

	fmt.Println()
	fmt.Println("Vehicles")
	w = output.Table()
	_, _ = fmt.Fprintln(w, "  ID\tNAME\tYEAR\tPRICE\tSEGMENT\tBRAND")
	for _, v := range snap.Vehicles {
		_, _ = fmt.Fprintf(w, "  %d\t%s\t%d\t%.2f\t%s\t%s\n",
			v.ID, v.Name, v.ReleaseYear, v.Price, v.SegmentName, v.BrandName)
	}
	_ = w.Flush()
}
