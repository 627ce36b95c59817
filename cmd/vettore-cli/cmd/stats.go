package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		dataPath     string
		distanceName string
		dim          int
	)

	c := &cobra.Command{
		Use:   "stats",
		Short: "Load a dataset into a collection and print its size and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := DefaultStyles()

			db, resolvedDim, err := seedCollection("cli", dim, distanceName, true, dataPath)
			if err != nil {
				return err
			}

			all, err := db.GetAllEmbeddings("cli")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Title.Render("collection: cli"))
			fmt.Fprintf(out, "%s %d\n", styles.Header.Render("dim:"), resolvedDim)
			fmt.Fprintf(out, "%s %s\n", styles.Header.Render("distance:"), distanceName)
			fmt.Fprintf(out, "%s %d\n", styles.Header.Render("records:"), len(all))
			return nil
		},
	}

	c.Flags().StringVar(&dataPath, "data", "", "path to a dataset file; uses a built-in demo dataset if empty")
	c.Flags().StringVar(&distanceName, "distance", "euclidean", "euclidean|cosine|dot|binary|hnsw")
	c.Flags().IntVar(&dim, "dim", 4, "embedding dimension, used only when --data is empty")
	return c
}
