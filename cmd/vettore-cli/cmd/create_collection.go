package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elchemista/vettore"
)

func newCreateCollectionCmd() *cobra.Command {
	var (
		dim            int
		distanceName   string
		keepEmbeddings bool
	)

	c := &cobra.Command{
		Use:   "create-collection NAME",
		Short: "Create a collection and print its configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := DefaultStyles()
			name := args[0]

			dist, err := vettore.ParseDistance(distanceName)
			if err != nil {
				return err
			}

			db := vettore.New()
			if _, err := db.CreateCollection(name, dim, dist, keepEmbeddings); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Success.Render("created collection "+name))
			fmt.Fprintf(out, "%s %d\n", styles.Header.Render("dim:"), dim)
			fmt.Fprintf(out, "%s %s\n", styles.Header.Render("distance:"), dist)
			fmt.Fprintf(out, "%s %v\n", styles.Header.Render("keep_embeddings:"), keepEmbeddings)
			return nil
		},
	}

	c.Flags().IntVar(&dim, "dim", 4, "embedding dimension")
	c.Flags().StringVar(&distanceName, "distance", "euclidean", "euclidean|cosine|dot|binary|hnsw")
	c.Flags().BoolVar(&keepEmbeddings, "keep-embeddings", true, "retain raw vectors alongside each record")
	return c
}
