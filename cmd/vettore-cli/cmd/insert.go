package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elchemista/vettore"
)

func newInsertCmd() *cobra.Command {
	var (
		distanceName   string
		keepEmbeddings bool
		vectorStr      string
		metadataPairs  []string
	)

	c := &cobra.Command{
		Use:   "insert VALUE",
		Short: "Insert a single embedding into a fresh collection and print the stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := DefaultStyles()
			value := args[0]

			dist, err := vettore.ParseDistance(distanceName)
			if err != nil {
				return err
			}
			vec, err := parseVector(vectorStr)
			if err != nil {
				return err
			}
			metadata, err := parseMetadata(metadataPairs)
			if err != nil {
				return err
			}

			db := vettore.New()
			if _, err := db.CreateCollection("cli", len(vec), dist, keepEmbeddings); err != nil {
				return err
			}
			if _, err := db.InsertEmbedding("cli", value, vec, metadata); err != nil {
				return err
			}

			rec, err := db.GetEmbeddingByValue("cli", value)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Success.Render("inserted "+value))
			fmt.Fprintf(out, "%s %v\n", styles.Header.Render("vector:"), rec.Vector)
			fmt.Fprintf(out, "%s %v\n", styles.Header.Render("metadata:"), rec.Metadata)
			return nil
		},
	}

	c.Flags().StringVar(&distanceName, "distance", "euclidean", "euclidean|cosine|dot|binary|hnsw")
	c.Flags().BoolVar(&keepEmbeddings, "keep-embeddings", true, "retain raw vectors alongside each record")
	c.Flags().StringVar(&vectorStr, "vector", "", "comma-separated vector components, e.g. 1,0,0,0")
	c.Flags().StringArrayVar(&metadataPairs, "metadata", nil, "key=value, repeatable")
	c.MarkFlagRequired("vector")
	return c
}
