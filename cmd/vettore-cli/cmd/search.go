package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elchemista/vettore"
)

type searchOptions struct {
	dataPath     string
	distanceName string
	k            int
	filterPairs  []string
	asJSON       bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	c := &cobra.Command{
		Use:   "search QUERY_VECTOR",
		Short: "Load a dataset into a collection and run a similarity search against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseVector(args[0])
			if err != nil {
				return err
			}
			filter, err := parseMetadata(opts.filterPairs)
			if err != nil {
				return err
			}

			db, _, err := seedCollection("cli", len(query), opts.distanceName, true, opts.dataPath)
			if err != nil {
				return err
			}

			var hits []vettore.ScoredValue
			if len(filter) == 0 {
				hits, err = db.SimilaritySearch("cli", query, opts.k)
			} else {
				hits, err = db.SimilaritySearchWithFilter("cli", query, opts.k, filter)
			}
			if err != nil {
				return err
			}

			return runSearchOutput(cmd, hits, opts.asJSON)
		},
	}

	c.Flags().StringVar(&opts.dataPath, "data", "", "path to a dataset file; uses a built-in demo dataset if empty")
	c.Flags().StringVar(&opts.distanceName, "distance", "euclidean", "euclidean|cosine|dot|binary|hnsw")
	c.Flags().IntVar(&opts.k, "k", 5, "number of results")
	c.Flags().StringArrayVar(&opts.filterPairs, "filter", nil, "metadata key=value, repeatable")
	c.Flags().BoolVar(&opts.asJSON, "json", false, "print results as JSON instead of a table")
	return c
}

func runSearchOutput(cmd *cobra.Command, hits []vettore.ScoredValue, asJSON bool) error {
	if asJSON {
		return formatJSON(cmd, hits)
	}
	formatTable(cmd, hits)
	return nil
}

func formatJSON(cmd *cobra.Command, hits []vettore.ScoredValue) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(hits)
}

func formatTable(cmd *cobra.Command, hits []vettore.ScoredValue) {
	styles := DefaultStyles()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", styles.Header.Render("value"), styles.Header.Render("score"))
	for _, h := range hits {
		fmt.Fprintf(out, "%s %s\n", styles.Value.Render(h.Value), styles.Score.Render(fmt.Sprintf("%.4f", h.Score)))
	}
}

// seedCollection creates a collection and loads it either from dataPath
// (if non-empty) or from the built-in demo dataset, returning the
// database that now owns it along with the collection's resolved
// dimension (which may differ from dim when dataPath overrides it).
func seedCollection(name string, dim int, distanceName string, keepEmbeddings bool, dataPath string) (*vettore.Database, int, error) {
	dist, err := vettore.ParseDistance(distanceName)
	if err != nil {
		return nil, 0, err
	}

	records := demoDataset(dim)
	if dataPath != "" {
		records, err = loadDataset(dataPath)
		if err != nil {
			return nil, 0, err
		}
		if len(records) > 0 {
			dim = len(records[0].Vector)
		}
	}

	db := vettore.New()
	if _, err := db.CreateCollection(name, dim, dist, keepEmbeddings); err != nil {
		return nil, 0, err
	}
	if _, err := db.InsertEmbeddings(name, records); err != nil {
		return nil, 0, err
	}
	return db, dim, nil
}
