package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elchemista/vettore"
)

func newMMRCmd() *cobra.Command {
	var (
		dataPath     string
		distanceName string
		k            int
		finalK       int
		alpha        float32
		asJSON       bool
	)

	c := &cobra.Command{
		Use:   "mmr QUERY_VECTOR",
		Short: "Search then diversify the results with Maximal Marginal Relevance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseVector(args[0])
			if err != nil {
				return err
			}

			db, _, err := seedCollection("cli", len(query), distanceName, true, dataPath)
			if err != nil {
				return err
			}

			initial, err := db.SimilaritySearch("cli", query, k)
			if err != nil {
				return err
			}

			var reranked []vettore.ScoredValue
			reranked, err = db.MMRRerank("cli", initial, alpha, finalK)
			if err != nil {
				return err
			}

			return runSearchOutput(cmd, reranked, asJSON)
		},
	}

	c.Flags().StringVar(&dataPath, "data", "", "path to a dataset file; uses a built-in demo dataset if empty")
	c.Flags().StringVar(&distanceName, "distance", "cosine", "euclidean|cosine|dot|binary|hnsw")
	c.Flags().IntVar(&k, "k", 5, "number of candidates fed into re-ranking")
	c.Flags().IntVar(&finalK, "final-k", 3, "number of results to keep after re-ranking")
	c.Flags().Float32Var(&alpha, "alpha", 0.5, "relevance/diversity trade-off, in [0,1]")
	c.Flags().BoolVar(&asJSON, "json", false, "print results as JSON instead of a table")
	return c
}
