package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/elchemista/vettore"
)

// parseVector parses a comma-separated list of floats, e.g. "1,0,0.5".
func parseVector(s string) ([]float32, error) {
	parts := strings.Split(s, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", p, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseMetadata turns repeated "key=value" flag entries into a map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid metadata entry %q, expected key=value", p)
		}
		out[k] = v
	}
	return out, nil
}

// loadDataset reads one record per line from path. Each line is
// "value,f1,f2,...,fn" with an optional trailing ";k1=v1|k2=v2" metadata
// segment. Blank lines and lines starting with # are skipped.
func loadDataset(path string) ([]vettore.EmbeddingInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []vettore.EmbeddingInput
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var metaSeg string
		if idx := strings.Index(line, ";"); idx >= 0 {
			metaSeg = line[idx+1:]
			line = line[:idx]
		}

		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected value,v1,v2,...", lineNo)
		}
		vec, err := parseVector(strings.Join(fields[1:], ","))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		var metadata map[string]string
		if metaSeg != "" {
			metadata = make(map[string]string)
			for _, kv := range strings.Split(metaSeg, "|") {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return nil, fmt.Errorf("line %d: invalid metadata %q", lineNo, kv)
				}
				metadata[k] = v
			}
		}

		records = append(records, vettore.EmbeddingInput{
			Value:    fields[0],
			Vector:   vec,
			Metadata: metadata,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// demoDataset generates a small deterministic set of records spread
// around the unit hypersphere's first two axes, used when a subcommand is
// not given an explicit --data file. dim must be at least 2.
func demoDataset(dim int) []vettore.EmbeddingInput {
	labels := []string{"north", "east", "south", "west", "center"}
	dirs := [][2]float32{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {1, 1}}
	records := make([]vettore.EmbeddingInput, len(labels))
	for i, label := range labels {
		v := make([]float32, dim)
		v[0], v[1] = dirs[i][0], dirs[i][1]
		records[i] = vettore.EmbeddingInput{
			Value:    label,
			Vector:   v,
			Metadata: map[string]string{"group": fmt.Sprintf("g%d", i%2)},
		}
	}
	return records
}
