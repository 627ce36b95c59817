// Package vettore is an in-memory vector search engine: named collections
// of labeled embeddings, exact and approximate nearest-neighbor search
// under five distance regimes, metadata filtering, and Maximal Marginal
// Relevance re-ranking.
package vettore

import (
	"log/slog"
	"sync"

	"github.com/elchemista/vettore/internal/kernel"
	"github.com/elchemista/vettore/internal/mmr"
	"github.com/elchemista/vettore/internal/search"
	"github.com/elchemista/vettore/internal/store"
	"github.com/elchemista/vettore/internal/verrors"
	"github.com/elchemista/vettore/internal/vlog"
)

// Distance identifies one of the five supported distance regimes.
type Distance = kernel.Distance

// Re-exported distance constants.
const (
	Euclidean = kernel.Euclidean
	Cosine    = kernel.Cosine
	Dot       = kernel.Dot
	Binary    = kernel.Binary
	HNSW      = kernel.HNSW
)

// ParseDistance recognizes the case-insensitive distance names: euclidean,
// l2, cosine, dot, dotproduct, binary, hamming, hnsw.
func ParseDistance(s string) (Distance, error) { return kernel.ParseDistance(s) }

// Record is a materialized (value, vector, metadata) triple.
type Record struct {
	Value    string
	Vector   []float32
	Metadata map[string]string
}

// ScoredValue pairs a value with its [0,1] similarity score.
type ScoredValue struct {
	Value string
	Score float32
}

// EmbeddingInput is one entry of a batch insert.
type EmbeddingInput struct {
	Value    string
	Vector   []float32
	Metadata map[string]string
}

// Database is a concurrent mapping from collection name to an
// independently guarded collection. Operations against different
// collections proceed independently; operations against the same
// collection are serialized by that collection's own reader/writer guard.
type Database struct {
	mu          sync.RWMutex
	collections map[string]*store.GuardedCollection
	log         *slog.Logger
}

// Option configures a Database at construction time.
type Option func(*Database)

// WithLogger attaches a structured logger used for collection-scoped
// diagnostics. The default is a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Database) { d.log = log }
}

// New returns an empty database.
func New(opts ...Option) *Database {
	d := &Database{
		collections: make(map[string]*store.GuardedCollection),
		log:         vlog.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateCollection creates an empty named collection. Fails with
// ErrDuplicateCollection if name is already in use.
func (d *Database) CreateCollection(name string, dim int, distance Distance, keepEmbeddings bool) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.collections[name]; exists {
		return "", verrors.ErrDuplicateCollection
	}
	col, err := store.NewCollection(dim, distance, keepEmbeddings, d.log.With("collection", name))
	if err != nil {
		return "", err
	}
	d.collections[name] = store.NewGuarded(col)
	return name, nil
}

// DeleteCollection removes a collection and releases its HNSW index, if
// any. Fails with ErrCollectionNotFound if name is absent.
func (d *Database) DeleteCollection(name string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.collections[name]; !exists {
		return "", verrors.ErrCollectionNotFound
	}
	delete(d.collections, name)
	return name, nil
}

func (d *Database) guard(name string) (*store.GuardedCollection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	g, ok := d.collections[name]
	if !ok {
		return nil, verrors.ErrCollectionNotFound
	}
	return g, nil
}

// InsertEmbedding inserts a single record into collection.
func (d *Database) InsertEmbedding(collection, value string, vector []float32, metadata map[string]string) (string, error) {
	g, err := d.guard(collection)
	if err != nil {
		return "", err
	}
	err = g.Write(func(c *store.Collection) error {
		return c.Insert(value, vector, metadata)
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// InsertEmbeddings inserts a batch of records into collection, in order. The
// batch is not atomic: insertion stops at the first record that fails,
// earlier records of the batch stay inserted, and their values are returned
// together with the error.
func (d *Database) InsertEmbeddings(collection string, records []EmbeddingInput) ([]string, error) {
	g, err := d.guard(collection)
	if err != nil {
		return nil, err
	}
	inserted := make([]string, 0, len(records))
	err = g.Write(func(c *store.Collection) error {
		for _, r := range records {
			if err := c.Insert(r.Value, r.Vector, r.Metadata); err != nil {
				return err
			}
			inserted = append(inserted, r.Value)
		}
		return nil
	})
	if err != nil {
		return inserted, err
	}
	return inserted, nil
}

// GetEmbeddingByValue returns the record stored under value.
func (d *Database) GetEmbeddingByValue(collection, value string) (Record, error) {
	g, err := d.guard(collection)
	if err != nil {
		return Record{}, err
	}
	var rec store.Record
	err = g.Read(func(c *store.Collection) error {
		var err error
		rec, err = c.GetByValue(value)
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return Record(rec), nil
}

// GetEmbeddingByVector looks up a record by the sign-bit signature of
// vector.
func (d *Database) GetEmbeddingByVector(collection string, vector []float32) (Record, error) {
	g, err := d.guard(collection)
	if err != nil {
		return Record{}, err
	}
	var rec store.Record
	err = g.Read(func(c *store.Collection) error {
		var err error
		rec, err = c.GetByVector(vector)
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return Record(rec), nil
}

// GetAllEmbeddings returns every live record in collection, in unspecified
// order.
func (d *Database) GetAllEmbeddings(collection string) ([]Record, error) {
	g, err := d.guard(collection)
	if err != nil {
		return nil, err
	}
	var recs []store.Record
	err = g.Read(func(c *store.Collection) error {
		recs = c.GetAll()
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = Record(r)
	}
	return out, nil
}

// DeleteEmbeddingByValue removes the record stored under value.
func (d *Database) DeleteEmbeddingByValue(collection, value string) (string, error) {
	g, err := d.guard(collection)
	if err != nil {
		return "", err
	}
	err = g.Write(func(c *store.Collection) error {
		return c.Remove(value)
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// SimilaritySearch returns the top-k scored matches for query.
func (d *Database) SimilaritySearch(collection string, query []float32, k int) ([]ScoredValue, error) {
	return d.SimilaritySearchWithFilter(collection, query, k, nil)
}

// SimilaritySearchWithFilter returns the top-k scored matches for query
// among records whose metadata satisfies filter. Fails with
// ErrFilterUnsupportedWithHNSW when collection's distance is HNSW and
// filter is non-empty.
func (d *Database) SimilaritySearchWithFilter(collection string, query []float32, k int, filter map[string]string) ([]ScoredValue, error) {
	g, err := d.guard(collection)
	if err != nil {
		return nil, err
	}
	var hits []search.Hit
	err = g.Read(func(c *store.Collection) error {
		var err error
		hits, err = search.Search(c, query, k, search.Filter(filter))
		return err
	})
	if err != nil {
		return nil, err
	}
	return toScoredValues(hits), nil
}

// MMRRerank diversifies an initial ranked candidate list using Maximal
// Marginal Relevance, re-fetching each candidate's vector from collection.
func (d *Database) MMRRerank(collection string, initial []ScoredValue, alpha float32, finalK int) ([]ScoredValue, error) {
	g, err := d.guard(collection)
	if err != nil {
		return nil, err
	}

	var (
		dist       kernel.Distance
		candidates []mmr.Candidate
		vectors    map[string][]float32
	)
	err = g.Read(func(c *store.Collection) error {
		dist = c.Distance()
		candidates = make([]mmr.Candidate, len(initial))
		vectors = make(map[string][]float32, len(initial))
		for i, sv := range initial {
			candidates[i] = mmr.Candidate{Value: sv.Value, Score: sv.Score}
			rec, err := c.GetByValue(sv.Value)
			if err != nil {
				return err
			}
			vectors[sv.Value] = rec.Vector
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reranked := mmr.Rerank(candidates, vectors, dist, alpha, finalK)
	out := make([]ScoredValue, len(reranked))
	for i, c := range reranked {
		out[i] = ScoredValue{Value: c.Value, Score: c.Score}
	}
	return out, nil
}

func toScoredValues(hits []search.Hit) []ScoredValue {
	out := make([]ScoredValue, len(hits))
	for i, h := range hits {
		out[i] = ScoredValue{Value: h.Value, Score: h.Score}
	}
	return out
}
