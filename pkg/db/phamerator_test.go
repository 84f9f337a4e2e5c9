package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/phamfasta/internal/testutil"
	"github.com/yumyai/phamfasta/pkg/model"
)

func openFixture(t *testing.T) *Store {
	t.Helper()
	store, err := Open(DriverSQLite, testutil.DefaultDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Ping(context.Background()))
	return store
}

func genomeNames(genomes []*model.Genome) []string {
	var names []string
	for _, g := range genomes {
		names = append(names, g.Name)
	}
	return names
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	assert.Equal(t, "a = $1 OR b IN ($2,$3)", pg.rebind("a = ? OR b IN (?,?)"))

	lite := &Store{driver: DriverSQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestClusters(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"A", "A2", "F", "F1", "F2", "G"}},
		{"A", []string{"A", "A2"}},
		{"F1", []string{"F1"}},
		{"f", nil},
		{"%", nil},
	}
	for _, tt := range tests {
		got, err := store.Clusters(ctx, tt.prefix)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "prefix %q", tt.prefix)
	}
}

func TestGenomes(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		p    *model.Predicate
		want []string
	}{
		{"Unrestricted", &model.Predicate{}, []string{"Alpha", "Beta", "Fox", "Fern", "Fig", "Gus", "Solo"}},
		{"None", &model.Predicate{None: true}, nil},
		{"Clusters", &model.Predicate{Clusters: []string{"F", "F1"}}, []string{"Fox", "Fig"}},
		{"Singleton", &model.Predicate{Singleton: true}, []string{"Solo"}},
		{"OneName", &model.Predicate{Names: []string{"Gus"}}, []string{"Gus"}},
		{"ClusterOrNames", &model.Predicate{Clusters: []string{"A"}, Names: []string{"Gus", "Solo"}}, []string{"Alpha", "Gus", "Solo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Genomes(ctx, tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, genomeNames(got))
		})
	}

	solo, err := store.Genomes(ctx, &model.Predicate{Names: []string{"Solo"}})
	require.NoError(t, err)
	require.Len(t, solo, 1)
	assert.Nil(t, solo[0].Cluster)
	assert.Equal(t, model.SingletonCluster, solo[0].ClusterName())
}

func TestGenes(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	genes, err := store.Genes(ctx, "P07", nil)
	require.NoError(t, err)
	assert.Equal(t, []model.GeneFamily{
		{GeneID: "P07_1", Family: "100"},
		{GeneID: "P07_3", Family: "200"},
		{GeneID: "P07_2", Family: "300"},
	}, genes)

	genes, err = store.Genes(ctx, "P01", []string{"100", "300"})
	require.NoError(t, err)
	assert.Equal(t, []model.GeneFamily{
		{GeneID: "P01_1", Family: "100"},
		{GeneID: "P01_3", Family: "300"},
	}, genes)

	genes, err = store.Genes(ctx, "P01", []string{"999"})
	require.NoError(t, err)
	assert.Empty(t, genes)
}

func TestGenesWithoutFamilyAreSkipped(t *testing.T) {
	path := testutil.NewDB(t,
		[]testutil.Phage{{ID: "X", Name: "Xeno", Cluster: "X", Sequence: "ATGAAATAA"}},
		[]testutil.Gene{
			{ID: "X_1", PhageID: "X", Name: "1", Start: 0, Stop: 9, Orientation: "F", Pham: "1"},
			{ID: "X_2", PhageID: "X", Name: "2", Start: 3, Stop: 9, Orientation: "F"},
		})
	store, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	genes, err := store.Genes(context.Background(), "X", nil)
	require.NoError(t, err)
	assert.Equal(t, []model.GeneFamily{{GeneID: "X_1", Family: "1"}}, genes)

	// Still resolvable on its own.
	g, err := store.Gene(context.Background(), "X_2")
	require.NoError(t, err)
	assert.Equal(t, "", g.Family)
}

func TestGene(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	g, err := store.Gene(ctx, "P07_2")
	require.NoError(t, err)
	assert.Equal(t, &model.Gene{
		ID:          "P07_2",
		GenomeID:    "P07",
		Name:        "2",
		Start:       90,
		Stop:        10,
		Orientation: model.Forward,
		Translation: "DDD",
		Family:      "300",
	}, g)

	_, err = store.Gene(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGenomeSequence(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	seq, err := store.GenomeSequence(ctx, "P01")
	require.NoError(t, err)
	assert.Equal(t, "ATGAAACCCGGGTTTTAG", string(seq))

	_, err = store.GenomeSequence(ctx, "P99")
	assert.ErrorIs(t, err, ErrNotFound)
}

type countingFetcher struct {
	calls int
}

func (f *countingFetcher) GenomeSequence(ctx context.Context, genomeID string) ([]byte, error) {
	f.calls++
	if genomeID == "missing" {
		return nil, ErrNotFound
	}
	return []byte("ACGT-" + genomeID), nil
}

func TestSequenceCache(t *testing.T) {
	src := &countingFetcher{}
	cache, err := NewSequenceCache(src, 2)
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"a", "a", "b", "a", "c", "b"} {
		seq, err := cache.GenomeSequence(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "ACGT-"+id, string(seq))
	}
	// a miss, a hit, b miss, a hit, c miss evicts b, b miss.
	assert.Equal(t, 2, cache.Hits)
	assert.Equal(t, 4, cache.Misses)
	assert.Equal(t, 4, src.calls)

	_, err = cache.GenomeSequence(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.GenomeSequence(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 6, src.calls, "errors must not be cached")
}

func TestSequenceCacheDefaultSize(t *testing.T) {
	cache, err := NewSequenceCache(&countingFetcher{}, 0)
	require.NoError(t, err)
	assert.NotNil(t, cache)
}
