package db

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yumyai/phamfasta/logger"
	"go.uber.org/zap"
)

const DefaultCacheSize = 64

type sequenceFetcher interface {
	GenomeSequence(ctx context.Context, genomeID string) ([]byte, error)
}

// SequenceCache keeps recently fetched genome sequences so that genes of the
// same genome do not refetch it. Create one per export pass.
type SequenceCache struct {
	src   sequenceFetcher
	cache *lru.Cache[string, []byte]

	Hits, Misses int
}

func NewSequenceCache(src sequenceFetcher, size int) (*SequenceCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &SequenceCache{src: src, cache: c}, nil
}

// GenomeSequence returns the cached sequence. Callers must not modify it.
func (sc *SequenceCache) GenomeSequence(ctx context.Context, genomeID string) ([]byte, error) {
	if seq, ok := sc.cache.Get(genomeID); ok {
		sc.Hits++
		return seq, nil
	}
	sc.Misses++

	seq, err := sc.src.GenomeSequence(ctx, genomeID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Genome sequence fetched", zap.String("genome", genomeID), zap.Int("length", len(seq)))
	sc.cache.Add(genomeID, seq)
	return seq, nil
}
