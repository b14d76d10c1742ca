package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed programs keyed by the combined hash of source
// text and parse options. Programs are immutable once parsed, so a cached
// tree can be shared freely across goroutines.
var globalCache sync.Map

// state tracks the one-time parse of a cached source.
type state struct {
	once sync.Once
	prog *Program
	err  error
}

// hashOptions encodes the cache-relevant options using gob and hashes the
// encoding with xxh3.
func hashOptions(o options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(o.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// ParseReader parses a complete script from an io.Reader. The reader is
// wrapped with asynchronous read-ahead so input is prefetched while
// earlier chunks are consumed, and the parsed program is cached by content
// hash for repeated parses of identical input.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	o.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseStringCached(ctx, string(data), o, opts...)
}

// parseStringCached parses a string, serving repeated identical inputs
// from the cache.
func parseStringCached(
	ctx context.Context,
	source string,
	o options,
	opts ...Option,
) (*Program, error) {
	sourceHash := xxh3.Hash([]byte(source))
	optsHash := hashOptions(o)
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	entry := new(state)

	value, cacheHit := globalCache.LoadOrStore(key, entry)

	metadata, ok := value.(*state)
	if !ok {
		// Unreachable unless the cache is corrupted; reparse directly.
		return ParseString(ctx, source, opts...)
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	metadata.once.Do(func() {
		metadata.prog, metadata.err = ParseString(ctx, source, opts...)
	})

	return metadata.prog, metadata.err
}

// ClearCache removes all cached programs. This is primarily useful for
// testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
