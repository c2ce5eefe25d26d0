package manifest

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

// registry maps a cache key to the *result of parsing that source with
// those options.
var registry sync.Map

// result holds the outcome of parsing one source, successful or not.
type result struct {
	once     sync.Once
	manifest *Manifest
	err      error
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(o options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	// Encode fields that affect the parse result
	_ = enc.Encode(o.strict)

	return xxh3.Hash(buf.Bytes())
}

// cacheKey combines the source and options hashes.
func cacheKey(source string, o options) (key string, sourceHash, optsHash uint64) {
	sourceHash = xxh3.HashString(source)
	optsHash = hashOptions(o)

	return strconv.FormatUint(sourceHash^optsHash, 36), sourceHash, optsHash
}

// ParseReader reads all of r and parses it as a manifest.
//
// Results are cached process-wide by content and options, so parsing the
// same input again returns the same *Manifest (or the same error) without
// re-parsing. Use [WithCache] to bypass the cache.
//
// A read failure is returned as an error matching [ErrReadInput].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Manifest, error) {
	o := makeOptions(opts...)

	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	if err := context.Cause(ctx); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	o.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	if o.noCache {
		o.logger.TraceContext(ctx, "cache bypass")

		return parse(string(data), o)
	}

	return parseCached(ctx, string(data), o)
}

func parseCached(ctx context.Context, source string, o options) (*Manifest, error) {
	key, sourceHash, optsHash := cacheKey(source, o)

	v, cacheHit := registry.LoadOrStore(key, new(result))
	res := v.(*result)

	o.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	res.once.Do(func() {
		res.manifest, res.err = parse(source, o)
		if res.err != nil {
			res.err = WrapError(res.err).With(
				slog.Int("source_length", len(source)),
			)
		}
	})

	return res.manifest, res.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	registry.Clear()
}
