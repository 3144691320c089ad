package dartlex

import (
	lru "github.com/hashicorp/golang-lru"
)

// CachingLexicon memoizes Parse results for repeated identical inputs. It
// is a purely additive performance wrapper: cache hits and misses always
// produce identical results, because the underlying Lexicon is immutable
// once built and Parse is a pure function of its input.
type CachingLexicon[T any] struct {
	lex   *Lexicon[T]
	cache *lru.Cache
}

type parseResult[T any] struct {
	value []T
	err   error
}

// NewCachingLexicon wraps lex with an LRU cache holding up to size
// distinct inputs' parse results. size is floored at 16.
func NewCachingLexicon[T any](lex *Lexicon[T], size int) *CachingLexicon[T] {
	if size < 16 {
		size = 16
	}
	c, _ := lru.New(size) // only errors on size <= 0, excluded above
	return &CachingLexicon[T]{lex: lex, cache: c}
}

// Parse returns the cached result for s if present, otherwise computes it
// via the wrapped Lexicon's Parse and caches it before returning.
func (c *CachingLexicon[T]) Parse(s []byte) ([]T, error) {
	key := string(s)

	if v, ok := c.cache.Get(key); ok {
		r := v.(parseResult[T])
		return r.value, r.err
	}

	value, err := c.lex.Parse(s)
	c.cache.Add(key, parseResult[T]{value: value, err: err})
	return value, err
}
