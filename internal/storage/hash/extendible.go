package hash

import (
	"container/list"
	"fmt"
	"sync"

	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

// maxSplitRetries bounds the Insert loop. A split only fails to make progress
// when every key in the overflowing bucket shares the same hash bits, which
// the key contract rules out; the cap turns that caller bug into a loud
// failure instead of a spin.
const maxSplitRetries = 64

type entry[K comparable, V any] struct {
	key   K
	value V
}

// bucket holds up to size entries whose hashes agree on the low depth bits.
// One bucket may be referenced by several directory slots at once.
type bucket[K comparable, V any] struct {
	items *list.List // of *entry[K, V]
	size  int
	depth int
}

func newBucket[K comparable, V any](size, depth int) *bucket[K, V] {
	return &bucket[K, V]{
		items: list.New(),
		size:  size,
		depth: depth,
	}
}

func (b *bucket[K, V]) find(key K) (V, bool) {
	for e := b.items.Front(); e != nil; e = e.Next() {
		if ent := e.Value.(*entry[K, V]); ent.key == key {
			return ent.value, true
		}
	}
	var zero V
	return zero, false
}

func (b *bucket[K, V]) remove(key K) bool {
	for e := b.items.Front(); e != nil; e = e.Next() {
		if ent := e.Value.(*entry[K, V]); ent.key == key {
			b.items.Remove(e)
			return true
		}
	}
	return false
}

// insert places (key, value) in the bucket, overwriting an existing key.
// Returns false when the bucket is full and the key is absent.
func (b *bucket[K, V]) insert(key K, value V) bool {
	for e := b.items.Front(); e != nil; e = e.Next() {
		if ent := e.Value.(*entry[K, V]); ent.key == key {
			ent.value = value
			return true
		}
	}
	if b.items.Len() >= b.size {
		return false
	}
	b.items.PushBack(&entry[K, V]{key: key, value: value})
	return true
}

// ExtendibleHashTable is an in-memory extendible hash index. A directory of
// 2^globalDepth slots maps the low bits of a key's hash to a bucket; full
// buckets split, doubling the directory when the splitting bucket already
// uses every directory bit. All operations are safe for concurrent use.
type ExtendibleHashTable[K comparable, V any] struct {
	mu          sync.Mutex
	bucketSize  int
	globalDepth int
	numBuckets  int
	dir         []*bucket[K, V]
	hash        Hasher[K]
}

// Option configures a table at construction.
type Option[K comparable] func(*tableConfig[K])

type tableConfig[K comparable] struct {
	hasher Hasher[K]
}

// WithHasher overrides the default key hash. The hash must be deterministic
// for the lifetime of the table.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(cfg *tableConfig[K]) {
		cfg.hasher = h
	}
}

// New creates a table whose buckets hold up to bucketSize entries.
func New[K comparable, V any](bucketSize int, opts ...Option[K]) *ExtendibleHashTable[K, V] {
	if bucketSize <= 0 {
		panic(util.ErrInvalidBucketSize)
	}
	cfg := tableConfig[K]{hasher: ComparableHasher[K]()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ExtendibleHashTable[K, V]{
		bucketSize: bucketSize,
		numBuckets: 1,
		dir:        []*bucket[K, V]{newBucket[K, V](bucketSize, 0)},
		hash:       cfg.hasher,
	}
}

// indexOf computes the directory slot for key. Caller must hold mu.
func (t *ExtendibleHashTable[K, V]) indexOf(key K) int {
	mask := uint64(1)<<t.globalDepth - 1
	return int(t.hash(key) & mask)
}

// Find returns the value stored under key.
func (t *ExtendibleHashTable[K, V]) Find(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dir[t.indexOf(key)].find(key)
}

// Remove erases the entry under key and reports whether one existed.
// Buckets are never merged and the directory never shrinks.
func (t *ExtendibleHashTable[K, V]) Remove(key K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dir[t.indexOf(key)].remove(key)
}

// Insert stores value under key, overwriting any previous value. A full
// bucket is split, extending the directory when the bucket's local depth has
// reached the global depth; the loop re-enters because a pathological key
// distribution can leave a fresh bucket full again. Termination relies on
// the keys not all sharing one hash.
func (t *ExtendibleHashTable[K, V]) Insert(key K, value V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for range maxSplitRetries {
		b := t.dir[t.indexOf(key)]
		if b.insert(key, value) {
			return
		}

		if b.depth == t.globalDepth {
			t.extendDirectory()
			t.globalDepth++
		}
		t.splitBucket(key)
	}
	panic(fmt.Sprintf("[hash] [Insert] no progress after %d splits, key hashes are degenerate", maxSplitRetries))
}

// extendDirectory doubles the directory; slot i+oldSize aliases slot i.
func (t *ExtendibleHashTable[K, V]) extendDirectory() {
	t.dir = append(t.dir, t.dir...)
}

// splitBucket replaces the bucket serving key with two buckets of one
// greater local depth, partitioned on the new high bit of the local mask.
func (t *ExtendibleHashTable[K, V]) splitBucket(key K) {
	b := t.dir[t.indexOf(key)]
	splitBit := uint64(1) << b.depth
	b.depth++

	b0 := newBucket[K, V](t.bucketSize, b.depth)
	b1 := newBucket[K, V](t.bucketSize, b.depth)

	for i, slot := range t.dir {
		if slot != b {
			continue
		}
		if uint64(i)&splitBit != 0 {
			t.dir[i] = b1
		} else {
			t.dir[i] = b0
		}
	}
	t.numBuckets++

	for e := b.items.Front(); e != nil; e = e.Next() {
		ent := e.Value.(*entry[K, V])
		if t.hash(ent.key)&splitBit != 0 {
			b1.insert(ent.key, ent.value)
		} else {
			b0.insert(ent.key, ent.value)
		}
	}
}

// GetGlobalDepth returns the number of hash bits indexing the directory.
func (t *ExtendibleHashTable[K, V]) GetGlobalDepth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.globalDepth
}

// GetLocalDepth returns the local depth of the bucket at dirIndex.
func (t *ExtendibleHashTable[K, V]) GetLocalDepth(dirIndex int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dir[dirIndex].depth
}

// GetNumBuckets returns the number of distinct buckets in the directory.
func (t *ExtendibleHashTable[K, V]) GetNumBuckets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.numBuckets
}
