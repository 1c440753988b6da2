package util

// PageID represents a unique page identifier
type PageID uint64

// FrameID represents a buffer frame index. Frames are dense: 0 <= id < pool size.
type FrameID int

// Timestamp represents a logical access timestamp
type Timestamp uint64

// Options represents configuration options for the indexing substrate
type Options struct {
	BucketSize int // Max entries per page-table bucket
	NumFrames  int // Frames tracked by the replacer
	K          int // Accesses considered by the LRU-K policy
}

// DefaultOptions returns default substrate options
func DefaultOptions() Options {
	return Options{
		BucketSize: 4,
		NumFrames:  64,
		K:          2,
	}
}
