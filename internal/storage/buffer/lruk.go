package buffer

import (
	"fmt"
	"sync"

	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

// accessHistory tracks one frame while it is known to the replacer.
type accessHistory struct {
	accessTimes []util.Timestamp // newest last; at most k+1 retained
	evictable   bool
	inCache     bool // true once the frame moved to the cache queue
}

// LRUKReplacer implements the LRU-K replacement policy. A frame's backward
// K-distance is the gap between the current timestamp and its Kth most
// recent access; frames with fewer than K accesses count as infinitely
// distant. Evict prefers infinite-distance frames in first-access order,
// then the finite-distance frame whose Kth-from-last access is oldest.
//
// Frames live on one of two queues threaded through the next/prev slices
// with -1 sentinels: the history queue (fewer than K accesses, first-access
// order) and the cache queue (K or more accesses, promotion order).
type LRUKReplacer struct {
	mu sync.Mutex

	frames []*accessHistory // indexed by frame id, nil when untracked
	next   []int            // forward links for the queue the frame is on
	prev   []int            // backward links

	historyHead int
	historyTail int
	cacheHead   int
	cacheTail   int

	currentTimestamp util.Timestamp
	currSize         int // evictable frames
	replacerSize     int
	k                int
}

var _ Replacer = (*LRUKReplacer)(nil)

// NewLRUKReplacer creates a replacer tracking up to numFrames frames under
// an LRU-K policy considering the last k accesses.
func NewLRUKReplacer(numFrames, k int) *LRUKReplacer {
	if numFrames <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	if k < 1 {
		panic(util.ErrInvalidK)
	}

	r := &LRUKReplacer{
		frames:       make([]*accessHistory, numFrames),
		next:         make([]int, numFrames),
		prev:         make([]int, numFrames),
		historyHead:  -1,
		historyTail:  -1,
		cacheHead:    -1,
		cacheTail:    -1,
		replacerSize: numFrames,
		k:            k,
	}
	for i := range numFrames {
		r.next[i] = -1
		r.prev[i] = -1
	}
	return r
}

// RecordAccess registers one access to frameID at a fresh timestamp.
// Panics when frameID is outside [0, numFrames).
func (r *LRUKReplacer) RecordAccess(frameID util.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeInRange(frameID)

	r.currentTimestamp++
	idx := int(frameID)
	h := r.frames[idx]
	if h == nil {
		h = &accessHistory{accessTimes: make([]util.Timestamp, 0, r.k+1)}
		h.accessTimes = append(h.accessTimes, r.currentTimestamp)
		r.frames[idx] = h
		if r.k == 1 {
			r.pushTail(&r.cacheHead, &r.cacheTail, idx)
			h.inCache = true
			return
		}
		r.pushTail(&r.historyHead, &r.historyTail, idx)
		return
	}

	h.accessTimes = append(h.accessTimes, r.currentTimestamp)
	switch {
	case len(h.accessTimes) == r.k:
		r.unlink(&r.historyHead, &r.historyTail, idx)
		r.pushTail(&r.cacheHead, &r.cacheTail, idx)
		h.inCache = true
	case len(h.accessTimes) > r.k+1:
		h.accessTimes = h.accessTimes[1:]
	}
}

// SetEvictable toggles the evictable flag of a known frame, adjusting the
// evictable count only on an actual state change. Unknown frames are
// ignored. Panics when frameID is outside [0, numFrames).
func (r *LRUKReplacer) SetEvictable(frameID util.FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeInRange(frameID)

	h := r.frames[int(frameID)]
	if h == nil || h.evictable == evictable {
		return
	}
	h.evictable = evictable
	if evictable {
		r.currSize++
	} else {
		r.currSize--
	}
}

// Evict selects the evictable frame with the greatest backward K-distance,
// forgets it, and returns its id. Frames with fewer than K accesses take
// priority, oldest first access winning; among finite distances the frame
// whose Kth-from-last access is oldest wins, insertion order breaking ties.
func (r *LRUKReplacer) Evict() (util.FrameID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currSize == 0 {
		return -1, util.ErrNoEvictableFrame
	}

	for idx := r.historyHead; idx != -1; idx = r.next[idx] {
		if r.frames[idx].evictable {
			r.remove(idx)
			return util.FrameID(idx), nil
		}
	}

	victim := -1
	var maxDiff util.Timestamp
	for idx := r.cacheHead; idx != -1; idx = r.next[idx] {
		h := r.frames[idx]
		if !h.evictable {
			continue
		}
		kth := h.accessTimes[len(h.accessTimes)-r.k]
		diff := r.currentTimestamp - kth
		if victim == -1 || diff > maxDiff {
			victim = idx
			maxDiff = diff
		}
	}
	if victim == -1 {
		return -1, util.ErrNoEvictableFrame
	}
	r.remove(victim)
	return util.FrameID(victim), nil
}

// Remove forcibly forgets a frame, discarding its access history. Unknown
// frames are ignored; removing a tracked frame that is not evictable
// violates the caller contract.
func (r *LRUKReplacer) Remove(frameID util.FrameID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := int(frameID)
	if idx < 0 || idx >= r.replacerSize || r.frames[idx] == nil {
		return nil
	}
	if !r.frames[idx].evictable {
		return fmt.Errorf("[buffer] [Remove] frame %d: %w", frameID, util.ErrFrameNotEvictable)
	}
	r.remove(idx)
	return nil
}

// Size returns the number of evictable frames.
func (r *LRUKReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currSize
}

// remove unlinks an evictable frame from its queue and forgets it.
// Caller must hold mu.
func (r *LRUKReplacer) remove(idx int) {
	if r.frames[idx].inCache {
		r.unlink(&r.cacheHead, &r.cacheTail, idx)
	} else {
		r.unlink(&r.historyHead, &r.historyTail, idx)
	}
	r.frames[idx] = nil
	r.currSize--
}

func (r *LRUKReplacer) pushTail(head, tail *int, idx int) {
	r.prev[idx] = *tail
	r.next[idx] = -1
	if *tail != -1 {
		r.next[*tail] = idx
	}
	*tail = idx
	if *head == -1 {
		*head = idx
	}
}

func (r *LRUKReplacer) unlink(head, tail *int, idx int) {
	prev := r.prev[idx]
	next := r.next[idx]
	isHead := prev == -1
	isTail := next == -1

	switch {
	case isHead && isTail:
		// Only one node in the queue
		*head = -1
		*tail = -1
	case isHead && !isTail:
		// Removing head, next becomes new head
		*head = next
		r.prev[next] = -1
	case !isHead && isTail:
		// Removing tail, prev becomes new tail
		*tail = prev
		r.next[prev] = -1
	default:
		// Removing middle node, connect prev and next
		r.next[prev] = next
		r.prev[next] = prev
	}

	r.next[idx] = -1
	r.prev[idx] = -1
}

func (r *LRUKReplacer) mustBeInRange(frameID util.FrameID) {
	if frameID < 0 || int(frameID) >= r.replacerSize {
		panic(fmt.Errorf("[buffer] [replacer] frame %d: %w", frameID, util.ErrFrameOutOfRange))
	}
}
