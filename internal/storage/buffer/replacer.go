package buffer

import util "github.com/bietkhonhungvandi212/framekit/internal/utils"

// Replacer defines the contract for frame replacement policies.
type Replacer interface {
	// RecordAccess registers one access to the frame at a fresh timestamp.
	RecordAccess(frameID util.FrameID)
	// SetEvictable toggles whether the frame may be returned by Evict.
	// Unknown frames are ignored.
	SetEvictable(frameID util.FrameID, evictable bool)
	// Evict selects a victim frame, forgets it, and returns its id, or an
	// error when no frame is evictable.
	Evict() (util.FrameID, error)
	// Remove forcibly forgets a frame. Removing a tracked frame that is not
	// evictable is a caller contract violation.
	Remove(frameID util.FrameID) error
	// Size returns the number of evictable frames.
	Size() int
}
