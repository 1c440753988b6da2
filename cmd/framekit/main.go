package main

import (
	"fmt"

	"github.com/bietkhonhungvandi212/framekit/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/framekit/internal/storage/hash"
	"github.com/bietkhonhungvandi212/framekit/internal/storage/page"
	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

// A miniature pool front end: the page table maps resident page ids to
// frames, the replacer picks victims once every frame is occupied.
func main() {
	opts := util.DefaultOptions()
	opts.NumFrames = 3

	pageTable := hash.New[util.PageID, util.FrameID](opts.BucketSize,
		hash.WithHasher(hash.IntegerHasher[util.PageID]()))
	replacer := buffer.NewLRUKReplacer(opts.NumFrames, opts.K)

	frames := make([]*page.Page, opts.NumFrames)
	used := 0

	fetch := func(id util.PageID) {
		if frame, ok := pageTable.Find(id); ok {
			replacer.RecordAccess(frame)
			frames[frame].Header.SetDirtyFlag()
			fmt.Printf("page %d: hit in frame %d (dirty=%v)\n", id, frame, frames[frame].Header.IsDirty())
			return
		}

		var frame util.FrameID
		if used < opts.NumFrames {
			frame = util.FrameID(used)
			used++
		} else {
			victim, err := replacer.Evict()
			if err != nil {
				fmt.Printf("page %d: no frame available: %v\n", id, err)
				return
			}
			frame = victim
			old := frames[frame]
			old.Header.ClearDirtyFlag() // the real pool would flush here
			pageTable.Remove(old.Header.PageID)
			fmt.Printf("page %d: evicted page %d from frame %d\n", id, old.Header.PageID, frame)
		}

		p := page.CreateTestPage(id, fmt.Appendf(nil, "page %d", id))
		p.Header.SetPinnedFlag()
		frames[frame] = p
		pageTable.Insert(id, frame)
		replacer.RecordAccess(frame)
		p.Header.ClearPinnedFlag()
		replacer.SetEvictable(frame, true)
		fmt.Printf("page %d: loaded into frame %d (pinned=%v)\n", id, frame, p.Header.IsPinned())
	}

	for _, id := range []util.PageID{1, 2, 3, 1, 2, 4, 5, 1} {
		fetch(id)
	}

	fmt.Printf("resident pages: %d buckets, global depth %d, evictable frames %d\n",
		pageTable.GetNumBuckets(), pageTable.GetGlobalDepth(), replacer.Size())
}
