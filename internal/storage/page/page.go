package page

import (
	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

// PageSize is the in-memory page payload size (4KB)
const PageSize = 4096

const (
	flagDirty uint16 = 1 << iota
	flagPinned
)

// Page is the in-memory image of one disk block. The substrate treats pages
// as opaque values; only the header flags are consulted here.
type Page struct {
	Header PageHeader
	Data   [PageSize]byte
}

type PageHeader struct {
	PageID util.PageID
	Flags  uint16
}

func (h *PageHeader) IsDirty() bool {
	return h.Flags&flagDirty != 0
}

func (h *PageHeader) SetDirtyFlag() {
	h.Flags |= flagDirty
}

func (h *PageHeader) ClearDirtyFlag() {
	h.Flags &^= flagDirty
}

func (h *PageHeader) IsPinned() bool {
	return h.Flags&flagPinned != 0
}

func (h *PageHeader) SetPinnedFlag() {
	h.Flags |= flagPinned
}

func (h *PageHeader) ClearPinnedFlag() {
	h.Flags &^= flagPinned
}
