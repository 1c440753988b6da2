package util

import "errors"

var (
	ErrInvalidBucketSize = errors.New("invalid bucket size")
	ErrInvalidPoolSize   = errors.New("invalid pool size")
	ErrInvalidK          = errors.New("invalid k")
	ErrFrameOutOfRange   = errors.New("frame id out of range")
	ErrFrameNotEvictable = errors.New("frame is not evictable")
	ErrNoEvictableFrame  = errors.New("no evictable frame")
)
