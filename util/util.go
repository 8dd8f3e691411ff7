package util

import "sync/atomic"

func BoolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

type AtomicBool struct {
	flag uint32
}

func NewAtomicBool(initVal bool) *AtomicBool {
	return &AtomicBool{flag: uint32(BoolToU8(initVal))}
}

func (b *AtomicBool) Get() bool {
	return atomic.LoadUint32(&b.flag) != 0
}

func (b *AtomicBool) Set(newVal bool) {
	atomic.StoreUint32(&b.flag, uint32(BoolToU8(newVal)))
}
