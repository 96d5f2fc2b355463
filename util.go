package bn254fr

import (
	"encoding/binary"
	"unsafe"
)

// readLE64 reads a uint64 in little endian
func readLE64(p []byte) uint64 {
	return binary.LittleEndian.Uint64(p)
}

// writeLE64 writes a uint64 in little endian
func writeLE64(p []byte, x uint64) {
	binary.LittleEndian.PutUint64(p, x)
}

// memclear clears memory to prevent leaking sensitive information
func memclear(ptr unsafe.Pointer, n uintptr) {
	// Use a volatile write to prevent the compiler from optimizing away the clear
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + i)) = 0
	}
}
