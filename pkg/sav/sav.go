// Package sav implements the Game Boy tracker SRAM save container.
//
// A save holds up to 32 songs. Each song is stored as a chain of 512-byte
// blocks tracked by an allocation table, and the block payload is a token
// stream (run-length runs, default-pattern expansion and chain switches).
// The package decodes that stream and relocates already-encoded streams
// between blocks. It never compresses.
//
// The buffer is the single source of truth: a Container re-reads it on every
// call and keeps no decoded copy.
package sav

// Layout constants are fixed by the tracker's SRAM format and must never change.
const (
	BlockSize  = 0x200
	SongCount  = 32
	NameLen    = 8
	EmptyEntry = 0xFF

	// WorkingMemSize is the size of the decoded song snapshot at offset 0.
	WorkingMemSize = 0x8000

	NameTableOffset    = 0x8000
	VersionTableOffset = 0x8100
	InitMarkOffset     = 0x813E
	ActiveSlotOffset   = 0x8140
	AllocTableOffset   = 0x8141
	BlockStorageOffset = 0x8200

	// Blocks available in a full (128 KB) image.
	FullBlocks = 0xBF
	// Blocks available on 64 KB hardware. One table entry above the 0x80
	// boundary stays reserved.
	HalfBlocks = FullBlocks - 0x80

	SizeHalf = 0x10000
	SizeFull = 0x20000
)

// InitMark is written at InitMarkOffset once the tracker has formatted SRAM.
const InitMark = "jk"

// NoSong marks an unset active slot pointer.
const NoSong = EmptyEntry

// blockOffset returns the absolute offset of block i.
func blockOffset(i int) int {
	return BlockStorageOffset + i*BlockSize
}
