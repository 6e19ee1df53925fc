package sav

import (
	"slices"
)

// Token bytes of the packed song stream.
const (
	tokRLE = 0xC0
	tokCmd = 0xE0

	cmdEnd   = 0xFF
	cmdWave  = 0xF0
	cmdInstr = 0xF1
)

const (
	// MaxDecodeSteps bounds decoding of streams that loop between blocks.
	MaxDecodeSteps = 100000
	// SnapshotSize is the largest decoded song.
	SnapshotSize = WorkingMemSize
)

// WavePattern is the default wave frame expanded by E0 F0 n.
var WavePattern = [16]byte{
	0x8E, 0xCD, 0xCC, 0xBB, 0xAA, 0xA9, 0x99, 0x88,
	0x87, 0x76, 0x66, 0x55, 0x54, 0x43, 0x32, 0x31,
}

// InstrumentPattern is the default instrument expanded by E0 F1 n.
var InstrumentPattern = [16]byte{
	0xA8, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x03, 0x00,
	0x00, 0xD0, 0x00, 0x00, 0x00, 0xF3, 0x00, 0x00,
}

// BlockID is the value a chain switch uses to name block index.
func BlockID(index int) int {
	return index + 1
}

// BlockReader returns the raw bytes of a block.
type BlockReader interface {
	Block(index int) ([]byte, error)
}

// Chain lists the blocks owned by one song in ascending index order. The
// first entry is where the song's stream starts.
type Chain struct {
	Song   int
	Blocks []int
}

func (c Chain) lookup(id int) (int, bool) {
	index := id - 1
	if _, ok := slices.BinarySearch(c.Blocks, index); ok {
		return index, true
	}
	return 0, false
}

// resolve maps a chain switch operand to an owned block. The operand is
// tried as a block id first and then as id-1, which accepts streams written
// with either numbering.
func (c Chain) resolve(operand byte) (int, bool) {
	if index, ok := c.lookup(int(operand)); ok {
		return index, true
	}
	return c.lookup(int(operand) - 1)
}

// Decoded is a materialised song.
type Decoded struct {
	Data []byte
	// Order lists blocks in the order the stream visits them.
	Order []int
}

type decoder struct {
	r     BlockReader
	chain Chain
	block int
	data  []byte
	pos   int
	out   []byte
	order []int
}

// Decode interprets the token stream of chain, following chain switches
// between blocks until the end marker.
func Decode(r BlockReader, chain Chain) (Decoded, error) {
	if len(chain.Blocks) == 0 {
		return Decoded{}, corruptf("song %d owns no blocks", chain.Song)
	}
	d := &decoder{
		r:     r,
		chain: chain,
		out:   make([]byte, 0, SnapshotSize),
	}
	if err := d.enter(chain.Blocks[0]); err != nil {
		return Decoded{}, err
	}
	for step := 0; step < MaxDecodeSteps; step++ {
		done, err := d.step()
		if err != nil {
			return Decoded{}, err
		}
		if done {
			return Decoded{Data: d.out, Order: d.order}, nil
		}
	}
	return Decoded{}, corruptf("no end marker within %d steps", MaxDecodeSteps)
}

func (d *decoder) enter(block int) error {
	data, err := d.r.Block(block)
	if err != nil {
		return err
	}
	if len(data) != BlockSize {
		return corruptf("block %d has %d bytes", block, len(data))
	}
	d.block = block
	d.data = data
	d.pos = 0
	if !slices.Contains(d.order, block) {
		d.order = append(d.order, block)
	}
	return nil
}

func (d *decoder) next() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, corruptf("stream runs past the end of block %d", d.block)
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) emit(p ...byte) error {
	if len(d.out)+len(p) > SnapshotSize {
		return corruptf("decoded song exceeds %d bytes", SnapshotSize)
	}
	d.out = append(d.out, p...)
	return nil
}

func (d *decoder) emitRun(v byte, n int) error {
	if len(d.out)+n > SnapshotSize {
		return corruptf("decoded song exceeds %d bytes", SnapshotSize)
	}
	for range n {
		d.out = append(d.out, v)
	}
	return nil
}

func (d *decoder) emitPattern(pattern *[16]byte, n int) error {
	for range n {
		if err := d.emit(pattern[:]...); err != nil {
			return err
		}
	}
	return nil
}

// step consumes one token and reports whether the end marker was reached.
func (d *decoder) step() (bool, error) {
	b, err := d.next()
	if err != nil {
		return false, err
	}
	switch b {
	case tokRLE:
		v, err := d.next()
		if err != nil {
			return false, err
		}
		if v == tokRLE {
			return false, d.emit(tokRLE)
		}
		n, err := d.next()
		if err != nil {
			return false, err
		}
		return false, d.emitRun(v, int(n))
	case tokCmd:
		return d.command()
	default:
		return false, d.emit(b)
	}
}

func (d *decoder) command() (bool, error) {
	sub, err := d.next()
	if err != nil {
		return false, err
	}
	switch sub {
	case tokCmd:
		return false, d.emit(tokCmd)
	case cmdEnd:
		return true, nil
	case cmdWave, cmdInstr:
		n, err := d.next()
		if err != nil {
			return false, err
		}
		pattern := &WavePattern
		if sub == cmdInstr {
			pattern = &InstrumentPattern
		}
		return false, d.emitPattern(pattern, int(n))
	default:
		target, ok := d.chain.resolve(sub)
		if !ok {
			return false, corruptf("block %d switches to 0x%02X, not owned by song %d", d.block, sub, d.chain.Song)
		}
		return false, d.enter(target)
	}
}

// FindNextChainSlot scans a single block for the first chain switch and
// returns the offset of its operand byte within the block. It reports false
// when the block ends the stream or the scan runs off the block.
func FindNextChainSlot(block []byte) (int, bool) {
	pos := 0
	for pos < len(block) {
		switch block[pos] {
		case tokRLE:
			if pos+1 < len(block) && block[pos+1] == tokRLE {
				pos += 2
			} else {
				pos += 3
			}
		case tokCmd:
			if pos+1 >= len(block) {
				return 0, false
			}
			switch block[pos+1] {
			case tokCmd:
				pos += 2
			case cmdEnd:
				return 0, false
			case cmdWave, cmdInstr:
				pos += 3
			default:
				return pos + 1, true
			}
		default:
			pos++
		}
	}
	return 0, false
}
