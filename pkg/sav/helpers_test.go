package sav

import (
	"fmt"
	"testing"
)

type blockMap map[int][]byte

func (m blockMap) Block(index int) ([]byte, error) {
	b, ok := m[index]
	if !ok {
		return nil, fmt.Errorf("block %d missing", index)
	}
	return b, nil
}

// rawBlock pads tokens to a full block.
func rawBlock(tokens ...byte) []byte {
	b := make([]byte, BlockSize)
	copy(b, tokens)
	return b
}

// songBody builds a token body spanning n blocks plus the bytes it decodes
// to. Every block but the last ends with a chain switch placeholder; the last
// ends the stream after a short payload.
func songBody(n int, seed byte) (body, decoded []byte) {
	for b := 0; b < n; b++ {
		size := BlockSize - 2
		if b == n-1 {
			size = 100
		}
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = (seed + byte(b*7+i)) & 0x3F
		}
		body = append(body, payload...)
		decoded = append(decoded, payload...)
		if b == n-1 {
			body = append(body, tokCmd, cmdEnd)
		} else {
			body = append(body, tokCmd, 0x00)
		}
	}
	return body, decoded
}

func newContainer(t *testing.T, variant Variant) *Container {
	t.Helper()
	buf, err := Format(variant)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	c, err := New(buf)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return c
}

func mustImport(t *testing.T, c *Container, name string, blocks int, seed byte) (int, []byte) {
	t.Helper()
	body, decoded := songBody(blocks, seed)
	song, err := c.Import(Project{Name: name, Version: 1, Body: body})
	if err != nil {
		t.Fatalf("import %s: %v", name, err)
	}
	return song, decoded
}

func checkAllocInvariant(t *testing.T, c *Container) {
	t.Helper()
	free, err := c.Alloc().FreeCount()
	if err != nil {
		t.Fatalf("free count: %v", err)
	}
	sum := free
	for song := 0; song < SongCount; song++ {
		n, err := c.Alloc().UsedBy(song)
		if err != nil {
			t.Fatalf("used by %d: %v", song, err)
		}
		sum += n
	}
	if sum != c.Layout().Blocks {
		t.Fatalf("allocation invariant: used+free=%d want %d", sum, c.Layout().Blocks)
	}
}
