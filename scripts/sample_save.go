package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/samcharles93/gbsav/pkg/sav"
)

// sample_save writes a formatted save holding a few generated songs, for
// exercising the CLI and API by hand.
func main() {
	out := flag.String("out", "sample.sav", "output path")
	half := flag.Bool("half", false, "write a 64kb save")
	songs := flag.Int("songs", 3, "number of songs to generate")
	flag.Parse()

	variant := sav.VariantFull
	if *half {
		variant = sav.VariantHalf
	}
	buf, err := sav.Format(variant)
	if err != nil {
		fail(err)
	}
	c, err := sav.New(buf)
	if err != nil {
		fail(err)
	}
	for i := 0; i < *songs; i++ {
		p := sav.Project{
			Name:    fmt.Sprintf("DEMO%d", i),
			Version: byte(i),
			Body:    demoBody(i+1, byte(i)),
		}
		if _, err := c.Import(p); err != nil {
			fail(err)
		}
	}
	if err := os.WriteFile(*out, c.Bytes(), 0o644); err != nil {
		fail(err)
	}

	s, err := c.Summary()
	if err != nil {
		fail(err)
	}
	b, _ := json.MarshalIndent(s, "", "  ")
	fmt.Println(string(b))
}

// demoBody spans n blocks: each ends in a chain switch except the last,
// which mixes a run, a wave frame and an instrument before the end marker.
func demoBody(n int, seed byte) []byte {
	var body []byte
	for i := 0; i < n-1; i++ {
		for j := 0; j < sav.BlockSize-2; j++ {
			body = append(body, (seed+byte(i+j))&0x3F)
		}
		body = append(body, 0xE0, 0x00)
	}
	return append(body, 0xC0, seed&0x3F, 0x20, 0xE0, 0xF0, 0x01, 0xE0, 0xF1, 0x01, 0xE0, 0xFF)
}

func fail(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
