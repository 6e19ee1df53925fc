package sav

import (
	"bytes"
	"testing"
)

func TestNameEncoding(t *testing.T) {
	t.Parallel()

	enc := EncodeName("AB-c9")
	want := [NameLen]byte{0x41, 0x42, spaceCode, spaceCode, 0x39, 0, 0, 0}
	if enc != want {
		t.Fatalf("encode: got %x want %x", enc, want)
	}
	if got := DecodeName(enc[:]); got != "AB  9   " {
		t.Fatalf("decode: got %q", got)
	}
	if got := DecodeName([]byte{0x5A, 0x30, 0x7E, 0x00}); got != "Z0      " {
		t.Fatalf("decode short: got %q", got)
	}
	long := EncodeName("ABCDEFGHIJK")
	if got := DecodeName(long[:]); got != "ABCDEFGH" {
		t.Fatalf("long name: got %q", got)
	}
}

func TestDirectoryEntries(t *testing.T) {
	t.Parallel()

	c := newContainer(t, VariantFull)
	d := c.Directory()

	if err := d.SetName(3, "TUNE1"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := d.SetVersion(3, 0x2A); err != nil {
		t.Fatalf("set version: %v", err)
	}
	name, _ := d.Name(3)
	if name != "TUNE1" {
		t.Fatalf("name: got %q", name)
	}
	raw, _ := d.RawName(3)
	if !bytes.Equal(raw, []byte{'T', 'U', 'N', 'E', '1', 0, 0, 0}) {
		t.Fatalf("raw name: got %x", raw)
	}
	if c.Bytes()[NameTableOffset+3*NameLen] != 'T' {
		t.Fatalf("name stored at wrong offset")
	}
	if v, _ := d.Version(3); v != 0x2A {
		t.Fatalf("version: got 0x%02X", v)
	}

	if _, ok, _ := d.Active(); ok {
		t.Fatalf("formatted container has an active song")
	}
	if err := d.SetActive(3); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if s, ok, _ := d.Active(); !ok || s != 3 {
		t.Fatalf("active: got %d %v", s, ok)
	}
	if init, _ := d.Initialized(); !init {
		t.Fatalf("formatted container not initialized")
	}

	if err := d.Clear(3); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if name, _ := d.Name(3); name != "" {
		t.Fatalf("cleared name: got %q", name)
	}
}
