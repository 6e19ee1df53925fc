package main

import (
	"errors"
	"fmt"

	"github.com/samcharles93/gbsav/pkg/sav"
	"github.com/urfave/cli/v3"
)

// exitError turns an engine error into the message the user sees.
func exitError(err error) error {
	switch {
	case errors.Is(err, sav.ErrInvalidContainerSize):
		return cli.Exit("not a valid save file", 1)
	case errors.Is(err, sav.ErrOutOfBlocks):
		return cli.Exit(fmt.Sprintf("out of space: %v", err), 1)
	case errors.Is(err, sav.ErrNoFreeSlot):
		return cli.Exit("no free song slot", 1)
	case errors.Is(err, sav.ErrInvalidSong):
		return cli.Exit(fmt.Sprintf("invalid song: %v", err), 1)
	default:
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
}
