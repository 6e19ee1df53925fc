package main

import (
	"context"

	"github.com/samcharles93/gbsav/internal/logger"
	"github.com/samcharles93/gbsav/internal/savstore"
	"github.com/samcharles93/gbsav/pkg/sav"
	"github.com/urfave/cli/v3"
)

func newCmd() *cli.Command {
	var (
		out      string
		half     bool
		mirrored bool
	)

	return &cli.Command{
		Name:  "new",
		Usage: "Create a blank, initialized save file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "path of the new save", Required: true, Destination: &out},
			&cli.BoolFlag{Name: "half", Usage: "write a 64kb save", Destination: &half},
			&cli.BoolFlag{Name: "mirrored", Usage: "write a 128kb save whose halves mirror (64kb cartridge dump)", Destination: &mirrored},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			variant := sav.VariantFull
			switch {
			case half && mirrored:
				return cli.Exit("error: --half and --mirrored are mutually exclusive", 1)
			case half:
				variant = sav.VariantHalf
			case mirrored:
				variant = sav.VariantMirrored
			}
			doc, err := savstore.Create(out, variant)
			if err != nil {
				return exitError(err)
			}
			logger.FromContext(ctx).Info("save created", "path", out, "layout", doc.Container.Layout().Variant.String(), "blocks", doc.Container.Layout().Blocks)
			return nil
		},
	}
}
