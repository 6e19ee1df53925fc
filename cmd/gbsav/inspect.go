package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/samcharles93/gbsav/pkg/sav"
	"github.com/urfave/cli/v3"
)

func inspectCmd() *cli.Command {
	var (
		savPath string
		asJSON  bool
		exact   bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Summarise a save file",
		Flags: []cli.Flag{
			savFlag(&savPath),
			&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "exact", Usage: "compare both halves byte for byte when checking for a 64kb save", Destination: &exact},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := sav.Open(savPath)
			if err != nil {
				return exitError(err)
			}
			defer func() { _ = f.Close() }()

			s := f.Summary()
			if exact && s.Valid && s.Size == sav.SizeFull {
				s.Is64KB = sav.MirrorsExactly(f.Data)
			}
			w := stdout(cmd)
			if asJSON {
				return printJSON(w, s)
			}
			printSummary(w, s)
			return nil
		},
	}
}

func songsCmd() *cli.Command {
	var savPath string

	return &cli.Command{
		Name:  "songs",
		Usage: "List occupied song slots",
		Flags: []cli.Flag{savFlag(&savPath)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := sav.Open(savPath)
			if err != nil {
				return exitError(err)
			}
			defer func() { _ = f.Close() }()

			s := f.Summary()
			if !s.Valid {
				return cli.Exit(s.Reason, 1)
			}
			printSongs(stdout(cmd), s.Songs)
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printSummary(w io.Writer, s sav.Summary) {
	printField(w, "size", fmt.Sprintf("0x%X", s.Size))
	printField(w, "layout", s.Variant)
	printField(w, "64kb", fmt.Sprint(s.Is64KB))
	printField(w, "initialized", fmt.Sprint(s.Initialized))
	printField(w, "blocks", fmt.Sprintf("%d used, %d free of %d", s.UsedBlocks, s.FreeBlocks, s.TotalBlocks))
	if s.StrayBlocks > 0 {
		printField(w, "stray blocks", fmt.Sprint(s.StrayBlocks))
	}
	if s.ActiveSong != nil {
		printField(w, "active song", fmt.Sprint(*s.ActiveSong))
	} else {
		printField(w, "active song", "none")
	}
	_, _ = fmt.Fprintln(w)
	printSongs(w, s.Songs)
}

func printSongs(w io.Writer, songs []sav.SongInfo) {
	if len(songs) == 0 {
		_, _ = fmt.Fprintln(w, "no songs")
		return
	}
	_, _ = fmt.Fprintf(w, "%-4s %-8s %-4s %6s  %s\n", "Slot", "Name", "Ver", "Blocks", "Status")
	for _, song := range songs {
		status := "ok"
		if !song.Valid {
			status = "invalid: " + song.Error
		}
		if song.Active {
			status += " (active)"
		}
		_, _ = fmt.Fprintf(w, "%-4d %-8s %-4X %6d  %s\n", song.ID, song.Name, song.Version, song.Blocks, status)
	}
}

func printField(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "%-14s %s\n", label+":", value)
}
