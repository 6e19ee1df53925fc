package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/gbsav/internal/logger"
	"github.com/samcharles93/gbsav/internal/savstore"
	"github.com/samcharles93/gbsav/pkg/sav"
	"github.com/urfave/cli/v3"
)

func exportCmd() *cli.Command {
	var (
		savPath string
		song    int64
		out     string
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Write a song out as a standalone project file",
		Flags: []cli.Flag{
			savFlag(&savPath),
			songFlag(&song),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path (default: <NAME>.<VER>.gbsong in the export dir)", Destination: &out},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			f, err := sav.Open(savPath)
			if err != nil {
				return exitError(err)
			}
			defer func() { _ = f.Close() }()

			p, err := f.Export(int(song))
			if err != nil {
				return exitError(err)
			}
			path, err := resolveExportPath(out, cfg.ExportDir, p)
			if err != nil {
				return exitError(err)
			}
			if err := savstore.WriteProject(path, p); err != nil {
				return exitError(err)
			}
			log.Info("song exported", "song", song, "name", p.Name, "blocks", len(p.Body)/sav.BlockSize, "path", path)
			_, _ = fmt.Fprintln(stdout(cmd), path)
			return nil
		},
	}
}

func importCmd() *cli.Command {
	var (
		savPath     string
		projectPath string
		dryRun      bool
		backup      bool
	)

	return &cli.Command{
		Name:  "import",
		Usage: "Add a project file to the first free song slot",
		Flags: []cli.Flag{
			savFlag(&savPath),
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "project file to import", Required: true, Destination: &projectPath},
			&cli.BoolFlag{Name: "dry-run", Usage: "report the result without writing the save", Destination: &dryRun},
			&cli.BoolFlag{Name: "backup", Usage: "keep the previous save as <sav>.bak", Destination: &backup},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyImportConfig(cmd, cfg, &backup)

			p, err := savstore.ReadProject(projectPath)
			if err != nil {
				return exitError(err)
			}
			doc, err := savstore.Load(savPath)
			if err != nil {
				return exitError(err)
			}

			song, err := doc.Container.Import(p)
			if err != nil {
				log.Warn("import failed", "name", p.Name, "error", err)
				return exitError(err)
			}
			blocks, err := doc.Container.Alloc().UsedBy(song)
			if err != nil {
				return exitError(err)
			}
			if dryRun {
				log.Info("dry run: save not written", "song", song, "blocks", blocks)
			} else {
				if err := doc.Commit(backup); err != nil {
					return exitError(err)
				}
				log.Info("song imported", "song", song, "name", p.Name, "blocks", blocks, "backup", backup)
			}
			_, _ = fmt.Fprintf(stdout(cmd), "%d\n", song)
			return nil
		},
	}
}

func deleteCmd() *cli.Command {
	var (
		savPath string
		song    int64
		backup  bool
	)

	return &cli.Command{
		Name:  "delete",
		Usage: "Free a song slot and its blocks",
		Flags: []cli.Flag{
			savFlag(&savPath),
			songFlag(&song),
			&cli.BoolFlag{Name: "backup", Usage: "keep the previous save as <sav>.bak", Destination: &backup},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyImportConfig(cmd, cfg, &backup)
			return editSave(ctx, savPath, backup, func(c *sav.Container) error {
				ok, err := c.Occupied(int(song))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("song %d is empty", song)
				}
				return c.Delete(int(song))
			}, "song deleted", "song", song)
		},
	}
}

func activateCmd() *cli.Command {
	var (
		savPath string
		song    int64
		backup  bool
	)

	return &cli.Command{
		Name:  "activate",
		Usage: "Load a song into working memory",
		Flags: []cli.Flag{
			savFlag(&savPath),
			songFlag(&song),
			&cli.BoolFlag{Name: "backup", Usage: "keep the previous save as <sav>.bak", Destination: &backup},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyImportConfig(cmd, cfg, &backup)
			return editSave(ctx, savPath, backup, func(c *sav.Container) error {
				return c.Activate(int(song))
			}, "song activated", "song", song)
		},
	}
}

// editSave loads a save, applies fn and writes the result back.
func editSave(ctx context.Context, path string, backup bool, fn func(*sav.Container) error, msg string, args ...any) error {
	doc, err := savstore.Load(path)
	if err != nil {
		return exitError(err)
	}
	if err := fn(doc.Container); err != nil {
		return exitError(err)
	}
	if err := doc.Commit(backup); err != nil {
		return exitError(err)
	}
	logger.FromContext(ctx).Info(msg, args...)
	return nil
}
