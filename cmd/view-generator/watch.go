package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"view-generator/internal/config"
	"view-generator/internal/errors"
	"view-generator/internal/logger"
	"view-generator/internal/tables"
)

const debounce = 200 * time.Millisecond

// watchedExts are the extensions of files that feed generation.
var watchedExts = map[string]bool{
	".go":         true,
	".yaml":       true,
	".yml":        true,
	".toml":       true,
	".asset":      true,
	".controller": true,

	tables.ShaderGraphExt: true,
}

// watchSources calls regenerate after sources stop changing, until ctx is
// done.
func watchSources(ctx context.Context, cfg *config.Config, regenerate func(context.Context)) error {
	log := logger.Named("watch")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer w.Close()

	dirs, err := watchDirs(cfg)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
	}

	generated, err := generatedFiles(cfg)
	if err != nil {
		return err
	}

	log.Infow("watching for changes", "dirs", len(dirs))

	fire := make(chan struct{}, 1)
	timer := time.AfterFunc(time.Hour, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if cfg.Source.Kind != config.SourceSchema {
				for _, dir := range newDirs(ev) {
					if err := w.Add(dir); err != nil {
						log.Warnw("watch error", "dir", dir, "error", err)
						continue
					}

					log.Debugw("watching new directory", "dir", dir)
				}
			}

			if !relevant(ev, generated) {
				continue
			}

			log.Debugw("source changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.Warnw("watch error", "error", err)

		case <-fire:
			regenerate(ctx)
		}
	}
}

// generatedFiles lists the absolute paths the generators write, including
// the sidecars kept for output that fails to format.
func generatedFiles(cfg *config.Config) (map[string]bool, error) {
	outDir, err := filepath.Abs(cfg.Output.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "resolving output directory")
	}

	files := make(map[string]bool)

	for _, name := range []string{cfg.Output.Filename, cfg.Tables.Filename} {
		if name == "" {
			continue
		}

		files[filepath.Join(outDir, name)] = true
		files[filepath.Join(outDir, strings.TrimSuffix(name, ".go")+".unformatted.go")] = true
	}

	return files, nil
}

// newDirs returns the directories a Create event brings under the source
// tree: the created directory and every directory below it.
func newDirs(ev fsnotify.Event) []string {
	if !ev.Has(fsnotify.Create) || skipDir(filepath.Base(ev.Name)) {
		return nil
	}

	if info, err := os.Stat(ev.Name); err != nil || !info.IsDir() {
		return nil
	}

	var dirs []string

	_ = filepath.WalkDir(ev.Name, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}

		if path != ev.Name && skipDir(d.Name()) {
			return filepath.SkipDir
		}

		dirs = append(dirs, path)

		return nil
	})

	return dirs
}

// relevant reports whether ev touches a source file that is not one of the
// generated files.
func relevant(ev fsnotify.Event, generated map[string]bool) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	if !watchedExts[filepath.Ext(ev.Name)] {
		return false
	}

	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}

	return !generated[abs]
}

// watchDirs lists the directories holding sources: every package directory
// under source.dir for Go sources, the directories of the declaration
// files for schema sources, plus the directories of table sources.
func watchDirs(cfg *config.Config) ([]string, error) {
	var dirs []string

	switch cfg.Source.Kind {
	case config.SourceSchema:
		names, err := schemaFiles(cfg.Source.Dir, cfg.Source.Schemas)
		if err != nil {
			return nil, err
		}

		for _, n := range names {
			dirs = append(dirs, filepath.Dir(n))
		}
	default:
		root := cfg.Source.Dir
		if root == "" {
			root = "."
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() {
				return nil
			}

			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}

			dirs = append(dirs, path)

			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", root)
		}
	}

	if cfg.Tables.ProjectDir != "" {
		dirs = append(dirs, filepath.Dir(filepath.Join(cfg.Tables.ProjectDir, tables.TagManagerFile)))
	}

	for _, a := range cfg.Tables.Animators {
		dirs = append(dirs, filepath.Dir(a.Path))
	}

	for _, m := range cfg.Tables.Materials {
		dirs = append(dirs, filepath.Dir(m.Path))
	}

	for i, d := range dirs {
		dirs[i] = filepath.Clean(d)
	}

	slices.Sort(dirs)

	return slices.Compact(dirs), nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "vendor" || name == "testdata" || name == "node_modules"
}
