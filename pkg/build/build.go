// Package build runs one resource pack build from configuration to archive.
//
// The order is fixed: the previous archive is removed, the staging directory
// is recreated, then main files, third-party bundles, font bundles and the
// base asset tree are ingested in that order. Merged files are flushed, the
// staging tree is optionally mirrored into the game installation, and the
// archive is written. The staging directory is removed on every exit path.
package build

import (
	"fmt"

	"github.com/craftec/rpbuilder/pkg/config"
	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/filesystem"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/craftec/rpbuilder/pkg/merge"
	"github.com/craftec/rpbuilder/pkg/packager"
	"github.com/craftec/rpbuilder/pkg/paths"
	"github.com/craftec/rpbuilder/pkg/source"
	"github.com/craftec/rpbuilder/pkg/warnings"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Reporter receives every non-fatal condition of the build
type Reporter interface {
	Report(kind warnings.Kind, identifier string, detail ...string)
}

// Progress receives one line per build step
type Progress interface {
	Step(message string)
}

// Options configures a build
type Options struct {
	Config *config.Config

	// FS is rooted at the project directory. Every configured path is
	// resolved against it.
	FS afero.Fs

	// InstallFS and InstallDir locate the game installation. The mirror
	// step runs only when InstallDir is a directory on InstallFS.
	InstallFS  afero.Fs
	InstallDir string

	Reporter Reporter
	Progress Progress
}

// Result describes a finished build
type Result struct {
	Archive     string
	Entries     int
	Files       []string
	MirroredTo  string
	Merged      []string
	StagingDir  string
	SourceCount int
}

type builder struct {
	opts   Options
	cfg    *config.Config
	merger *merge.Merger
	logger zerolog.Logger
}

// Run performs the build. Fatal conditions are returned as *errors.BuildError;
// everything else goes to opts.Reporter.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil || opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "build needs a configuration and a project filesystem")
	}
	if opts.Reporter == nil {
		opts.Reporter = warnings.NewReporter(warnings.Suppressions{}, nil)
	}

	b := &builder{
		opts:   opts,
		cfg:    opts.Config,
		logger: logging.GetLogger("build"),
	}
	defer logging.LogOperationStart(b.logger, "build")()

	if err := packager.RemoveArchive(opts.FS, b.cfg.Pack.Archive); err != nil {
		return nil, err
	}

	stagingDir := b.cfg.Staging.Dir
	if err := filesystem.Recreate(opts.FS, stagingDir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStagingCreate, "failed to create staging directory %s", stagingDir)
	}
	defer b.cleanup(stagingDir)

	staging := filesystem.Sub(opts.FS, stagingDir)
	layout := merge.Layout{
		LangDir:            b.cfg.Merge.LangDir,
		ExcludedExtensions: b.cfg.Merge.ModelExtensions,
	}
	b.merger = merge.NewMerger(layout, merge.NewState(), staging, opts.Reporter)

	sources := b.sources()
	for _, s := range sources {
		b.step(s.message)
		if err := b.ingest(s.source); err != nil {
			return nil, err
		}
	}

	if err := b.merger.Flush(); err != nil {
		return nil, err
	}

	files, err := packager.ListFiles(staging)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Archive:     b.cfg.Pack.Archive,
		Files:       files,
		Merged:      b.merger.State().Destinations(),
		StagingDir:  stagingDir,
		SourceCount: len(sources),
	}

	if dir, ok := b.installTarget(); ok {
		b.step(fmt.Sprintf(MsgMirroring, opts.InstallDir))
		if err := packager.Mirror(staging, files, opts.InstallFS, dir); err != nil {
			return nil, err
		}
		result.MirroredTo = dir
	}

	b.step(MsgZipping)
	entries, err := packager.WriteArchive(staging, files, opts.FS, b.cfg.Pack.Archive, opts.Reporter)
	if err != nil {
		return nil, err
	}
	result.Entries = entries

	b.logger.Info().
		Str("archive", result.Archive).
		Int("entries", entries).
		Int("merged", len(result.Merged)).
		Msg("Build finished")
	return result, nil
}

type input struct {
	message string
	source  source.Source
}

// sources lists the inputs in ingestion order
func (b *builder) sources() []input {
	cfg := b.cfg
	steps := []input{{
		message: MsgCopyingMainFiles,
		source:  source.NewFileSource(b.opts.FS, "main files", cfg.Sources.MainFiles),
	}}

	for _, bundle := range cfg.OrderedBundles() {
		filter := &source.Filter{
			Source:  source.NewArchiveSource(b.opts.FS, bundle.Archive),
			Include: bundle.Include,
			Rename:  bundle.Rename,
		}
		if bundle.SkipMainFiles {
			filter.Exclude = cfg.Sources.MainFiles
		}
		steps = append(steps, input{
			message: fmt.Sprintf(MsgCopyingBundle, bundle.DisplayName()),
			source:  filter,
		})
	}

	return append(steps, input{
		message: MsgCopyingAssets,
		source:  source.NewDirSource(b.opts.FS, cfg.Sources.AssetsDir),
	})
}

// ingest feeds one source into the merger. Missing inputs are reported and
// the build goes on; staging write failures abort it.
func (b *builder) ingest(src source.Source) error {
	var ingestErr error
	err := src.Walk(func(relPath string, data []byte) error {
		ingestErr = b.merger.Ingest(relPath, data)
		return ingestErr
	})
	if ingestErr != nil {
		return ingestErr
	}
	if missing := source.MissingPaths(err); missing != nil {
		for _, p := range missing {
			b.opts.Reporter.Report(warnings.MissingSource, p)
		}
		return nil
	}
	return err
}

func (b *builder) installTarget() (string, bool) {
	if !b.cfg.Install.Enabled || b.opts.InstallDir == "" || b.opts.InstallFS == nil {
		return "", false
	}
	if !filesystem.IsDir(b.opts.InstallFS, b.opts.InstallDir) {
		b.logger.Debug().Str("dir", b.opts.InstallDir).Msg("Installation directory not found, skipping mirror")
		return "", false
	}
	return paths.ResourcePackDir(b.opts.InstallDir, b.cfg.Pack.Name), true
}

func (b *builder) cleanup(stagingDir string) {
	if err := b.opts.FS.RemoveAll(stagingDir); err != nil {
		b.opts.Reporter.Report(warnings.DeleteFailure, stagingDir, err.Error())
		return
	}
	b.logger.Debug().Str("dir", stagingDir).Msg("Staging directory removed")
}

func (b *builder) step(message string) {
	b.logger.Info().Msg(message)
	if b.opts.Progress != nil {
		b.opts.Progress.Step(message)
	}
}
