package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/craftec/rpbuilder/pkg/build"
	"github.com/craftec/rpbuilder/pkg/config"
	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/filesystem"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/craftec/rpbuilder/pkg/paths"
	"github.com/craftec/rpbuilder/pkg/ui"
	"github.com/craftec/rpbuilder/pkg/warnings"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	noInstall  bool
	installDir string
}

func newBuildCmd(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(g.format)
			if err != nil {
				return fmt.Errorf(MsgErrBadFormat, err)
			}
			console := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)

			if err := runBuild(g, opts, console); err != nil {
				console.Error(err)
				return reported{err}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.noInstall, "no-install", false, MsgFlagNoInstall)
	cmd.Flags().StringVar(&opts.installDir, "install-dir", "", MsgFlagInstall)

	return cmd
}

// reported marks an error the console has already printed
type reported struct{ error }

func (r reported) Unwrap() error { return r.error }

// IsReported tells whether err was already shown to the user
func IsReported(err error) bool {
	var r reported
	return stderrors.As(err, &r)
}

func runBuild(g *globalOptions, opts *buildOptions, console *ui.Console) error {
	logger := logging.GetLogger("cli.build")

	p, err := paths.New(g.root)
	if err != nil {
		return fmt.Errorf(MsgErrInitPaths, err)
	}

	cfg, err := config.LoadConfiguration(p, g.configFile)
	if err != nil {
		return err
	}
	if opts.noInstall {
		cfg.Install.Enabled = false
	}

	projectFS := filesystem.Project(p.ProjectRoot())

	suppressions, problems, err := config.LoadSuppressions(projectFS, cfg.Warnings.SuppressionsFile, cfg.Suppress)
	if err != nil {
		return err
	}
	reporter := warnings.NewReporter(suppressions, console)
	reporter.ReportAll(problems)

	logger.Info().
		Str("root", p.ProjectRoot()).
		Strs("configFiles", cfg.LoadedFiles).
		Msg("Starting build")

	result, err := build.Run(build.Options{
		Config:     cfg,
		FS:         projectFS,
		InstallFS:  filesystem.Host(),
		InstallDir: installDir(cfg, opts),
		Reporter:   reporter,
		Progress:   console,
	})
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrap(err, errors.ErrInternal, MsgErrBuildFailed)
		}
		return err
	}

	console.Summary(ui.Summary{
		Archive:    result.Archive,
		Entries:    result.Entries,
		Sources:    result.SourceCount,
		Merged:     result.Merged,
		MirroredTo: result.MirroredTo,
		Warnings:   reporter.Total(),
		Suppressed: reporter.SuppressedCount(),
	})
	console.Success(result.Archive)
	return nil
}

func installDir(cfg *config.Config, opts *buildOptions) string {
	switch {
	case opts.installDir != "":
		return paths.ExpandHome(opts.installDir)
	case cfg.Install.Dir != "":
		return paths.ExpandHome(cfg.Install.Dir)
	default:
		return paths.DefaultInstallDir()
	}
}
