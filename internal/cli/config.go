package cli

import (
	"fmt"

	"github.com/craftec/rpbuilder/pkg/config"
	"github.com/craftec/rpbuilder/pkg/paths"
	"github.com/spf13/cobra"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Example: MsgConfigExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprint(out, config.GenerateConfigContent())
				return err
			}

			p, err := paths.New(g.root)
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}
			cfg, err := config.LoadConfiguration(p, g.configFile)
			if err != nil {
				return err
			}

			data, err := cfg.TOML()
			if err != nil {
				return fmt.Errorf(MsgErrRenderTOML, err)
			}
			for _, f := range cfg.LoadedFiles {
				_, _ = fmt.Fprintf(out, "# loaded %s\n", f)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}
