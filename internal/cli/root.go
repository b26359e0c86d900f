package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ksyq12/certbot-deployer-vsphere/internal/config"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/deployer"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/logger"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/output"
)

// frameworkName is the root command name shown in help and --version
const frameworkName = "certbot-deployer"

var version = "dev"

// SetVersion sets the framework version string
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// rootOptions holds the global flags of one Run
type rootOptions struct {
	configPath  string
	envFile     string
	lineageDir  string
	dryRun      bool
	jsonOutput  bool
	verbose     bool
	quiet       bool
	showVersion bool
}

// Run builds a fresh command tree for deployers and executes it with argv
func Run(deployers []deployer.Deployer, argv []string) error {
	registry, err := deployer.NewRegistry(deployers...)
	if err != nil {
		output.Error("%v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{}
	root := newRootCmd(registry, opts)
	if argv == nil {
		// cobra falls back to os.Args on nil
		argv = []string{}
	}
	root.SetArgs(argv)

	if err := root.ExecuteContext(ctx); err != nil {
		reportError(opts, err)
		return err
	}
	return nil
}

// newRootCmd creates the root command with one subcommand per deployer
func newRootCmd(registry *deployer.Registry, opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   frameworkName,
		Short: "Deploy renewed Certbot certificates to remote systems",
		Long: `certbot-deployer runs as a Certbot deploy hook and pushes the renewed
lineage named by RENEWED_LINEAGE to a target system.

Each deployer is a subcommand. Its arguments may come from the command line,
the environment (CERTBOT_DEPLOYER_<SUBCOMMAND>_<ARGUMENT>), an --env-file or
the matching section of the config file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.verbose, opts.quiet)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return printVersion(registry)
			}
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetGlobalNormalizationFunc(deployer.NormalizeFlagName)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file (default $"+config.EnvConfigPath+" or "+config.DefaultFile+")")
	pf.StringVar(&opts.envFile, "env-file", "", "dotenv file holding CERTBOT_DEPLOYER_* arguments")
	pf.StringVar(&opts.lineageDir, "lineage", "", "Lineage directory (default $RENEWED_LINEAGE)")
	pf.BoolVar(&opts.dryRun, "dry-run", false, "Resolve arguments and lineage without deploying")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "Only log errors")
	pf.BoolVar(&opts.showVersion, "version", false, "Print framework and deployer versions")

	for _, name := range registry.Names() {
		d, _ := registry.Get(name)
		root.AddCommand(newDeployCmd(d, registry, opts))
	}
	return root
}

// versionString lists the framework and every deployer version
func versionString(registry *deployer.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", frameworkName, version)
	for _, d := range registry.All() {
		fmt.Fprintf(&b, "%s %s\n", d.Subcommand(), d.Version())
	}
	return b.String()
}

func printVersion(registry *deployer.Registry) error {
	output.Print("%s", strings.TrimSuffix(versionString(registry), "\n"))
	return nil
}

// reportError prints a failed run as human output or JSON
func reportError(opts *rootOptions, err error) {
	logger.LogError(err, "deploy hook failed")
	if opts.jsonOutput {
		_ = output.JSON(newErrorResult(err))
		return
	}
	output.Error("%v", err)
}
