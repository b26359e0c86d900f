package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ksyq12/certbot-deployer-vsphere/internal/config"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/deployer"
	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/logger"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/output"
)

// envPrefix starts every environment variable that carries a deployer argument
const envPrefix = "CERTBOT_DEPLOYER_"

// Argument sources, in order of precedence
const (
	sourceCLI     = "command-line"
	sourceEnv     = "environment"
	sourceEnvFile = "env-file"
	sourceConfig  = "config"
)

// newDeployCmd creates the subcommand for one deployer
func newDeployCmd(d deployer.Deployer, registry *deployer.Registry, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:  d.Subcommand(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return printVersion(registry)
			}
			return runDeploy(cmd.Context(), cmd, d, opts)
		},
	}
	d.RegisterArgs(cmd)
	return cmd
}

// EnvVarName returns the environment variable that may carry flag for subcommand
func EnvVarName(subcommand, flag string) string {
	name := strings.ToUpper(subcommand + "_" + flag)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return envPrefix + name
}

// runDeploy merges arguments, resolves the lineage and runs the deployer
func runDeploy(ctx context.Context, cmd *cobra.Command, d deployer.Deployer, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	applyMainSettings(cmd, cfg, opts)

	args := deployer.NewArgs(deployerFlags(cmd))
	sources, err := mergeArgs(d.Subcommand(), args, cfg, opts)
	if err != nil {
		return err
	}

	if err := d.ArgparsePost(args); err != nil {
		return err
	}

	bundle, err := resolveBundle(opts)
	if err != nil {
		return err
	}

	result := newDeployResult(d, bundle, opts.dryRun)
	result.Arguments = describeArgs(args, sources)

	if opts.dryRun {
		logger.InfoFields("Dry run, skipping deployment", logger.Fields{
			"deployer": d.Subcommand(),
			"lineage":  bundle.Path,
		})
		return outputResult(opts, result, func() {
			output.Info("Dry run: %s would deploy lineage %s", d.Subcommand(), bundle.Name)
			printBundle(bundle)
			printArguments(result.Arguments)
		})
	}

	logger.InfoFields("Running deployer", logger.Fields{
		"deployer": d.Subcommand(),
		"version":  d.Version(),
		"lineage":  bundle.Path,
	})
	if err := d.Entrypoint(ctx, args, bundle); err != nil {
		return err
	}

	return outputResult(opts, result, func() {
		output.Success("Deployed lineage %s with %s", bundle.Name, d.Subcommand())
	})
}

// loadConfig reads --config, $CERTBOT_DEPLOYER_CONFIG or the default file.
// Only an explicitly named file must exist.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	explicit := cmd.Flags().Changed("config")
	if !explicit {
		path = config.DefaultPath(deps.Env.LookupEnv)
		_, explicit = deps.Env.LookupEnv(config.EnvConfigPath)
	}

	cfg, err := deps.ConfigLoader.Load(path)
	if err != nil {
		return nil, err
	}
	if explicit && cfg.Path() == "" {
		return nil, deployerrors.Wrap(deployerrors.ErrCodeConfig, fmt.Sprintf("config file %s not found", path), nil)
	}
	if cfg.Path() != "" {
		logger.Debug("Loaded config %s", cfg.Path())
	}
	return cfg, nil
}

// applyMainSettings fills global toggles the command line left unset
func applyMainSettings(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) {
	flags := cmd.Flags()
	if !flags.Changed("verbose") && cfg.Main.Verbose {
		opts.verbose = true
	}
	if !flags.Changed("quiet") && cfg.Main.Quiet {
		opts.quiet = true
	}
	if !flags.Changed("json") && cfg.Main.JSON {
		opts.jsonOutput = true
	}
	logger.Init(opts.verbose, opts.quiet)
}

// mergeArgs assigns deployer flags the command line did not set, taking each
// from the environment, the env-file or the config section, first match wins.
// It returns where every present flag came from.
func mergeArgs(subcommand string, args *deployer.Args, cfg *config.Config, opts *rootOptions) (map[string]string, error) {
	section, err := cfg.Section(subcommand)
	if err != nil {
		return nil, err
	}
	fromConfig := make(map[string]string, len(section))
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fromConfig[normalize(key)] = section[key]
	}

	var fromEnvFile map[string]string
	if opts.envFile != "" {
		fromEnvFile, err = deps.EnvFile.Read(opts.envFile)
		if err != nil {
			return nil, deployerrors.Wrap(deployerrors.ErrCodeConfig, fmt.Sprintf("failed to read env-file %s", opts.envFile), err)
		}
	}

	sources := make(map[string]string)
	known := make(map[string]bool)
	var mergeErr error

	args.Visit(func(f *pflag.Flag) {
		if mergeErr != nil {
			return
		}
		known[f.Name] = true
		if f.Changed {
			sources[f.Name] = sourceCLI
			return
		}

		value, source, ok := lookupArg(subcommand, f.Name, fromEnvFile, fromConfig)
		if !ok {
			return
		}
		if err := args.Set(f.Name, value); err != nil {
			mergeErr = deployerrors.Wrap(deployerrors.ErrCodeConfig, fmt.Sprintf("invalid value for %s from %s", f.Name, source), err)
			return
		}
		sources[f.Name] = source
		logger.DebugFields("Merged argument", logger.Fields{
			"argument": f.Name,
			"source":   source,
		})
	})
	if mergeErr != nil {
		return nil, mergeErr
	}

	for _, key := range keys {
		if !known[normalize(key)] {
			logger.WarnFields("Ignoring unknown config key", logger.Fields{
				"section": subcommand,
				"name":    key,
			})
		}
	}
	return sources, nil
}

// lookupArg finds a value for flag outside the command line
func lookupArg(subcommand, flag string, fromEnvFile, fromConfig map[string]string) (value, source string, ok bool) {
	envName := EnvVarName(subcommand, flag)
	if v, ok := deps.Env.LookupEnv(envName); ok {
		return v, sourceEnv, true
	}
	if v, ok := fromEnvFile[envName]; ok {
		return v, sourceEnvFile, true
	}
	if v, ok := fromConfig[flag]; ok {
		return v, sourceConfig, true
	}
	return "", "", false
}

// deployerFlags returns the flags a deployer registered on cmd. The flags are
// shared with cmd, so values set through the returned set are seen by both.
func deployerFlags(cmd *cobra.Command) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name != "help" {
			fs.AddFlag(f)
		}
	})
	return fs
}

func normalize(name string) string {
	return string(deployer.NormalizeFlagName(nil, name))
}

// resolveBundle loads --lineage, falling back to RENEWED_LINEAGE
func resolveBundle(opts *rootOptions) (*lineage.CertificateBundle, error) {
	if opts.lineageDir != "" {
		return deps.Bundles.Load(opts.lineageDir)
	}
	return deps.Bundles.FromEnv(deps.Env.LookupEnv)
}

// describeArgs lists present deployer arguments with secrets masked
func describeArgs(args *deployer.Args, sources map[string]string) []ArgumentInfo {
	var out []ArgumentInfo
	args.Visit(func(f *pflag.Flag) {
		if !args.Has(f.Name) {
			return
		}
		value := args.String(f.Name)
		if logger.IsSecret(f.Name) {
			value = "***"
		}
		out = append(out, ArgumentInfo{
			Name:   f.Name,
			Value:  value,
			Source: sources[f.Name],
		})
	})
	return out
}

func printBundle(bundle *lineage.CertificateBundle) {
	for _, c := range bundle.Components() {
		output.Field(c.Label, c.Path)
	}
}

func printArguments(arguments []ArgumentInfo) {
	for _, a := range arguments {
		output.Field(a.Name, fmt.Sprintf("%s (%s)", a.Value, a.Source))
	}
}
