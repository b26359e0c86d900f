package cli

import (
	"github.com/ksyq12/certbot-deployer-vsphere/internal/deployer"
	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/output"
)

// Actions reported in CommandResult
const (
	actionDeploy = "deploy"
	actionDryRun = "dry-run"
)

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// DeployResult is the JSON output of a deployer subcommand
type DeployResult struct {
	CommandResult
	Deployer  string         `json:"deployer"`
	Version   string         `json:"version"`
	Lineage   string         `json:"lineage"`
	Files     []FileInfo     `json:"files"`
	Arguments []ArgumentInfo `json:"arguments,omitempty"`
}

// FileInfo is one certificate component of the lineage
type FileInfo struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// ArgumentInfo is one merged deployer argument
type ArgumentInfo struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDeployResult creates a success result for bundle
func newDeployResult(d deployer.Deployer, bundle *lineage.CertificateBundle, dryRun bool) DeployResult {
	action := actionDeploy
	if dryRun {
		action = actionDryRun
	}

	files := make([]FileInfo, 0, 3)
	for _, c := range bundle.Components() {
		files = append(files, FileInfo{Label: c.Label, Path: c.Path})
	}

	return DeployResult{
		CommandResult: CommandResult{
			Success: true,
			Action:  action,
		},
		Deployer: d.Subcommand(),
		Version:  d.Version(),
		Lineage:  bundle.Path,
		Files:    files,
	}
}

// newErrorResult creates a failure result carrying the error code
func newErrorResult(err error) CommandResult {
	return CommandResult{
		Success: false,
		Message: err.Error(),
		Code:    string(deployerrors.CodeOf(err)),
	}
}

// outputResult handles JSON or human-readable output
func outputResult(opts *rootOptions, data interface{}, human func()) error {
	if opts.jsonOutput {
		return output.JSON(data)
	}
	human()
	return nil
}
