// Package plugin wires the vsphere deployer into the deploy-hook framework.
package plugin

import (
	"github.com/ksyq12/certbot-deployer-vsphere/internal/cli"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/deployer"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/vsphere"
)

// frameworkMain is the framework entry point (can be replaced for testing)
var frameworkMain = cli.Run

// Main runs the framework with argv addressed to the vsphere subcommand
func Main(argv []string) error {
	full := make([]string, 0, len(argv)+1)
	full = append(full, vsphere.SubcommandName)
	full = append(full, argv...)
	return frameworkMain([]deployer.Deployer{vsphere.New()}, full)
}
