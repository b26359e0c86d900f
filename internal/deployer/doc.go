// Package deployer defines the contract between the deploy-hook framework and
// the targets it can push certificates to.
//
// Each target implements Deployer and becomes one subcommand of the
// certbot-deployer CLI. The framework (package cli) drives a deployer through
// three steps:
//
//  1. RegisterArgs: declare flags and help text on the subcommand
//  2. ArgparsePost: validate arguments once CLI, environment and config file
//     values have been merged
//  3. Entrypoint: push the renewed certificate bundle
//
// # Registration
//
// Deployers are collected into a Registry keyed by subcommand:
//
//	reg, err := deployer.NewRegistry(vsphere.New())
//	d, ok := reg.Get("vsphere")
//
// # Arguments
//
// Required arguments cannot be marked required at parse time because they may
// come from the config file instead. Args therefore tracks presence, and
// RequireArgs reports the first one missing:
//
//	func (d *Deployer) ArgparsePost(args *deployer.Args) error {
//	    return deployer.RequireArgs(args, d.RequiredArgs())
//	}
//
// # Testing
//
// MockDeployer records every call and can be given hook functions to fail
// specific steps.
package deployer
