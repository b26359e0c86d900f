// Package config loads the deploy hook configuration file.
//
// Certbot invokes deploy hooks with a fixed command line, so credentials for
// the target system usually live in a configuration file rather than in the
// hook invocation. The file is YAML with one optional "main" section for
// framework settings and one section per deployer subcommand, keyed by the
// subcommand's flag names.
//
// Example /etc/certbot/certbot_deployer.yaml:
//
//	main:
//	  verbose: true
//	vsphere:
//	  host: vcenter.example.com
//	  user: administrator@vsphere.local
//	  password: s3cret
//	  tls_no_verify: false
//
// Underscores and hyphens in keys are equivalent. Values from the file only
// fill flags that were not given on the command line or via the environment.
//
// # Location
//
// The file is read from --config, then $CERTBOT_DEPLOYER_CONFIG, then
// /etc/certbot/certbot_deployer.yaml. Load treats a missing file as empty; the
// CLI only insists on a file that was named explicitly.
package config
