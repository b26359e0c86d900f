package vsphere

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ksyq12/certbot-deployer-vsphere/internal/deployer"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
)

// SubcommandName is the CLI subcommand this deployer registers
const SubcommandName = "vsphere"

// Flag names
const (
	FlagUser        = "user"
	FlagPassword    = "password"
	FlagHost        = "host"
	FlagTLSNoVerify = "tls-no-verify"
)

// requiredArgs may also come from the config file, so they are checked after the merge
var requiredArgs = [...]string{FlagUser, FlagHost, FlagPassword}

// version is set at build time through SetVersion
var version = "dev"

// SetVersion sets the version reported by the deployer
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

const description = `Upload a renewed certificate bundle to the vCenter "Machine SSL" certificate slot.

The leaf certificate, private key and intermediate chain of the renewed
lineage replace the certificate vCenter presents on its management endpoints.`

const epilog = `  This tool is meant to run as a Certbot deploy hook. Certbot sets
  RENEWED_LINEAGE to the live directory of the renewed certificate:

    certbot renew --deploy-hook "certbot-deployer-vsphere --host vc.example.com \
      --user administrator@vsphere.local --password ..."

  host, user and password may instead be set in the "vsphere" section of the
  config file or as CERTBOT_DEPLOYER_VSPHERE_HOST, _USER and _PASSWORD.`

// Deployer uploads certificates to vCenter
type Deployer struct{}

var _ deployer.Deployer = (*Deployer)(nil)

// New creates the vsphere deployer
func New() *Deployer {
	return &Deployer{}
}

// Subcommand returns "vsphere"
func (d *Deployer) Subcommand() string {
	return SubcommandName
}

// Version returns the plugin version
func (d *Deployer) Version() string {
	return version
}

// RequiredArgs returns user, host and password
func (d *Deployer) RequiredArgs() []string {
	out := requiredArgs
	return out[:]
}

// RegisterArgs adds the vCenter connection flags
func (d *Deployer) RegisterArgs(cmd *cobra.Command) {
	cmd.Short = "Deploy a renewed certificate to vCenter Machine SSL"
	cmd.Long = description
	cmd.Example = epilog

	flags := cmd.Flags()
	flags.StringP(FlagUser, "u", "", "vCenter user, e.g. administrator@vsphere.local")
	flags.StringP(FlagPassword, "p", "", "vCenter password")
	flags.StringP(FlagHost, "H", "", "vCenter host, host:port or https:// URL")
	flags.Bool(FlagTLSNoVerify, false, "Skip verification of the certificate vCenter currently serves")
}

// ArgparsePost fails when user, host or password is missing
func (d *Deployer) ArgparsePost(args *deployer.Args) error {
	return deployer.RequireArgs(args, d.RequiredArgs())
}

// Entrypoint uploads bundle to the host named in args
func (d *Deployer) Entrypoint(ctx context.Context, args *deployer.Args, bundle *lineage.CertificateBundle) error {
	return PutCertificate(ctx, Target{
		Host:        args.String(FlagHost),
		User:        args.String(FlagUser),
		Password:    args.String(FlagPassword),
		TLSNoVerify: args.Bool(FlagTLSNoVerify),
	}, bundle)
}
