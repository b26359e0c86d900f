package deployer

import (
	"strings"

	"github.com/spf13/pflag"

	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
)

// Args is the parsed argument namespace of one deployer subcommand.
// A value is present only when it came from the command line, the
// environment or the config file; flag defaults do not count.
type Args struct {
	flags *pflag.FlagSet
}

// NewArgs wraps a parsed flag set
func NewArgs(fs *pflag.FlagSet) *Args {
	return &Args{flags: fs}
}

// NormalizeFlagName lets tls_no_verify and tls-no-verify name the same flag
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func (a *Args) lookup(name string) *pflag.Flag {
	return a.flags.Lookup(string(NormalizeFlagName(a.flags, name)))
}

// Has reports whether name was supplied
func (a *Args) Has(name string) bool {
	f := a.lookup(name)
	return f != nil && f.Changed
}

// Defined reports whether the subcommand declares a flag called name
func (a *Args) Defined(name string) bool {
	return a.lookup(name) != nil
}

// String returns the value of a string flag, or "" when undefined
func (a *Args) String(name string) string {
	f := a.lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// Bool returns the value of a bool flag, or false when undefined
func (a *Args) Bool(name string) bool {
	f := a.lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() == "true"
}

// Set assigns a value and marks it present
func (a *Args) Set(name, value string) error {
	if a.lookup(name) == nil {
		return deployerrors.Validation("unknown argument `" + name + "`")
	}
	return a.flags.Set(string(NormalizeFlagName(a.flags, name)), value)
}

// Visit calls fn for every declared flag
func (a *Args) Visit(fn func(f *pflag.Flag)) {
	a.flags.VisitAll(fn)
}

// RequireArgs fails on the first name in names that is not present
func RequireArgs(args *Args, names []string) error {
	for _, name := range names {
		if !args.Has(name) {
			return deployerrors.ArgumentRequired(name)
		}
	}
	return nil
}
