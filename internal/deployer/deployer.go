package deployer

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
)

// Deployer is the interface every deployment target implements
type Deployer interface {
	// Subcommand returns the CLI subcommand name (vsphere)
	Subcommand() string

	// Version returns the deployer version
	Version() string

	// RequiredArgs returns the arguments ArgparsePost insists on.
	// Implementations return a fresh slice on every call.
	RequiredArgs() []string

	// RegisterArgs adds flags and help text to the subcommand
	RegisterArgs(cmd *cobra.Command)

	// ArgparsePost validates arguments after CLI, environment and config merge
	ArgparsePost(args *Args) error

	// Entrypoint deploys the renewed bundle
	Entrypoint(ctx context.Context, args *Args, bundle *lineage.CertificateBundle) error
}

// Registry maps subcommand names to deployers
type Registry struct {
	byName map[string]Deployer
	order  []Deployer
}

// NewRegistry builds a registry, rejecting nil, unnamed or duplicate deployers
func NewRegistry(deployers ...Deployer) (*Registry, error) {
	r := &Registry{byName: make(map[string]Deployer, len(deployers))}
	for i, d := range deployers {
		if d == nil {
			return nil, deployerrors.Validation(fmt.Sprintf("deployer %d is nil", i))
		}
		name := d.Subcommand()
		if name == "" {
			return nil, deployerrors.Validation(fmt.Sprintf("deployer %d has no subcommand", i))
		}
		if _, exists := r.byName[name]; exists {
			return nil, deployerrors.Validation(fmt.Sprintf("deployer %s registered twice", name))
		}
		r.byName[name] = d
		r.order = append(r.order, d)
	}
	return r, nil
}

// Get returns a deployer by subcommand name
func (r *Registry) Get(name string) (Deployer, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns all registered subcommands in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns deployers in registration order
func (r *Registry) All() []Deployer {
	out := make([]Deployer, len(r.order))
	copy(out, r.order)
	return out
}
