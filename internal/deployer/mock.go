package deployer

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
)

// MockDeployer is a test double for Deployer
type MockDeployer struct {
	Name     string
	Ver      string
	Required []string

	// Function mocks - set these to customize behavior
	RegisterArgsFunc func(cmd *cobra.Command)
	ArgparsePostFunc func(args *Args) error
	EntrypointFunc   func(ctx context.Context, args *Args, bundle *lineage.CertificateBundle) error

	// Call tracking - check these to verify interactions
	RegisterArgsCalls int
	ArgparsePostCalls int
	EntrypointCalls   []EntrypointCall
}

// EntrypointCall records arguments passed to Entrypoint
type EntrypointCall struct {
	Args   *Args
	Bundle *lineage.CertificateBundle
}

// NewMockDeployer creates a MockDeployer whose only flag is --target
func NewMockDeployer(name string) *MockDeployer {
	return &MockDeployer{
		Name:     name,
		Ver:      "0.0.0-test",
		Required: []string{"target"},
	}
}

// Subcommand returns the mock's name
func (m *MockDeployer) Subcommand() string {
	return m.Name
}

// Version returns the mock's version
func (m *MockDeployer) Version() string {
	return m.Ver
}

// RequiredArgs returns a copy of Required
func (m *MockDeployer) RequiredArgs() []string {
	return append([]string(nil), m.Required...)
}

// RegisterArgs records the call and declares --target unless overridden
func (m *MockDeployer) RegisterArgs(cmd *cobra.Command) {
	m.RegisterArgsCalls++
	if m.RegisterArgsFunc != nil {
		m.RegisterArgsFunc(cmd)
		return
	}
	cmd.Short = "mock deployer"
	cmd.Flags().String("target", "", "mock target")
	cmd.Flags().Bool("insecure", false, "mock toggle")
}

// ArgparsePost records the call and requires Required unless overridden
func (m *MockDeployer) ArgparsePost(args *Args) error {
	m.ArgparsePostCalls++
	if m.ArgparsePostFunc != nil {
		return m.ArgparsePostFunc(args)
	}
	return RequireArgs(args, m.RequiredArgs())
}

// Entrypoint records the call and invokes the mock function if set
func (m *MockDeployer) Entrypoint(ctx context.Context, args *Args, bundle *lineage.CertificateBundle) error {
	m.EntrypointCalls = append(m.EntrypointCalls, EntrypointCall{Args: args, Bundle: bundle})
	if m.EntrypointFunc != nil {
		return m.EntrypointFunc(ctx, args, bundle)
	}
	return nil
}
