package deployer

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
)

func TestNewRegistry(t *testing.T) {
	t.Run("lookup by subcommand", func(t *testing.T) {
		a, b := NewMockDeployer("vsphere"), NewMockDeployer("bigip")
		reg, err := NewRegistry(a, b)
		if err != nil {
			t.Fatalf("NewRegistry failed: %v", err)
		}

		got, ok := reg.Get("vsphere")
		if !ok || got != a {
			t.Errorf("Get(vsphere) = %v, %v", got, ok)
		}
		if _, ok := reg.Get("unknown"); ok {
			t.Error("Get(unknown) should fail")
		}

		names := reg.Names()
		if len(names) != 2 || names[0] != "bigip" || names[1] != "vsphere" {
			t.Errorf("Names() = %v", names)
		}

		all := reg.All()
		if len(all) != 2 || all[0] != a || all[1] != b {
			t.Errorf("All() should keep registration order: %v", all)
		}
	})

	tests := []struct {
		name      string
		deployers []Deployer
	}{
		{"nil deployer", []Deployer{nil}},
		{"empty subcommand", []Deployer{NewMockDeployer("")}},
		{"duplicate subcommand", []Deployer{NewMockDeployer("vsphere"), NewMockDeployer("vsphere")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.deployers...)
			if deployerrors.CodeOf(err) != deployerrors.ErrCodeValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

// parsedArgs registers the mock's flags and parses argv
func parsedArgs(t *testing.T, argv ...string) *Args {
	t.Helper()
	cmd := &cobra.Command{Use: "mock"}
	cmd.SetGlobalNormalizationFunc(NormalizeFlagName)
	NewMockDeployer("mock").RegisterArgs(cmd)
	if err := cmd.ParseFlags(argv); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	return NewArgs(cmd.Flags())
}

func TestArgs(t *testing.T) {
	t.Run("defaults are not present", func(t *testing.T) {
		args := parsedArgs(t)
		if args.Has("target") {
			t.Error("unset flag should not be present")
		}
		if args.Has("insecure") {
			t.Error("defaulted bool should not be present")
		}
		if !args.Defined("target") {
			t.Error("target should be defined")
		}
		if args.Defined("nope") {
			t.Error("nope should not be defined")
		}
	})

	t.Run("command line values", func(t *testing.T) {
		args := parsedArgs(t, "--target", "vc.example.com", "--insecure")
		if !args.Has("target") || args.String("target") != "vc.example.com" {
			t.Errorf("target = %q", args.String("target"))
		}
		if !args.Bool("insecure") {
			t.Error("insecure should be true")
		}
	})

	t.Run("underscore and hyphen equivalent", func(t *testing.T) {
		cmd := &cobra.Command{Use: "x"}
		cmd.SetGlobalNormalizationFunc(NormalizeFlagName)
		cmd.Flags().Bool("tls-no-verify", false, "")
		args := NewArgs(cmd.Flags())

		if err := args.Set("tls_no_verify", "true"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if !args.Has("tls-no-verify") || !args.Bool("tls_no_verify") {
			t.Error("tls_no_verify and tls-no-verify should name the same flag")
		}
	})

	t.Run("set marks present", func(t *testing.T) {
		args := parsedArgs(t)
		if err := args.Set("target", "from-config"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if !args.Has("target") || args.String("target") != "from-config" {
			t.Errorf("target = %q, present = %v", args.String("target"), args.Has("target"))
		}
	})

	t.Run("set unknown fails", func(t *testing.T) {
		args := parsedArgs(t)
		if err := args.Set("bogus", "x"); err == nil {
			t.Error("expected error for unknown argument")
		}
	})

	t.Run("set invalid bool fails", func(t *testing.T) {
		args := parsedArgs(t)
		if err := args.Set("insecure", "maybe"); err == nil {
			t.Error("expected error for invalid bool")
		}
	})

	t.Run("visit walks declared flags", func(t *testing.T) {
		args := parsedArgs(t, "--target", "vc")
		var names []string
		args.Visit(func(f *pflag.Flag) {
			if f.Name != "help" {
				names = append(names, f.Name)
			}
		})
		if strings.Join(names, ",") != "insecure,target" {
			t.Errorf("visited %v", names)
		}
	})

	t.Run("undefined accessors", func(t *testing.T) {
		args := parsedArgs(t)
		if args.String("nope") != "" || args.Bool("nope") {
			t.Error("undefined flags should read as zero values")
		}
	})
}

func TestRequireArgs(t *testing.T) {
	args := parsedArgs(t, "--target", "x")
	if err := RequireArgs(args, []string{"target"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := RequireArgs(parsedArgs(t), []string{"target"})
	if !deployerrors.Is(err, deployerrors.ErrArgumentRequired) {
		t.Errorf("expected argument required error, got %v", err)
	}
}

func TestMockDeployer(t *testing.T) {
	m := NewMockDeployer("mock")
	req := m.RequiredArgs()
	req[0] = "mutated"
	if m.RequiredArgs()[0] != "target" {
		t.Error("RequiredArgs should return a copy")
	}
}
