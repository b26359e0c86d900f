package cli

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ksyq12/certbot-deployer-vsphere/internal/config"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader ConfigLoader
	Env          EnvLookup
	EnvFile      EnvFileReader
	Bundles      BundleLoader
}

// ConfigLoader handles configuration loading
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
}

// EnvLookup reads the process environment
type EnvLookup interface {
	LookupEnv(key string) (string, bool)
}

// EnvFileReader parses a dotenv file without touching the process environment
type EnvFileReader interface {
	Read(path string) (map[string]string, error)
}

// BundleLoader resolves a lineage directory into a certificate bundle
type BundleLoader interface {
	Load(dir string) (*lineage.CertificateBundle, error)
	FromEnv(lookup func(string) (string, bool)) (*lineage.CertificateBundle, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = defaultDeps()

func defaultDeps() *Dependencies {
	return &Dependencies{
		ConfigLoader: &realConfigLoader{},
		Env:          &realEnv{},
		EnvFile:      &realEnvFileReader{},
		Bundles:      &realBundleLoader{},
	}
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// ResetDeps restores the real dependencies
func ResetDeps() {
	deps = defaultDeps()
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	return config.Load(path)
}

type realEnv struct{}

func (r *realEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

type realEnvFileReader struct{}

func (r *realEnvFileReader) Read(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

type realBundleLoader struct{}

func (r *realBundleLoader) Load(dir string) (*lineage.CertificateBundle, error) {
	return lineage.Load(dir)
}

func (r *realBundleLoader) FromEnv(lookup func(string) (string, bool)) (*lineage.CertificateBundle, error) {
	return lineage.FromEnv(lookup)
}
