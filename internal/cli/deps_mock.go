package cli

import (
	"github.com/ksyq12/certbot-deployer-vsphere/internal/config"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg     *config.Config
	LoadErr error
	Paths   []string
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	m.Paths = append(m.Paths, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

// MockEnv is a test double for EnvLookup backed by a map
type MockEnv struct {
	Vars map[string]string
}

func (m *MockEnv) LookupEnv(key string) (string, bool) {
	v, ok := m.Vars[key]
	return v, ok
}

// MockEnvFileReader is a test double for EnvFileReader
type MockEnvFileReader struct {
	Values map[string]string
	Err    error
	Paths  []string
}

func (m *MockEnvFileReader) Read(path string) (map[string]string, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Values, nil
}

// MockBundleLoader is a test double for BundleLoader
type MockBundleLoader struct {
	Bundle       *lineage.CertificateBundle
	Err          error
	LoadDirs     []string
	FromEnvCalls int
}

func (m *MockBundleLoader) Load(dir string) (*lineage.CertificateBundle, error) {
	m.LoadDirs = append(m.LoadDirs, dir)
	return m.bundle()
}

func (m *MockBundleLoader) FromEnv(_ func(string) (string, bool)) (*lineage.CertificateBundle, error) {
	m.FromEnvCalls++
	return m.bundle()
}

func (m *MockBundleLoader) bundle() (*lineage.CertificateBundle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bundle != nil {
		return m.Bundle, nil
	}
	// Return a default bundle if none provided
	return mockBundle("/etc/letsencrypt/live/vc.example.com"), nil
}

// mockBundle builds an in-memory bundle rooted at dir
func mockBundle(dir string) *lineage.CertificateBundle {
	component := func(label, filename string) *lineage.CertificateComponent {
		return &lineage.CertificateComponent{
			Label:    label,
			Filename: filename,
			Path:     dir + "/" + filename,
			Contents: "-----BEGIN " + label + "-----\n",
		}
	}
	return &lineage.CertificateBundle{
		Path:          dir,
		Name:          "vc.example.com",
		Cert:          component(lineage.Cert, lineage.CertFilename),
		Key:           component(lineage.Key, lineage.KeyFilename),
		Intermediates: component(lineage.Intermediates, lineage.IntermediatesFilename),
	}
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader: &MockConfigLoader{Cfg: config.New()},
			Env:          &MockEnv{Vars: map[string]string{}},
			EnvFile:      &MockEnvFileReader{},
			Bundles:      &MockBundleLoader{},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithEnv sets the process environment seen by the CLI
func (b *MockDependenciesBuilder) WithEnv(vars map[string]string) *MockDependenciesBuilder {
	b.deps.Env = &MockEnv{Vars: vars}
	return b
}

// WithEnvFile sets the values returned for any --env-file
func (b *MockDependenciesBuilder) WithEnvFile(reader EnvFileReader) *MockDependenciesBuilder {
	b.deps.EnvFile = reader
	return b
}

// WithBundles sets a custom bundle loader
func (b *MockDependenciesBuilder) WithBundles(loader BundleLoader) *MockDependenciesBuilder {
	b.deps.Bundles = loader
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
