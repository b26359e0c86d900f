package lineage

import (
	"fmt"
	"os"
	"path/filepath"

	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
)

// EnvRenewedLineage is set by Certbot when it runs deploy hooks
const EnvRenewedLineage = "RENEWED_LINEAGE"

// Component labels
const (
	Cert          = "cert"
	Key           = "key"
	Intermediates = "intermediates"
)

// Certbot live directory file names
const (
	CertFilename          = "cert.pem"
	KeyFilename           = "privkey.pem"
	LegacyKeyFilename     = "key.pem"
	IntermediatesFilename = "chain.pem"
)

// CertificateComponent is one PEM file of a lineage
type CertificateComponent struct {
	Label    string
	Filename string
	Path     string
	Contents string
}

// CertificateBundle is the set of files Certbot just renewed for one lineage.
// It is built once by Load and only read afterwards.
type CertificateBundle struct {
	Path          string
	Name          string
	Cert          *CertificateComponent
	Key           *CertificateComponent
	Intermediates *CertificateComponent
}

// Components returns the bundle components in deployment order
func (b *CertificateBundle) Components() []*CertificateComponent {
	return []*CertificateComponent{b.Cert, b.Key, b.Intermediates}
}

// Load reads the lineage directory at dir
func Load(dir string) (*CertificateBundle, error) {
	if dir == "" {
		return nil, deployerrors.Validation("lineage directory cannot be empty")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, deployerrors.Wrap(deployerrors.ErrCodeIO, "failed to resolve lineage path", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, deployerrors.LineageMissing(fmt.Sprintf("lineage %s not accessible", abs), err)
	}
	if !info.IsDir() {
		return nil, deployerrors.Validation(fmt.Sprintf("lineage %s is not a directory", abs))
	}

	cert, err := readComponent(abs, Cert, CertFilename)
	if err != nil {
		return nil, err
	}
	key, err := readComponent(abs, Key, KeyFilename, LegacyKeyFilename)
	if err != nil {
		return nil, err
	}
	chain, err := readComponent(abs, Intermediates, IntermediatesFilename)
	if err != nil {
		return nil, err
	}

	return &CertificateBundle{
		Path:          abs,
		Name:          filepath.Base(abs),
		Cert:          cert,
		Key:           key,
		Intermediates: chain,
	}, nil
}

// FromEnv loads the lineage named by RENEWED_LINEAGE
func FromEnv(lookup func(string) (string, bool)) (*CertificateBundle, error) {
	dir, ok := lookup(EnvRenewedLineage)
	if !ok || dir == "" {
		return nil, deployerrors.LineageMissing(
			fmt.Sprintf("environment variable %s is not set; this tool expects to run as a Certbot deploy hook", EnvRenewedLineage),
			nil,
		)
	}
	return Load(dir)
}

// readComponent reads the first of filenames present in dir.
// Certbot's live/ entries are symlinks into archive/; os.ReadFile follows them.
func readComponent(dir, label string, filenames ...string) (*CertificateComponent, error) {
	var lastErr error
	for _, name := range filenames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, deployerrors.Wrap(deployerrors.ErrCodeIO, fmt.Sprintf("failed to read %s file %s", label, path), err)
		}
		return &CertificateComponent{
			Label:    label,
			Filename: name,
			Path:     path,
			Contents: string(data),
		}, nil
	}
	return nil, deployerrors.Wrap(deployerrors.ErrCodeIO, fmt.Sprintf("%s file not found in lineage %s", label, dir), lastErr)
}
