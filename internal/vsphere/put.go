package vsphere

import (
	"context"
	"fmt"
	"net/http"
	"os"

	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/lineage"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/logger"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/vcenter"
)

// Target is the vCenter endpoint and the credentials used against it
type Target struct {
	Host        string
	User        string
	Password    string
	TLSNoVerify bool
}

// CertificateClient is the part of an authenticated vCenter session PutCertificate needs
type CertificateClient interface {
	SetTLS(ctx context.Context, spec vcenter.TLSSpec) error
	Logout(ctx context.Context) error
}

// SessionFactory builds the HTTP session for one upload
type SessionFactory func(tlsNoVerify bool) *http.Client

// ClientFactory authenticates against server over session
type ClientFactory func(ctx context.Context, server, username, password string, session *http.Client) (CertificateClient, error)

// newSession and createClient can be replaced for testing
var (
	newSession   SessionFactory = vcenter.NewHTTPClient
	createClient ClientFactory  = login
)

// SetSessionFactory allows tests to observe session construction
func SetSessionFactory(f SessionFactory) {
	newSession = f
}

// SetClientFactory allows tests to inject a fake vCenter client
func SetClientFactory(f ClientFactory) {
	createClient = f
}

// ResetFactories restores the real session and client factories
func ResetFactories() {
	newSession = vcenter.NewHTTPClient
	createClient = login
}

func login(ctx context.Context, server, username, password string, session *http.Client) (CertificateClient, error) {
	c, err := vcenter.Login(ctx, server, username, password, session)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PutCertificate replaces the Machine SSL certificate of target with bundle.
// It opens one session, logs in once and issues a single replacement call.
func PutCertificate(ctx context.Context, target Target, bundle *lineage.CertificateBundle) error {
	if bundle == nil || bundle.Cert == nil || bundle.Key == nil || bundle.Intermediates == nil {
		return deployerrors.Validation("certificate bundle is incomplete")
	}

	session := newSession(target.TLSNoVerify)
	if target.TLSNoVerify {
		logger.WarnFields("TLS verification disabled", logger.Fields{"host": target.Host})
	}

	client, err := createClient(ctx, target.Host, target.User, target.Password, session)
	if err != nil {
		return err
	}
	defer logout(ctx, client, target.Host)

	cert, err := readComponent(bundle.Cert)
	if err != nil {
		return err
	}
	key, err := readComponent(bundle.Key)
	if err != nil {
		return err
	}
	chain, err := readComponent(bundle.Intermediates)
	if err != nil {
		return err
	}

	logger.InfoFields("Replacing Machine SSL certificate", logger.Fields{
		"host":    target.Host,
		"lineage": bundle.Name,
		"cert":    bundle.Cert.Path,
		"chain":   bundle.Intermediates.Path,
	})

	if err := client.SetTLS(ctx, vcenter.TLSSpec{
		Cert:     cert,
		Key:      key,
		RootCert: chain,
	}); err != nil {
		return err
	}

	logger.Info("Machine SSL certificate replaced on %s", target.Host)
	return nil
}

// readComponent reads a component from disk at upload time
func readComponent(c *lineage.CertificateComponent) (string, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", deployerrors.Wrap(deployerrors.ErrCodeIO, fmt.Sprintf("failed to read %s file %s", c.Label, c.Path), err)
	}
	return string(data), nil
}

// logout never fails the deployment
func logout(ctx context.Context, client CertificateClient, host string) {
	if err := client.Logout(ctx); err != nil {
		logger.WarnFields("Failed to close vCenter session", logger.Fields{
			"host":  host,
			"error": err.Error(),
		})
	}
}
