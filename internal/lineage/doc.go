// Package lineage resolves a Certbot renewed lineage into a certificate bundle.
//
// Certbot keeps the current files for each managed certificate in
// /etc/letsencrypt/live/{name}/, as symlinks into archive/. When it runs a
// deploy hook it exports RENEWED_LINEAGE pointing at that directory.
//
// # Files
//
//	cert.pem     leaf certificate         (Cert)
//	privkey.pem  private key              (Key, key.pem accepted as fallback)
//	chain.pem    intermediate certificates (Intermediates)
//
// fullchain.pem is not used; targets that want the chain separately get it
// from chain.pem.
//
// # Usage
//
//	bundle, err := lineage.FromEnv(os.LookupEnv)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(bundle.Cert.Path) // /etc/letsencrypt/live/example.com/cert.pem
//
// The package does not parse or validate PEM content.
package lineage
