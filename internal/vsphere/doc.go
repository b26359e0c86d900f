// Package vsphere deploys a renewed Certbot lineage to the vCenter
// "Machine SSL" certificate slot.
//
// Deployer plugs into the deploy-hook framework as the "vsphere" subcommand:
//
//	certbot-deployer-vsphere --host vc.example.com \
//	    --user administrator@vsphere.local --password secret
//
// PutCertificate does the upload. It opens a fresh HTTP session, logs in,
// reads cert.pem, privkey.pem and chain.pem from the bundle and sends them as
// cert, key and root_cert in one call. The session is closed afterwards; a
// failed logout is only logged.
//
// # Testing
//
// Session and client construction go through replaceable factories:
//
//	vsphere.SetClientFactory(fake)
//	defer vsphere.ResetFactories()
package vsphere
