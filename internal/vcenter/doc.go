// Package vcenter is a minimal client for the vCenter Automation REST API.
//
// Only the calls needed to replace the Machine SSL certificate are covered:
//
//	POST   /api/session                                     basic auth, returns token
//	PUT    /api/vcenter/certificate-management/vcenter/tls  {cert, key, root_cert}
//	DELETE /api/session
//
// Every Login builds its own session state on the *http.Client it is given;
// nothing is cached between calls. Use NewHTTPClient for a client with a
// dedicated transport, optionally skipping TLS verification for endpoints that
// still serve a self-signed certificate.
//
// Errors are *errors.DeployError values coded AUTH, CONNECTION or API, wrapping
// an *APIError when vCenter answered with a non-2xx status.
package vcenter
