package config

import (
	"crypto/x509"
	"fmt"
	"os"
)

// LoadTLSTrustStore reads a PEM-encoded CA bundle from path and returns a
// pool wstransport.Config.TLSTrustStore can use in place of the host's
// system pool. A Config with an empty CABundlePath has no trust store to
// load here; callers should leave TLSTrustStore nil in that case so
// crypto/tls falls back to the system roots.
func LoadTLSTrustStore(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, InnerErr: err}
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, &ValidationError{InnerErr: fmt.Errorf("%s contains no usable PEM certificates", path)}
	}
	return pool, nil
}
