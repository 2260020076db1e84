package main

import (
	"crypto/tls"
	"net/http"

	"github.com/certifi/gocertifi"
	raven "github.com/getsentry/raven-go"

	"github.com/ndlib/baggie/bagit"
)

// setupSentry points the default raven client at dsn. Certificates come
// from the certifi bundle so reporting works on hosts without a usable
// system root store.
func setupSentry(dsn string) error {
	certs, err := gocertifi.CACerts()
	if err != nil {
		return err
	}
	raven.DefaultClient.Transport = &raven.HTTPTransport{
		Client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{RootCAs: certs},
			},
		},
	}
	raven.SetRelease(bagit.SoftwareVersion)
	return raven.SetDSN(dsn)
}
