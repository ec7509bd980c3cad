package client

import (
	"github.com/xxxsen/nsdav/transport"
)

type config struct {
	BaseURL         string
	DavPrefix       string
	OperationPrefix string
	Provider        transport.CredentialProvider
	Transport       transport.Transport
}

type Option func(c *config)

func WithBaseURL(u string) Option {
	return func(c *config) {
		c.BaseURL = u
	}
}

func WithDavPrefix(p string) Option {
	return func(c *config) {
		c.DavPrefix = p
	}
}

func WithOperationPrefix(p string) Option {
	return func(c *config) {
		c.OperationPrefix = p
	}
}

// WithAuth configures a fixed account, it replaces any earlier credential provider.
func WithAuth(user string, secret string) Option {
	return func(c *config) {
		c.Provider = transport.StaticCredential(user, secret)
	}
}

func WithCredentialProvider(p transport.CredentialProvider) Option {
	return func(c *config) {
		c.Provider = p
	}
}

func WithTransport(t transport.Transport) Option {
	return func(c *config) {
		c.Transport = t
	}
}

type callConfig struct {
	cred      *transport.Credential
	transport transport.Transport
}

// CallOption overrides the client configuration for a single call.
type CallOption func(c *callConfig)

func WithCredential(user string, secret string) CallOption {
	return func(c *callConfig) {
		c.cred = &transport.Credential{Username: user, Password: secret}
	}
}

func UseTransport(t transport.Transport) CallOption {
	return func(c *callConfig) {
		c.transport = t
	}
}
