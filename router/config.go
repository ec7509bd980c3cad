package router

type config struct {
	davPrefix string
	opPrefix  string
}

type Option func(c *config)

func WithDavPrefix(p string) Option {
	return func(c *config) {
		c.davPrefix = p
	}
}

func WithOperationPrefix(p string) Option {
	return func(c *config) {
		c.opPrefix = p
	}
}
