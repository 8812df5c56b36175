package di

import (
	"github.com/Thiagolino8/simple-svelte-query/querycache"
)

// Container provides dependency injection for query cache components.
// It validates the configuration once and hands out typed caches built from
// it, so every cache in a process shares the same staleness default, clock,
// and logger without any hidden global state.
type Container struct {
	config querycache.Config
}

// NewContainer creates a new DI container with the provided cache configuration.
func NewContainer(config querycache.Config) (*Container, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Container{config: config}, nil
}

// NewContainerWithDefaults creates a new DI container using default configuration.
// This is a convenience constructor for typical use cases where custom
// configuration is not required.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(querycache.DefaultConfig())
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() querycache.Config {
	return c.config
}

// NewQueryCache builds a typed cache from the container's configuration.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function.
// Example: NewQueryCache[User](container)
func NewQueryCache[T any](container *Container, opts ...querycache.CacheOption[T]) (*querycache.Cache[T], error) {
	return querycache.New[T](container.config, opts...)
}
