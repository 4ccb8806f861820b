package http

import (
	"net/http"
)

type Options struct {
	Address string
	Mounts  map[string]http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address: ":3000",
		Mounts:  map[string]http.Handler{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithMount(mountpoint string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[mountpoint] = handler
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}
