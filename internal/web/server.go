package web

import "context"

type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

// NoopServer stands in when the control API is disabled.
type NoopServer struct{}

func (NoopServer) Start(ctx context.Context) error { return nil }
func (NoopServer) Stop() error                     { return nil }
