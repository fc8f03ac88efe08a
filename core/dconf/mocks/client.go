package mocks

import (
	"context"

	"dconf-apply/core/dconf"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of dconf.Client
type Client struct {
	mock.Mock
}

func (m *Client) Dump(ctx context.Context) (*dconf.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*dconf.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Write(ctx context.Context, path, value string) error {
	args := m.Called(ctx, path, value)
	return args.Error(0)
}

func (m *Client) Reset(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
