package client

import "context"

type ClientRepository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	List(ctx context.Context, search string, limit, offset int) ([]*Client, int64, error)
}

type ApplianceRepository interface {
	Create(ctx context.Context, a *Appliance) error
	GetByID(ctx context.Context, id uint) (*Appliance, error)
	ListByClientID(ctx context.Context, clientID uint) ([]*Appliance, error)
}
