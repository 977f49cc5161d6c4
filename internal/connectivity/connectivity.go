package connectivity

import (
	"context"
	"net"
	"time"
)

// Checker probes network reachability by opening a TCP connection to a
// well-known address.
type Checker struct {
	Address string
	Timeout time.Duration

	dialer *net.Dialer
}

func NewChecker(address string, timeout time.Duration) *Checker {
	return &Checker{
		Address: address,
		Timeout: timeout,
		dialer:  &net.Dialer{},
	}
}

// Connected reports whether Address accepted a connection within Timeout.
func (c *Checker) Connected(ctx context.Context) bool {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	d := c.dialer
	if d == nil {
		d = &net.Dialer{}
	}
	conn, err := d.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
