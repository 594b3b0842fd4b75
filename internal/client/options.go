package client

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New
type Option func(*Client) error

// WithTimeout bounds every request. The value must be greater than zero.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithHeader sets a header sent on every request
func WithHeader(key, value string) Option {
	return func(c *Client) error {
		c.http.SetHeader(key, value)
		return nil
	}
}
