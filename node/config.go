/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package node

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/kvnode/errors"
	"github.com/nabbar/kvnode/node/transport"
)

// Config describes one endpoint's pool. Validate checks, and New stores,
// a copy in which zero values of RemoteAddress, RemotePort,
// MinConnections and IdleTimeout are replaced by DefaultConfig's
// defaults.
type Config struct {
	// RemoteAddress is the host this node connects to.
	RemoteAddress string `mapstructure:"remote_address" json:"remote_address" yaml:"remote_address" validate:"required,hostname|ip"`

	// RemotePort is the TCP port this node connects to.
	RemotePort int `mapstructure:"remote_port" json:"remote_port" yaml:"remote_port" validate:"required,min=1,max=65535"`

	// MinConnections is the number of connections opened eagerly at
	// start and kept warm by the reaper.
	MinConnections int `mapstructure:"min_connections" json:"min_connections" yaml:"min_connections" validate:"min=0"`

	// MaxConnections caps concurrent connections. Zero means unbounded.
	MaxConnections int `mapstructure:"max_connections" json:"max_connections" yaml:"max_connections" validate:"min=0"`

	// IdleTimeout is how long a connection may sit idle before the
	// reaper closes it, once the pool is above MinConnections.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout"`

	// ConnectionTimeout bounds dialing a new connection. Zero means no
	// timeout.
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" json:"connection_timeout" yaml:"connection_timeout"`

	// BlockOnMaxConnections, when true, makes Execute wait for a permit
	// instead of failing fast once MaxConnections is saturated.
	BlockOnMaxConnections bool `mapstructure:"block_on_max_connections" json:"block_on_max_connections" yaml:"block_on_max_connections"`

	// Dialer opens new connections. Required.
	Dialer transport.Dialer `validate:"required"`
}

// DefaultConfig returns the option defaults used when a Config field is
// left at its zero value.
func DefaultConfig() Config {
	return Config{
		RemoteAddress:         "127.0.0.1",
		RemotePort:            8087,
		MinConnections:        1,
		MaxConnections:        0,
		IdleTimeout:           time.Second,
		ConnectionTimeout:     0,
		BlockOnMaxConnections: false,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig without
// touching fields the caller explicitly set.
func (c Config) withDefaults() Config {
	d := DefaultConfig()

	if c.RemoteAddress == "" {
		c.RemoteAddress = d.RemoteAddress
	}
	if c.RemotePort == 0 {
		c.RemotePort = d.RemotePort
	}
	if c.MinConnections == 0 {
		c.MinConnections = d.MinConnections
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}

	return c
}

// Validate checks the configuration, filling defaults first. It reports
// every struct-tag violation, not just the first; the min/max cross-field
// check runs only once every tag constraint passes.
func (c Config) Validate() liberr.Error {
	cfg := c.withDefaults()

	val := validator.New()
	err := val.Struct(cfg)

	if err == nil {
		if cfg.MaxConnections > 0 && cfg.MinConnections > cfg.MaxConnections {
			return liberr.New(liberr.NodeValidationFailed.Uint16(), "min_connections cannot exceed max_connections")
		}
		return nil
	}

	if _, ok := err.(*validator.InvalidValidationError); ok {
		return liberr.New(liberr.NodeValidationFailed.Uint16(), "invalid configuration", err)
	}

	out := liberr.New(liberr.NodeValidationFailed.Uint16(), "node configuration failed validation")

	for _, e := range err.(validator.ValidationErrors) {
		out.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.Field(), e.ActualTag()))
	}

	return out
}
