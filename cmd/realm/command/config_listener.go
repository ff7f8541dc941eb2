package command

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/listener"
	"github.com/pixil98/go-realm/internal/session"
	"github.com/pixil98/go-realm/internal/world"
)

const defaultPort = 3001

type ListenConfig struct {
	// Port to serve on. When zero, the PORT environment variable is
	// consulted, then defaultPort.
	Port uint16 `json:"port"`

	// ClientDir is the directory holding the static browser bundle.
	// Optional; when empty no static files are served.
	ClientDir string `json:"client_dir,omitempty"`
}

func (c *ListenConfig) validate() error {
	el := errors.NewErrorList()

	if c.ClientDir != "" {
		info, err := os.Stat(c.ClientDir)
		if err != nil {
			el.Add(fmt.Errorf("client_dir: %w", err))
		} else if !info.IsDir() {
			el.Add(fmt.Errorf("client_dir: %q is not a directory", c.ClientDir))
		}
	}

	return el.Err()
}

func (c *ListenConfig) port() uint16 {
	if c.Port != 0 {
		return c.Port
	}
	if env := os.Getenv("PORT"); env != "" {
		if p, err := strconv.ParseUint(env, 10, 16); err == nil && p != 0 {
			return uint16(p)
		}
	}
	return defaultPort
}

func (c *ListenConfig) BuildListener(sm *session.Manager, hub *world.Hub) *listener.HTTPListener {
	return listener.NewHTTPListener(c.port(), c.ClientDir, sm, hub)
}
