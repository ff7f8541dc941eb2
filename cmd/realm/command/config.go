package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Listen  ListenConfig  `json:"listen"`
	Nats    NatsConfig    `json:"nats"`
	Storage StorageConfig `json:"storage"`
	World   WorldConfig   `json:"world"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Listen.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Storage.validate())
	el.Add(c.World.validate())

	return el.Err()
}
