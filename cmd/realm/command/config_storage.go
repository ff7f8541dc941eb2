package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/storage"
	"github.com/pixil98/go-realm/internal/world"
)

type StorageConfig struct {
	Buildings AssetConfig[*world.BuildingSpec] `json:"buildings"`
	Monsters  AssetConfig[*world.MonsterSpec]  `json:"monsters"`
	Items     AssetConfig[*world.ItemSpec]     `json:"items"`
}

// BuildDefinitions loads the world layout assets. They are read once at
// process start; runtime state never flows back to disk.
func (c *StorageConfig) BuildDefinitions() (*world.Definitions, error) {
	buildings, err := c.Buildings.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating building store: %w", err)
	}
	monsters, err := c.Monsters.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating monster store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	return &world.Definitions{
		Buildings: buildings,
		Monsters:  monsters,
		Items:     items,
	}, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Buildings.Validate("buildings"))
	el.Add(c.Monsters.Validate("monsters"))
	el.Add(c.Items.Validate("items"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
