package controller

import (
	"context"

	"github.com/ougirez/wanderwise/internal/domain/reference"
	"github.com/ougirez/wanderwise/internal/service/catalog"
	"github.com/ougirez/wanderwise/internal/service/trip"
)

// ReloadFunc перечитывает каталог; true - версия сменилась.
type ReloadFunc func(ctx context.Context) (bool, error)

type Controller struct {
	holder *catalog.Holder
	engine *trip.Engine
	tables *reference.Tables
	reload ReloadFunc
}

func NewController(holder *catalog.Holder, engine *trip.Engine, tables *reference.Tables, reload ReloadFunc) *Controller {
	return &Controller{
		holder: holder,
		engine: engine,
		tables: tables,
		reload: reload,
	}
}
