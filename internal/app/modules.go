package app

import (
	"github.com/vk/chainline/internal/registry"
	"github.com/vk/chainline/modules/csv_source"
	"github.com/vk/chainline/modules/print"
	"github.com/vk/chainline/modules/select_columns"
)

// coreModules is the definitive list of all step modules that are compiled
// into the chainline binary.
var coreModules = []registry.Module{
	&csv_source.Module{},
	&select_columns.Module{},
	&print.Module{},
}
