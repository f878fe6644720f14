package app

import (
	"github.com/vk/lteval/internal/registry"
	"github.com/vk/lteval/internal/renderer/mitsuba"
	"github.com/vk/lteval/internal/renderer/pbrt"
)

// coreModules is the definitive list of all renderer kinds that are
// compiled into the lteval binary.
var coreModules = []registry.Module{
	&mitsuba.Module{},
	&pbrt.Module{},
}
