package app

import (
	"github.com/weaveflow/flowc/internal/compiler"
	"github.com/weaveflow/flowc/modules/browser"
	"github.com/weaveflow/flowc/modules/control"
	"github.com/weaveflow/flowc/modules/data"
	"github.com/weaveflow/flowc/modules/timing"
)

// coreModules is the default generator catalog every App registers.
// Tests pass their own module list to isolate behavior.
var coreModules = []compiler.Module{
	browser.Module{},
	control.Module{},
	data.Module{},
	timing.Module{},
}
