// Package enginebuild wires one world file into a running
// protocol.Handler: it loads the world, runs structural validation,
// assembles the bundled core behavior modules, finalises the registry,
// and builds the turn-phase scheduler. Both cmd/ifengine and cmd/ifplay
// call this instead of repeating the wiring.
package enginebuild

import (
	"fmt"
	"os"

	"github.com/sbenjam1n/ifengine/internal/behaviors/core/crafting"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/examine"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/lock"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/look"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/meta"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/movement"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/openclose"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/positioning"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/put"
	"github.com/sbenjam1n/ifengine/internal/behaviors/core/takedrop"
	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/dispatch"
	"github.com/sbenjam1n/ifengine/internal/engine/protocol"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/engine/validate"
)

// ResolverCacheSize is the bounded resolver cache capacity handed to
// resolve.New. A world has at most a few thousand nameable things per
// turn's reachable set, so this comfortably covers a session.
const ResolverCacheSize = 4096

// SaveFunc and LoadFunc let the host supply its own persistence behind the
// "save"/"load" meta verbs without the core or this package knowing how a
// world is actually stored (file, object store, ...).
type SaveFunc func() (string, error)
type LoadFunc func() error

// Engine bundles everything one running world needs: the world itself (so
// a host can re-save it), the accessor, registry, and the ready protocol
// handler.
type Engine struct {
	World   *state.World
	Acc     *accessor.Accessor
	Reg     *registry.Registry
	Handler *protocol.Handler
}

// LoadWorldFile reads and decodes a world-file JSON document from path.
func LoadWorldFile(path string) (*state.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("enginebuild: read world file: %w", err)
	}
	world, err := state.LoadWorld(data)
	if err != nil {
		return nil, fmt.Errorf("enginebuild: load world: %w", err)
	}
	return world, nil
}

// Build assembles a complete Engine for world: bundled core modules are
// registered, the result is structurally and hook validated, and the
// turn-phase scheduler is computed once, ready for repeated
// HandleMessage calls.
func Build(world *state.World, save SaveFunc, load LoadFunc) (*Engine, error) {
	resolver := resolve.New(ResolverCacheSize)
	modules := coreModules(resolver, save, load)

	loadedModules := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		loadedModules[m.Path] = struct{}{}
	}
	if err := validate.Structural(world, loadedModules); err != nil {
		return nil, fmt.Errorf("enginebuild: structural validation: %w", err)
	}

	reg, err := registry.Load(modules, entityBehaviors(world))
	if err != nil {
		return nil, fmt.Errorf("enginebuild: registry: %w", err)
	}

	acc := accessor.New(world, reg)

	sched, err := dispatch.NewScheduler(reg, world.Metadata.ExtraTurnPhases)
	if err != nil {
		return nil, fmt.Errorf("enginebuild: scheduler: %w", err)
	}

	handler := protocol.New(acc, reg, resolver, sched)

	return &Engine{World: world, Acc: acc, Reg: reg, Handler: handler}, nil
}

// coreModules lists every bundled core.* behavior module, in the order
// registry.Load expects modules to be supplied (core tier, sorted by
// path).
func coreModules(resolver *resolve.Resolver, save SaveFunc, load LoadFunc) []registry.ModuleDef {
	return []registry.ModuleDef{
		crafting.NewModule(resolver),
		examine.NewModule(resolver),
		lock.NewModule(resolver),
		look.NewModule(resolver),
		meta.NewModule(save, load),
		movement.NewModule(),
		openclose.NewModule(resolver),
		positioning.NewModule(resolver),
		put.NewModule(resolver),
		takedrop.NewModule(resolver),
	}
}

// entityBehaviors flattens every location/item/actor/part's behaviors
// list into the id -> module-path map validate.Hooks needs for check 4
// (turn-phase hooks never attached to an entity).
func entityBehaviors(world *state.World) map[string][]string {
	out := make(map[string][]string)
	for i := range world.Locations {
		l := &world.Locations[i]
		if len(l.Behaviors) > 0 {
			out[string(l.ID)] = l.Behaviors
		}
	}
	for i := range world.Items {
		it := &world.Items[i]
		if len(it.Behaviors) > 0 {
			out[string(it.ID)] = it.Behaviors
		}
	}
	for _, id := range world.ActorOrder {
		a := world.Actors[id]
		if a != nil && len(a.Behaviors) > 0 {
			out[string(id)] = a.Behaviors
		}
	}
	for i := range world.Parts {
		p := &world.Parts[i]
		if len(p.Behaviors) > 0 {
			out[string(p.ID)] = p.Behaviors
		}
	}
	return out
}
