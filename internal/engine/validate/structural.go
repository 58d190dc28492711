package validate

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

// kind is the registry value recorded per id: what sort of entity owns it.
type kind string

const (
	kindLocation kind = "location"
	kindItem     kind = "item"
	kindDoorItem kind = "door_item"
	kindLock     kind = "lock"
	kindActor    kind = "npc"
	kindPart     kind = "part"
)

// Structural runs every structural validator from §4.3 against w and
// returns an aggregated error, or nil if the world is sound. loadedModules,
// when non-nil, additionally checks that every behaviors reference names a
// loaded module (check 10).
//
// The id registry (check 1) is built first since every other check depends
// on it; the remaining nine checks only read w and the registry, so they
// run concurrently via errgroup and their offence lists are merged in a
// fixed order for deterministic output.
func Structural(w *state.World, loadedModules map[string]struct{}) error {
	var agg Errors

	registry := make(map[ids.EntityID]kind)
	agg.Merge(buildIDRegistry(w, registry))

	checks := []func() []string{
		func() []string { return validateExitReferences(w, registry) },
		func() []string { return validateItemLocations(w, registry) },
		func() []string { return validateLockReferences(w, registry) },
		func() []string { return validateContainerLockReferences(w, registry) },
		func() []string { return validateMetadata(w, registry) },
		func() []string { return validatePlayerState(w, registry) },
		func() []string { return validateContainmentCycles(w) },
		func() []string { return validateActorNames(w) },
		func() []string { return validateParts(w, registry) },
	}
	results := make([][]string, len(checks))

	var g errgroup.Group
	for i, check := range checks {
		i, check := i, check
		g.Go(func() error {
			results[i] = check()
			return nil
		})
	}
	_ = g.Wait() // checks never themselves error; offences are reported via results

	for _, r := range results {
		agg.Merge(r)
	}

	if loadedModules != nil {
		agg.Merge(validateBehaviorReferences(w, loadedModules))
	}

	return agg.AsError()
}

func buildIDRegistry(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	registry[ids.EntityID(ids.Player)] = kindActor

	add := func(id ids.EntityID, k kind) {
		if id == ids.EntityID(ids.Player) {
			errs = append(errs, fmt.Sprintf("id 'player' is reserved, cannot use for %s", k))
			return
		}
		if existing, dup := registry[id]; dup {
			errs = append(errs, fmt.Sprintf("duplicate id '%s' (used by %s and %s)", id, existing, k))
			return
		}
		registry[id] = k
	}

	for i := range w.Locations {
		add(w.Locations[i].ID, kindLocation)
	}
	for i := range w.Items {
		item := &w.Items[i]
		if item.IsDoor() {
			add(item.ID, kindDoorItem)
		} else {
			add(item.ID, kindItem)
		}
	}
	for i := range w.Locks {
		add(w.Locks[i].ID, kindLock)
	}
	for _, actorID := range w.ActorOrder {
		if actorID == ids.Player {
			continue
		}
		add(ids.EntityID(actorID), kindActor)
	}
	for i := range w.Parts {
		add(w.Parts[i].ID, kindPart)
	}
	return errs
}

func validateExitReferences(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	for i := range w.Locations {
		loc := &w.Locations[i]
		directions := sortedExitDirections(loc.Exits)
		for _, direction := range directions {
			exit := loc.Exits[direction]
			if exit.To != "" {
				if k, ok := registry[exit.To]; !ok {
					errs = append(errs, fmt.Sprintf("exit '%s' in '%s' references nonexistent location '%s'", direction, loc.ID, exit.To))
				} else if k != kindLocation {
					errs = append(errs, fmt.Sprintf("exit '%s' in '%s' references '%s' which is a %s, not a location", direction, loc.ID, exit.To, k))
				}
			}
			if exit.Type == "door" {
				if exit.DoorID == "" {
					errs = append(errs, fmt.Sprintf("exit '%s' in '%s' is type 'door' but missing door_id", direction, loc.ID))
				} else if k, ok := registry[exit.DoorID]; !ok {
					errs = append(errs, fmt.Sprintf("exit '%s' in '%s' references nonexistent door '%s'", direction, loc.ID, exit.DoorID))
				} else if k != kindDoorItem && k != kindItem {
					errs = append(errs, fmt.Sprintf("exit '%s' in '%s' references '%s' which is a %s, not a door", direction, loc.ID, exit.DoorID, k))
				}
			}
		}
	}
	for i := range w.Exits {
		exit := &w.Exits[i]
		if _, ok := registry[exit.Location]; !ok {
			errs = append(errs, fmt.Sprintf("exit '%s' has nonexistent location '%s'", exit.ID, exit.Location))
		}
		if exit.DoorID != "" {
			if k, ok := registry[exit.DoorID]; !ok {
				errs = append(errs, fmt.Sprintf("exit '%s' references nonexistent door '%s'", exit.ID, exit.DoorID))
			} else if k != kindDoorItem && k != kindItem {
				errs = append(errs, fmt.Sprintf("exit '%s' references '%s' which is a %s, not a door", exit.ID, exit.DoorID, k))
			}
		}
	}
	return errs
}

func sortedExitDirections(exits map[string]state.ExitDescriptor) []string {
	out := make([]string, 0, len(exits))
	for d := range exits {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// validLocationContainers is the set of entity kinds an item may be
// located in directly (i.e. not via the "exit:" virtual-location form).
var validLocationContainers = map[kind]struct{}{
	kindLocation: {}, kindItem: {}, kindDoorItem: {}, kindActor: {},
}

func validateItemLocations(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	for i := range w.Items {
		item := &w.Items[i]
		loc := item.Location
		if loc == "" || ids.IsRemovalSentinel(loc) {
			continue
		}
		if loc == ids.EntityID(ids.Player) {
			continue
		}
		if ids.IsVirtualExitLocation(loc) {
			if !item.IsDoor() {
				errs = append(errs, fmt.Sprintf("item '%s' uses exit location '%s' but is not a door item", item.ID, loc))
				continue
			}
			locID, direction, ok := ids.ParseVirtualExitLocation(loc)
			if !ok {
				errs = append(errs, fmt.Sprintf("door item '%s' has malformed exit location '%s' (expected format: exit:location_id:direction)", item.ID, loc))
				continue
			}
			_ = direction
			if k, ok := registry[locID]; !ok {
				errs = append(errs, fmt.Sprintf("door item '%s' references nonexistent location '%s' in exit location '%s'", item.ID, locID, loc))
			} else if k != kindLocation {
				errs = append(errs, fmt.Sprintf("door item '%s' exit location references '%s' which is a %s, not a location", item.ID, locID, k))
			}
			continue
		}
		if k, ok := registry[loc]; !ok {
			errs = append(errs, fmt.Sprintf("item '%s' has invalid location '%s' (entity does not exist)", item.ID, loc))
		} else if _, valid := validLocationContainers[k]; !valid {
			errs = append(errs, fmt.Sprintf("item '%s' has invalid location '%s' (cannot be placed in a %s)", item.ID, loc, k))
		}
	}
	return errs
}

func validateLockReferences(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	for i := range w.Locks {
		lock := &w.Locks[i]
		for _, keyID := range lock.OpensWith() {
			if k, ok := registry[keyID]; !ok {
				errs = append(errs, fmt.Sprintf("lock '%s' opens_with references nonexistent item '%s'", lock.ID, keyID))
			} else if k != kindItem && k != kindDoorItem {
				errs = append(errs, fmt.Sprintf("lock '%s' opens_with references '%s' which is a %s, not an item", lock.ID, keyID, k))
			}
		}
	}
	lockIDs := make(map[ids.EntityID]struct{}, len(w.Locks))
	for i := range w.Locks {
		lockIDs[w.Locks[i].ID] = struct{}{}
	}
	for i := range w.Items {
		item := &w.Items[i]
		if !item.IsDoor() {
			continue
		}
		if lockID := item.DoorLockID(); lockID != "" {
			if _, ok := lockIDs[lockID]; !ok {
				errs = append(errs, fmt.Sprintf("door '%s' references nonexistent lock '%s'", item.ID, lockID))
			}
		}
	}
	return errs
}

func validateContainerLockReferences(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	lockIDs := make(map[ids.EntityID]struct{}, len(w.Locks))
	for i := range w.Locks {
		lockIDs[w.Locks[i].ID] = struct{}{}
	}
	for i := range w.Items {
		item := &w.Items[i]
		container, ok := item.Container()
		if !ok || container.LockID == "" {
			continue
		}
		if _, ok := lockIDs[container.LockID]; !ok {
			errs = append(errs, fmt.Sprintf("container '%s' references nonexistent lock '%s'", item.ID, container.LockID))
		}
	}
	return errs
}

func validateMetadata(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	start := w.Metadata.StartLocation
	if start == "" {
		return errs
	}
	if k, ok := registry[start]; !ok {
		errs = append(errs, fmt.Sprintf("metadata start_location '%s' does not exist", start))
	} else if k != kindLocation {
		errs = append(errs, fmt.Sprintf("metadata start_location '%s' is a %s, not a location", start, k))
	}
	return errs
}

func validatePlayerState(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	player, ok := w.Actors[ids.Player]
	if !ok || player == nil {
		return errs
	}
	if player.Location != "" {
		if k, ok := registry[player.Location]; !ok {
			errs = append(errs, fmt.Sprintf("player location '%s' does not exist", player.Location))
		} else if k != kindLocation {
			errs = append(errs, fmt.Sprintf("player location '%s' is a %s, not a location", player.Location, k))
		}
	}
	for _, itemID := range player.Inventory {
		if k, ok := registry[itemID]; !ok {
			errs = append(errs, fmt.Sprintf("player inventory contains nonexistent item '%s'", itemID))
		} else if k != kindItem && k != kindDoorItem {
			errs = append(errs, fmt.Sprintf("player inventory contains '%s' which is a %s, not an item", itemID, k))
		}
	}
	return errs
}

func validateContainmentCycles(w *state.World) []string {
	var errs []string
	itemByID := make(map[ids.EntityID]*state.Item, len(w.Items))
	for i := range w.Items {
		itemByID[w.Items[i].ID] = &w.Items[i]
	}

	for i := range w.Items {
		item := &w.Items[i]
		if _, isItem := itemByID[item.Location]; !isItem {
			continue
		}
		visited := map[ids.EntityID]struct{}{}
		current := item.ID
		cyclic := false
		for {
			if _, seen := visited[current]; seen {
				cyclic = true
				break
			}
			visited[current] = struct{}{}
			next, isItem := itemByID[current]
			if !isItem {
				break
			}
			container, containerIsItem := itemByID[next.Location]
			if !containerIsItem {
				break
			}
			current = container.ID
		}
		if cyclic {
			errs = append(errs, fmt.Sprintf("containment cycle detected involving '%s'", item.ID))
		}
	}
	return errs
}

func validateActorNames(w *state.World) []string {
	var errs []string
	for _, actorID := range w.ActorOrder {
		actor := w.Actors[actorID]
		if actor == nil || actor.Name == "" {
			continue
		}
		if ids.IsReservedActorName(actor.Name) {
			errs = append(errs, fmt.Sprintf("actor '%s' has prohibited name '%s'", actorID, actor.Name))
		}
	}
	return errs
}

func validateParts(w *state.World, registry map[ids.EntityID]kind) []string {
	var errs []string
	for i := range w.Parts {
		part := &w.Parts[i]
		if part.ID == "" {
			errs = append(errs, "part has empty id")
		}
		if part.Name == "" {
			errs = append(errs, fmt.Sprintf("part %s has empty name", part.ID))
		}
		if part.PartOf == "" {
			errs = append(errs, fmt.Sprintf("part %s missing required part_of field", part.ID))
			continue
		}
		if k, ok := registry[part.PartOf]; !ok {
			errs = append(errs, fmt.Sprintf("part %s references non-existent parent %s", part.ID, part.PartOf))
		} else if k == kindPart {
			errs = append(errs, fmt.Sprintf("part %s cannot have another part as parent (nested parts are not supported)", part.ID))
		}
	}
	return errs
}

func validateBehaviorReferences(w *state.World, loaded map[string]struct{}) []string {
	var errs []string
	check := func(entityID ids.EntityID, entityType string, behaviors []string) {
		for _, module := range behaviors {
			if _, ok := loaded[module]; !ok {
				errs = append(errs, fmt.Sprintf("%s '%s' references unknown behavior module '%s'", entityType, entityID, module))
			}
		}
	}
	for i := range w.Items {
		check(w.Items[i].ID, "Item", w.Items[i].Behaviors)
	}
	for _, actorID := range w.ActorOrder {
		if actor := w.Actors[actorID]; actor != nil {
			check(ids.EntityID(actorID), "Actor", actor.Behaviors)
		}
	}
	for i := range w.Locations {
		check(w.Locations[i].ID, "Location", w.Locations[i].Behaviors)
	}
	for i := range w.Parts {
		check(w.Parts[i].ID, "Part", w.Parts[i].Behaviors)
	}
	return errs
}
