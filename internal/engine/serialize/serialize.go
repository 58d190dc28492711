// Package serialize implements the entity-to-JSON conversion used by every
// LLM-facing reply: type detection, door/light flags, llm_context trait
// randomisation, perspective-variant selection, and spatial relation
// (§4.8).
package serialize

import (
	"math/rand"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

// PlayerContext carries the viewpoint actor's posture/focus, used to pick
// a perspective variant and compute spatial_relation (§4.8).
type PlayerContext struct {
	Posture   string
	FocusedOn ids.EntityID
}

// Options controls optional fields EntityToDict adds.
type Options struct {
	MaxTraits     *int
	PlayerContext *PlayerContext
}

// EntityToDict converts any world entity into the JSON-object shape the
// protocol handler sends to the LLM-facing client (§4.8).
func EntityToDict(acc *accessor.Accessor, entity any, opts Options) map[string]any {
	result := map[string]any{}

	id, name, description, kind, props := coreFields(entity)
	if id != "" {
		result["id"] = string(id)
	}
	if name != "" {
		result["name"] = name
	}
	if description != "" {
		result["description"] = description
	}
	if kind != "" {
		result["type"] = kind
	}

	if item, ok := entity.(*state.Item); ok {
		if item.IsDoor() {
			result["open"] = item.DoorOpen()
			result["locked"] = item.DoorLocked()
		}
	}
	if exit, ok := entity.(*state.Exit); ok && len(exit.Connects) > 0 {
		result["destination"] = string(exit.Connects[0])
	}

	if lit, ok := litFlag(props); ok {
		result["lit"] = lit
	}
	if providesLight, _ := props["provides_light"].(bool); providesLight {
		result["provides_light"] = true
	}

	addLLMContext(result, props, opts)

	if id != "" {
		if containerID, ok := acc.GetEntityWhere(id); ok {
			if containerItem, err := acc.GetItem(containerID); err == nil {
				if c, isContainer := containerItem.Container(); isContainer {
					if c.IsSurface {
						result["on_surface"] = string(containerID)
					} else {
						result["in_container"] = string(containerID)
					}
				}
			}
		}
	}

	if opts.PlayerContext != nil && opts.PlayerContext.Posture != "" {
		if relation := spatialRelation(acc, id, opts.PlayerContext); relation != "" {
			result["spatial_relation"] = relation
		}
	}

	return result
}

func coreFields(entity any) (id ids.EntityID, name, description, kind string, props state.Properties) {
	switch e := entity.(type) {
	case *state.Item:
		kind = "item"
		if _, isContainer := e.Container(); isContainer {
			kind = "container"
		}
		if e.IsDoor() {
			kind = "door"
		}
		return e.ID, e.Name, e.Description, kind, e.Properties
	case *state.Actor:
		return ids.EntityID(e.ID), e.Name, e.Description, "actor", e.Properties
	case *state.Location:
		return e.ID, e.Name, e.Description, "location", e.Properties
	case *state.Lock:
		return e.ID, e.Name, e.Description, "lock", e.Properties
	case *state.Part:
		return e.ID, e.Name, "", "part", e.Properties
	case *state.Exit:
		return e.ID, e.Name, "", "exit", e.Properties
	default:
		return "", "", "", "", nil
	}
}

func litFlag(props state.Properties) (bool, bool) {
	states, ok := props["states"].(map[string]any)
	if !ok {
		return false, false
	}
	lit, ok := states["lit"].(bool)
	if !ok || !lit {
		return false, false
	}
	return true, true
}

// addLLMContext copies the entity's llm_context (never mutating the
// source), shuffles its traits list, truncates to MaxTraits if set,
// selects a perspective_note, and drops perspective_variants from the
// emitted object so the client only ever sees the chosen note (§4.8).
func addLLMContext(result map[string]any, props state.Properties, opts Options) {
	raw, ok := props["llm_context"].(map[string]any)
	if !ok {
		return
	}
	context := make(map[string]any, len(raw))
	for k, v := range raw {
		context[k] = v
	}

	if traits, ok := context["traits"].([]any); ok {
		shuffled := make([]any, len(traits))
		copy(shuffled, traits)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if opts.MaxTraits != nil && *opts.MaxTraits < len(shuffled) {
			shuffled = shuffled[:*opts.MaxTraits]
		}
		context["traits"] = shuffled
	}

	if note := selectPerspectiveVariant(context, opts.PlayerContext); note != "" {
		result["perspective_note"] = note
	}
	delete(context, "perspective_variants")

	result["llm_context"] = context
}

// selectPerspectiveVariant implements the three-tier lookup (§4.8):
// "<posture>:<focused_on>", then "<posture>", then "default".
func selectPerspectiveVariant(context map[string]any, player *PlayerContext) string {
	variants, ok := context["perspective_variants"].(map[string]any)
	if !ok {
		return ""
	}
	if player == nil {
		s, _ := variants["default"].(string)
		return s
	}
	if player.Posture != "" && player.FocusedOn != "" {
		key := player.Posture + ":" + string(player.FocusedOn)
		if s, ok := variants[key].(string); ok {
			return s
		}
	}
	if player.Posture != "" {
		if s, ok := variants[player.Posture].(string); ok {
			return s
		}
	}
	s, _ := variants["default"].(string)
	return s
}

// spatialRelation computes the player-relative position for an entity
// with id (§4.8 "Adds a spatial_relation..."). Entities with no id (bare
// legacy ExitDescriptor maps) produce no relation.
func spatialRelation(acc *accessor.Accessor, id ids.EntityID, player *PlayerContext) string {
	if id == "" {
		return ""
	}
	if id == player.FocusedOn {
		return "within_reach"
	}
	containerID, ok := acc.GetEntityWhere(id)
	if ok && containerID == player.FocusedOn {
		return "within_reach"
	}
	if ok && (player.Posture == "on_surface" || player.Posture == "climbing") {
		if _, err := acc.GetLocation(containerID); err == nil {
			return "below"
		}
	}
	return "nearby"
}
