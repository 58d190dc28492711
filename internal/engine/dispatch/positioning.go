package dispatch

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

// PositioningVerbs lists every interaction handler that must consult
// implicit positioning before acting (§4.4 "Implicit positioning").
var PositioningVerbs = map[string]struct{}{
	"examine":  {},
	"take":     {},
	"put":      {},
	"open":     {},
	"close":    {},
	"look":     {},
	"approach": {},
}

// ApplyImplicitPositioning consults targetDistance ("near" or "any",
// defaulting to "any") and, if needed, moves the actor's focus onto
// targetID before the calling handler proceeds (§4.4). When distance is
// "near" and the actor isn't already focused on the target, it returns a
// movement beat and clears posture; a "near" target already focused
// produces no beat and no update. An "any" target always sets focus with
// no beat.
func ApplyImplicitPositioning(acc *accessor.Accessor, actorID ids.ActorID, targetID ids.EntityID, targetName string, targetDistance string) (string, error) {
	actor, err := acc.GetActor(actorID)
	if err != nil {
		return "", err
	}

	if targetDistance == "near" {
		if actor.FocusedOn() == targetID {
			return "", nil
		}
		if _, err := acc.Update(actor, map[string]any{
			"focused_on": string(targetID),
			"posture":    nil,
		}, ""); err != nil {
			return "", err
		}
		return fmt.Sprintf("You move closer to %s.", targetName), nil
	}

	if _, err := acc.Update(actor, map[string]any{"focused_on": string(targetID)}, ""); err != nil {
		return "", err
	}
	return "", nil
}

// InteractionDistanceOf returns the positioning requirement an entity
// declares, or "any" when the entity carries none (only items currently
// model this property; every other kind defaults to "any").
func InteractionDistanceOf(entity any) string {
	if item, ok := entity.(*state.Item); ok {
		return item.InteractionDistance()
	}
	return "any"
}
