package protocol

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/serialize"
)

// handleQuery implements §4.6's query branch: dispatch by query_type.
func (h *Handler) handleQuery(msg Message) map[string]any {
	switch msg.QueryType {
	case "location":
		return h.queryLocation(msg)
	case "entity":
		return h.queryEntity(msg)
	case "entities":
		return h.queryEntities(msg)
	case "vocabulary":
		return h.queryVocabulary()
	case "metadata":
		return h.queryMetadata()
	default:
		return errorReply(fmt.Sprintf("unknown query type: %q", msg.QueryType))
	}
}

func queryResponse(queryType string, data map[string]any) map[string]any {
	return map[string]any{"type": "query_response", "query_type": queryType, "data": data}
}

func (h *Handler) playerContext(actorID ids.ActorID) *serialize.PlayerContext {
	actor, err := h.Acc.GetActor(actorID)
	if err != nil {
		return nil
	}
	return &serialize.PlayerContext{Posture: actor.Posture(), FocusedOn: actor.FocusedOn()}
}

func (h *Handler) queryLocation(msg Message) map[string]any {
	actorID := ids.ActorID(msg.ActorID)
	if actorID == "" {
		actorID = ids.Player
	}
	loc, err := h.Acc.GetCurrentLocation(actorID)
	if err != nil {
		return errorReply(fmt.Sprintf("no current location for actor %q", actorID))
	}

	pc := h.playerContext(actorID)
	full := map[string]any{
		"location": serialize.EntityToDict(h.Acc, loc, serialize.Options{PlayerContext: pc}),
		"items":    h.itemsAt(loc.ID, pc),
		"doors":    h.doorsAt(loc.ID, pc),
		"exits":    h.exitsAt(loc.ID),
		"actors":   h.actorsAt(loc.ID, pc),
	}

	if len(msg.Include) == 0 {
		return queryResponse("location", full)
	}
	filtered := map[string]any{"location": full["location"]}
	for _, key := range msg.Include {
		if v, ok := full[key]; ok {
			filtered[key] = v
		}
	}
	return queryResponse("location", filtered)
}

// itemsAt lists the non-door, non-hidden items directly at locID, for
// narration-facing location queries.
func (h *Handler) itemsAt(locID ids.EntityID, pc *serialize.PlayerContext) []map[string]any {
	var out []map[string]any
	for _, id := range h.Acc.GetEntitiesAt(locID, accessor.KindItem) {
		item, err := h.Acc.GetItem(id)
		if err != nil || item.IsDoor() || item.Hidden() {
			continue
		}
		out = append(out, serialize.EntityToDict(h.Acc, item, serialize.Options{PlayerContext: pc}))
	}
	return out
}

func (h *Handler) doorsAt(locID ids.EntityID, pc *serialize.PlayerContext) []map[string]any {
	var out []map[string]any
	seen := map[ids.EntityID]struct{}{}
	for _, exit := range h.Acc.GetExitsFromLocation(locID) {
		if exit.DoorID == "" {
			continue
		}
		if _, dup := seen[exit.DoorID]; dup {
			continue
		}
		seen[exit.DoorID] = struct{}{}
		door, err := h.Acc.GetDoorItem(exit.DoorID)
		if err != nil {
			continue
		}
		dict := serialize.EntityToDict(h.Acc, door, serialize.Options{PlayerContext: pc})
		dict["direction"] = exit.Direction
		out = append(out, dict)
	}
	return out
}

func (h *Handler) exitsAt(locID ids.EntityID) []map[string]any {
	var out []map[string]any
	for _, exit := range h.Acc.GetExitsFromLocation(locID) {
		out = append(out, serialize.EntityToDict(h.Acc, exit, serialize.Options{}))
	}
	return out
}

func (h *Handler) actorsAt(locID ids.EntityID, pc *serialize.PlayerContext) []map[string]any {
	var out []map[string]any
	for _, id := range h.Acc.GetEntitiesAt(locID, accessor.KindActor) {
		if id == ids.EntityID(ids.Player) {
			continue
		}
		actor, err := h.Acc.GetActor(ids.ActorID(id))
		if err != nil {
			continue
		}
		out = append(out, serialize.EntityToDict(h.Acc, actor, serialize.Options{PlayerContext: pc}))
	}
	return out
}

func (h *Handler) queryEntity(msg Message) map[string]any {
	var entity any
	var err error

	switch msg.EntityType {
	case "item":
		entity, err = h.Acc.GetItem(ids.EntityID(msg.EntityID))
	case "door":
		entity, err = h.Acc.GetDoorItem(ids.EntityID(msg.EntityID))
	case "npc":
		entity, err = h.Acc.GetActor(ids.ActorID(msg.EntityID))
	case "location":
		entity, err = h.Acc.GetLocation(ids.EntityID(msg.EntityID))
	default:
		return errorReply(fmt.Sprintf("unknown entity_type: %q", msg.EntityType))
	}
	if err != nil {
		return errorReply(fmt.Sprintf("entity not found: %s", msg.EntityID))
	}

	pc := h.playerContext(ids.Player)
	return queryResponse("entity", map[string]any{
		"entity": serialize.EntityToDict(h.Acc, entity, serialize.Options{PlayerContext: pc}),
	})
}

// queryEntities answers an "entities" query: every door/item/npc whose
// location matches locID (§3 supplemented feature "query_entities
// per-type projections").
func (h *Handler) queryEntities(msg Message) map[string]any {
	locID := ids.EntityID(msg.LocationID)
	if locID == "" {
		loc, err := h.Acc.GetCurrentLocation(ids.Player)
		if err != nil {
			return errorReply("no current location")
		}
		locID = loc.ID
	}
	pc := h.playerContext(ids.Player)

	var entities []map[string]any
	switch msg.EntityType {
	case "door":
		entities = h.doorsAt(locID, pc)
	case "item":
		entities = h.itemsAt(locID, pc)
	case "npc":
		entities = h.actorsAt(locID, pc)
	}
	return queryResponse("entities", map[string]any{"entities": entities})
}

func (h *Handler) queryVocabulary() map[string]any {
	merged := h.Reg.MergedVocabulary()
	verbs := make(map[string]any, len(merged.Verbs))
	for _, v := range merged.Verbs {
		verbs[v.Word] = map[string]any{
			"synonyms":        v.Synonyms,
			"object_required": v.ObjectRequired,
		}
	}
	return queryResponse("vocabulary", map[string]any{"verbs": verbs})
}

func (h *Handler) queryMetadata() map[string]any {
	md := h.Acc.World.Metadata
	return queryResponse("metadata", map[string]any{
		"title":       md.Title,
		"version":     md.Version,
		"description": md.Description,
	})
}
