// Package crafting implements "combine X with Y" and "craft <recipe>",
// matching ingredient sets against a world's recipe catalog
// (World.Extra["recipes"]) and materializing the result item from
// World.Extra["item_templates"] when it doesn't already exist.
package crafting

import (
	"fmt"
	"strings"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

// recipe is the Go-literal shape of a World.Extra["recipes"] entry.
type recipe struct {
	Ingredients         []string
	Creates             string
	RequiresLocation    string
	RequiresSkill       string
	ConsumesIngredients bool
	SuccessMessage      string
}

// itemTemplate is the Go-literal shape of a World.Extra["item_templates"]
// entry.
type itemTemplate struct {
	Name        string
	Description string
	Properties  map[string]any
}

// NewModule builds the crafting module.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.crafting",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{
				{Word: "combine", Synonyms: []string{"mix", "merge"}, ObjectRequired: true, Preposition: "with"},
				{Word: "craft", Synonyms: []string{"create", "make", "build", "assemble"}, ObjectRequired: true},
			},
		},
		Handlers: map[string]registry.HandlerFunc{
			"combine": handleCombine(resolver),
			"craft":   handleCraft,
		},
	}
}

func handleCombine(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object == nil || act.Object.Word == "" {
			return &action.HandlerResult{Success: false, Message: "Combine what?"}, nil
		}
		if act.IndirectObject == nil || act.IndirectObject.Word == "" {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("Combine %s with what?", act.Object.Word)}, nil
		}

		actor, err := acc.GetActor(act.ActorID)
		if err != nil {
			return nil, err
		}

		item1, err := findInInventory(acc, actor, act.Object.Word)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't have any %s.", act.Object.Word)}, nil
		}
		item2, err := findInInventory(acc, actor, act.IndirectObject.Word)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't have any %s.", act.IndirectObject.Word)}, nil
		}

		catalog := recipeCatalog(acc.World)
		matched, ok := findRecipe(catalog, []ids.EntityID{item1, item2})
		if !ok {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't combine %s and %s.", act.Object.Word, act.IndirectObject.Word)}, nil
		}

		if msg, ok := checkRequirements(acc, actor, matched); !ok {
			return &action.HandlerResult{Success: false, Message: msg}, nil
		}
		message := executeCraft(acc, actor, matched, []ids.EntityID{item1, item2})
		return &action.HandlerResult{Success: true, Message: message}, nil
	}
}

func handleCraft(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	if act.Object == nil || act.Object.Word == "" {
		return &action.HandlerResult{Success: false, Message: "Craft what?"}, nil
	}
	actor, err := acc.GetActor(act.ActorID)
	if err != nil {
		return nil, err
	}

	catalog := recipeCatalog(acc.World)
	matched, ok := catalog[act.Object.Word]
	if !ok {
		return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't know how to craft %s.", act.Object.Word)}, nil
	}

	ingredientIDs := make([]ids.EntityID, 0, len(matched.Ingredients))
	var missing []string
	for _, idStr := range matched.Ingredients {
		id := ids.EntityID(idStr)
		ingredientIDs = append(ingredientIDs, id)
		if !holds(actor, id) {
			name := idStr
			if item, err := acc.GetItem(id); err == nil {
				name = item.Name
			}
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &action.HandlerResult{Success: false, Message: "You need: " + strings.Join(missing, ", ")}, nil
	}

	if msg, ok := checkRequirements(acc, actor, matched); !ok {
		return &action.HandlerResult{Success: false, Message: msg}, nil
	}
	message := executeCraft(acc, actor, matched, ingredientIDs)
	return &action.HandlerResult{Success: true, Message: message}, nil
}

// findInInventory looks up word by exact item id first, then by name
// match against every item the actor is carrying (the Go analogue of
// matching both id and display name the way the crafting handlers do).
func findInInventory(acc *accessor.Accessor, actor *state.Actor, word string) (ids.EntityID, error) {
	for _, id := range actor.Inventory {
		if string(id) == word {
			return id, nil
		}
	}
	for _, id := range actor.Inventory {
		item, err := acc.GetItem(id)
		if err != nil {
			continue
		}
		if strings.EqualFold(item.Name, word) {
			return id, nil
		}
	}
	return "", ids.ErrNotFound
}

func holds(actor *state.Actor, id ids.EntityID) bool {
	for _, held := range actor.Inventory {
		if held == id {
			return true
		}
	}
	return false
}

func findRecipe(catalog map[string]recipe, itemIDs []ids.EntityID) (recipe, bool) {
	want := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		want[string(id)] = struct{}{}
	}
	for _, r := range catalog {
		if len(r.Ingredients) != len(want) {
			continue
		}
		matchAll := true
		for _, ing := range r.Ingredients {
			if _, ok := want[ing]; !ok {
				matchAll = false
				break
			}
		}
		if matchAll {
			return r, true
		}
	}
	return recipe{}, false
}

func checkRequirements(acc *accessor.Accessor, actor *state.Actor, r recipe) (string, bool) {
	if r.RequiresLocation != "" && string(actor.Location) != r.RequiresLocation {
		name := r.RequiresLocation
		if loc, err := acc.GetLocation(ids.EntityID(r.RequiresLocation)); err == nil {
			name = loc.Name
		}
		return fmt.Sprintf("You need to be at the %s to craft this.", name), false
	}
	if r.RequiresSkill != "" {
		skills := stringSlice(actor.Properties["skills"])
		if !contains(skills, r.RequiresSkill) {
			return fmt.Sprintf("You need the %s skill to craft this.", r.RequiresSkill), false
		}
	}
	return "", true
}

// executeCraft consumes the ingredients (if the recipe calls for it),
// materializes the result item from its template if it doesn't already
// exist, and gives it to actor.
func executeCraft(acc *accessor.Accessor, actor *state.Actor, r recipe, itemIDs []ids.EntityID) string {
	if r.ConsumesIngredients {
		for _, id := range itemIDs {
			// SetEntityWhere keeps actor.Inventory and the containment
			// index in agreement on every move (§9 Open Question (c)).
			_ = acc.SetEntityWhere(id, "__consumed_by_craft__")
		}
	}

	if r.Creates != "" {
		resultID := ids.EntityID(r.Creates)
		if _, err := acc.GetItem(resultID); err != nil {
			template := itemTemplates(acc.World)[r.Creates]
			newItem := state.Item{
				ID:          resultID,
				Name:        valueOr(template.Name, r.Creates),
				Description: valueOr(template.Description, "A crafted item."),
				Location:    "",
				Properties:  state.Properties(template.Properties),
			}
			acc.World.Items = append(acc.World.Items, newItem)
		}
		_ = acc.SetEntityWhere(resultID, ids.EntityID(actor.ID))
	}

	if r.SuccessMessage != "" {
		return r.SuccessMessage
	}
	return fmt.Sprintf("You create %s.", r.Creates)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func stringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// recipeCatalog reads World.Extra["recipes"] into typed recipe records.
func recipeCatalog(w *state.World) map[string]recipe {
	raw, ok := w.Extra["recipes"].(map[string]any)
	if !ok {
		return map[string]recipe{}
	}
	out := make(map[string]recipe, len(raw))
	for name, v := range raw {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		r := recipe{ConsumesIngredients: true}
		r.Ingredients = stringSlice(fields["ingredients"])
		if s, ok := fields["creates"].(string); ok {
			r.Creates = s
		}
		if s, ok := fields["requires_location"].(string); ok {
			r.RequiresLocation = s
		}
		if s, ok := fields["requires_skill"].(string); ok {
			r.RequiresSkill = s
		}
		if b, ok := fields["consumes_ingredients"].(bool); ok {
			r.ConsumesIngredients = b
		}
		if s, ok := fields["success_message"].(string); ok {
			r.SuccessMessage = s
		}
		out[name] = r
	}
	return out
}

// itemTemplates reads World.Extra["item_templates"] into typed records.
func itemTemplates(w *state.World) map[string]itemTemplate {
	raw, ok := w.Extra["item_templates"].(map[string]any)
	if !ok {
		return map[string]itemTemplate{}
	}
	out := make(map[string]itemTemplate, len(raw))
	for name, v := range raw {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		t := itemTemplate{}
		if s, ok := fields["name"].(string); ok {
			t.Name = s
		}
		if s, ok := fields["description"].(string); ok {
			t.Description = s
		}
		if props, ok := fields["properties"].(map[string]any); ok {
			t.Properties = props
		}
		out[name] = t
	}
	return out
}
