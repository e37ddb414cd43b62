package processor

import (
	"context"

	"voicebot-server/internal/agenttools"

	"google.golang.org/genai"
)

func stringParam(name, description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			name: {Type: genai.TypeString, Description: description},
		},
		Required: []string{name},
	}
}

// Toolset exposes the game-master actions as voice-agent tools.
func (g *GameMaster) Toolset() *agenttools.Toolset {
	ts := agenttools.NewToolset()

	ts.Add(agenttools.Tool{
		Name:        "roll_dice",
		Description: "Roll a dice for skill checks and random events.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"sides": {Type: genai.TypeInteger, Description: "Number of sides on the dice (default 20)"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.RollDice(ctx, agenttools.IntArg(args, "sides", 20))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "skill_check",
		Description: "Perform a skill check with character attributes (strength, intelligence, or luck).",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"skill":      {Type: genai.TypeString, Description: "Skill type: strength, intelligence, or luck"},
				"difficulty": {Type: genai.TypeInteger, Description: "Difficulty modifier (0-10)"},
			},
			Required: []string{"skill"},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.SkillCheck(ctx, agenttools.StringArg(args, "skill"), agenttools.IntArg(args, "difficulty", 0))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "check_inventory",
		Description: "Check what items the player is carrying.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.CheckInventory(ctx)
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "check_status",
		Description: "Check the player's current health, attributes and location.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.CheckStatus(ctx)
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "add_item",
		Description: "Add an item to the player's inventory.",
		Parameters:  stringParam("item", "Item to add to inventory"),
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.AddItem(ctx, agenttools.StringArg(args, "item"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "update_hp",
		Description: "Update the player's health points.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"change": {Type: genai.TypeInteger, Description: "HP change (positive for healing, negative for damage)"},
			},
			Required: []string{"change"},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.UpdateHP(ctx, agenttools.IntArg(args, "change", 0))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "update_location",
		Description: "Update the player's current location.",
		Parameters:  stringParam("location", "New location name"),
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.UpdateLocation(ctx, agenttools.StringArg(args, "location"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "save_progress",
		Description: "Save an important story event to remember.",
		Parameters:  stringParam("event", "Important story event to remember"),
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.SaveProgress(ctx, agenttools.StringArg(args, "event"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "update_npc",
		Description: "Update or add an NPC to the world state.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":     {Type: genai.TypeString, Description: "NPC name"},
				"status":   {Type: genai.TypeString, Description: "NPC status (alive/dead/missing)"},
				"attitude": {Type: genai.TypeString, Description: "NPC attitude (friendly/neutral/hostile)"},
			},
			Required: []string{"name", "status", "attitude"},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.UpdateNPC(ctx,
				agenttools.StringArg(args, "name"),
				agenttools.StringArg(args, "status"),
				agenttools.StringArg(args, "attitude"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "add_quest",
		Description: "Add a new quest to the active quests.",
		Parameters:  stringParam("quest", "Quest description"),
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.AddQuest(ctx, agenttools.StringArg(args, "quest"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "complete_quest",
		Description: "Mark a quest as completed.",
		Parameters:  stringParam("quest", "Quest to complete"),
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.CompleteQuest(ctx, agenttools.StringArg(args, "quest"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "select_scenario",
		Description: "Select the adventure scenario.",
		Parameters:  stringParam("scenario", "Scenario choice: fantasy, cyberpunk, or space"),
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.SelectScenario(ctx, agenttools.StringArg(args, "scenario"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "save_game",
		Description: "Save the current game state to a file.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.SaveGame(ctx)
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "load_game",
		Description: "Load a previously saved game state.",
		Parameters:  stringParam("filename", "Save file name to load"),
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.LoadGame(ctx, agenttools.StringArg(args, "filename"))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "check_session_status",
		Description: "Check if this is a new session or a continuing one. Call this first to greet the player properly.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.SessionStatus(ctx)
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "restart_game",
		Description: "Restart the adventure with a fresh character.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.Restart(ctx)
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "end_game",
		Description: "End the current adventure and provide a summary.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		Handler: func(ctx context.Context, args map[string]any) string {
			return g.EndGame(ctx)
		},
	})

	return ts
}
