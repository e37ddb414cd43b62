package processor

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"voicebot-server/internal/observability"
)

var scenarios = map[string]string{
	"fantasy":   "Middle-earth fantasy adventure",
	"cyberpunk": "Cyberpunk 2077-style city adventure",
	"space":     "Star Wars-style space opera",
}

// GameMaster owns the state of one adventure session. One instance is
// created per call and driven synchronously by the agent's tool calls.
type GameMaster struct {
	state    *GameState
	savesDir string
	logger   *observability.Logger
	rng      *rand.Rand
	now      func() time.Time
}

// NewGameMaster creates a session with a fresh adventure.
func NewGameMaster(savesDir string, logger *observability.Logger) *GameMaster {
	return &GameMaster{
		state:    NewGameState(),
		savesDir: savesDir,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// State exposes the game state for handlers and tests.
func (g *GameMaster) State() *GameState {
	return g.state
}

// RollDice rolls a single die for random events.
func (g *GameMaster) RollDice(ctx context.Context, sides int) string {
	if sides < 2 {
		sides = 20
	}
	result := g.rng.Intn(sides) + 1
	g.logger.Info(ctx, fmt.Sprintf("Dice roll: %d (d%d)", result, sides))
	return fmt.Sprintf("You rolled a %d on a d%d!", result, sides)
}

// SkillCheck rolls a d20 modified by a character attribute.
func (g *GameMaster) SkillCheck(ctx context.Context, skill string, difficulty int) string {
	baseRoll := g.rng.Intn(20) + 1
	attrBonus := g.attribute(skill) - 10
	total := baseRoll + attrBonus - difficulty

	var outcome string
	switch {
	case total >= 16:
		outcome = "Critical Success!"
	case total >= 11:
		outcome = "Success"
	case total >= 6:
		outcome = "Partial Success"
	default:
		outcome = "Failure"
	}

	g.logger.Info(ctx, fmt.Sprintf("Skill check (%s): %d + %d - %d = %d (%s)", skill, baseRoll, attrBonus, difficulty, total, outcome))
	return fmt.Sprintf("Rolling %s check: %d + %d - %d = %d. %s!", skill, baseRoll, attrBonus, difficulty, total, outcome)
}

func (g *GameMaster) attribute(skill string) int {
	switch strings.ToLower(skill) {
	case "strength":
		return g.state.Player.Strength
	case "intelligence":
		return g.state.Player.Intelligence
	case "luck":
		return g.state.Player.Luck
	default:
		return 10
	}
}

// CheckInventory lists what the player is carrying.
func (g *GameMaster) CheckInventory(ctx context.Context) string {
	if len(g.state.Player.Inventory) == 0 {
		return "Your inventory is empty."
	}
	return fmt.Sprintf("You are carrying: %s", strings.Join(g.state.Player.Inventory, ", "))
}

// CheckStatus summarizes the player's health, attributes and quests.
func (g *GameMaster) CheckStatus(ctx context.Context) string {
	p := g.state.Player
	status := fmt.Sprintf("Name: %s\nHP: %d/%d\nSTR: %d | INT: %d | LUCK: %d\nStatus: %s\nLocation: %s",
		p.Name, p.HP, p.MaxHP, p.Strength, p.Intelligence, p.Luck, p.Status, p.Location)

	if len(g.state.ActiveQuests) > 0 {
		status += fmt.Sprintf("\nActive Quests: %d", len(g.state.ActiveQuests))
	}
	if len(g.state.CompletedQuests) > 0 {
		status += fmt.Sprintf("\nCompleted Quests: %d", len(g.state.CompletedQuests))
	}
	return status
}

// AddItem puts an item into the player's inventory.
func (g *GameMaster) AddItem(ctx context.Context, item string) string {
	g.state.Player.Inventory = append(g.state.Player.Inventory, item)
	g.logger.Info(ctx, fmt.Sprintf("Added item: %s", item))
	return fmt.Sprintf("You picked up: %s", item)
}

// UpdateHP applies healing (positive) or damage (negative), clamped to
// [0, max].
func (g *GameMaster) UpdateHP(ctx context.Context, change int) string {
	p := &g.state.Player
	oldHP := p.HP
	p.HP = p.HP + change
	if p.HP < 0 {
		p.HP = 0
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}

	if change > 0 {
		g.logger.Info(ctx, fmt.Sprintf("HP healed: %d -> %d", oldHP, p.HP))
		return fmt.Sprintf("You gained %d HP! Current HP: %d/%d", change, p.HP, p.MaxHP)
	}
	g.logger.Info(ctx, fmt.Sprintf("HP damaged: %d -> %d", oldHP, p.HP))
	return fmt.Sprintf("You took %d damage! Current HP: %d/%d", -change, p.HP, p.MaxHP)
}

// UpdateLocation moves the player.
func (g *GameMaster) UpdateLocation(ctx context.Context, location string) string {
	old := g.state.Player.Location
	g.state.Player.Location = location
	g.logger.Info(ctx, fmt.Sprintf("Location changed: %s -> %s", old, location))
	return fmt.Sprintf("You have moved to: %s", location)
}

// SaveProgress remembers an important story event.
func (g *GameMaster) SaveProgress(ctx context.Context, event string) string {
	g.state.StoryProgress = append(g.state.StoryProgress, event)
	g.logger.Info(ctx, fmt.Sprintf("Story progress saved: %s", event))
	return fmt.Sprintf("Progress saved: %s", event)
}

// UpdateNPC records or updates an NPC at the player's current location.
func (g *GameMaster) UpdateNPC(ctx context.Context, name, status, attitude string) string {
	g.state.NPCs[name] = NPC{
		Status:   status,
		Attitude: attitude,
		Location: g.state.Player.Location,
	}
	g.logger.Info(ctx, fmt.Sprintf("NPC updated: %s (%s, %s)", name, status, attitude))
	return fmt.Sprintf("NPC %s is now %s and %s.", name, status, attitude)
}

// AddQuest adds a new active quest.
func (g *GameMaster) AddQuest(ctx context.Context, quest string) string {
	g.state.ActiveQuests = append(g.state.ActiveQuests, quest)
	g.logger.Info(ctx, fmt.Sprintf("Quest added: %s", quest))
	return fmt.Sprintf("New quest: %s", quest)
}

// CompleteQuest moves a quest from active to completed.
func (g *GameMaster) CompleteQuest(ctx context.Context, quest string) string {
	for i, q := range g.state.ActiveQuests {
		if q == quest {
			g.state.ActiveQuests = append(g.state.ActiveQuests[:i], g.state.ActiveQuests[i+1:]...)
			g.state.CompletedQuests = append(g.state.CompletedQuests, quest)
			g.logger.Info(ctx, fmt.Sprintf("Quest completed: %s", quest))
			return fmt.Sprintf("Quest completed: %s", quest)
		}
	}
	return fmt.Sprintf("Quest '%s' not found in active quests.", quest)
}

// SelectScenario starts the adventure in one of the supported settings.
func (g *GameMaster) SelectScenario(ctx context.Context, scenario string) string {
	scenario = strings.ToLower(strings.TrimSpace(scenario))
	description, ok := scenarios[scenario]
	if !ok {
		return "Invalid scenario. Choose: fantasy, cyberpunk, or space."
	}
	g.state.SelectedScenario = scenario
	g.state.GameStarted = true
	g.logger.Info(ctx, fmt.Sprintf("Scenario selected: %s", scenario))
	return fmt.Sprintf("Scenario selected: %s. Let the adventure begin!", description)
}

// Restart throws away all state and starts over.
func (g *GameMaster) Restart(ctx context.Context) string {
	g.state = NewGameState()
	g.logger.Info(ctx, "Game restarted")
	return "Game restarted! Ready for a new adventure."
}

// SessionStatus greets a new player or summarizes existing progress for
// a returning one.
func (g *GameMaster) SessionStatus(ctx context.Context) string {
	s := g.state
	hasProgress := len(s.StoryProgress) > 0 ||
		s.SelectedScenario != "" ||
		len(s.Player.Inventory) > 0 ||
		s.Player.HP != s.Player.MaxHP ||
		len(s.ActiveQuests) > 0 ||
		len(s.CompletedQuests) > 0

	if !hasProgress {
		g.logger.Info(ctx, "New session started")
		return "Greetings, brave adventurer! Welcome to the realm of endless possibilities. I am your Game Master, ready to guide you through epic tales of heroism and adventure."
	}

	summary := fmt.Sprintf("Welcome back, %s! You're at %s with %d/%d HP. ",
		s.Player.Name, s.Player.Location, s.Player.HP, s.Player.MaxHP)
	if s.SelectedScenario != "" {
		summary += fmt.Sprintf("Continuing your %s adventure. ", s.SelectedScenario)
	}
	if len(s.ActiveQuests) > 0 {
		summary += fmt.Sprintf("You have %d active quest(s). ", len(s.ActiveQuests))
	}
	if len(s.StoryProgress) > 0 {
		summary += fmt.Sprintf("Last event: %s. ", s.StoryProgress[len(s.StoryProgress)-1])
	}
	g.logger.Info(ctx, "Resuming existing session")
	return summary + "Ready to continue your adventure!"
}

// EndGame wraps up the adventure with a summary.
func (g *GameMaster) EndGame(ctx context.Context) string {
	s := g.state
	summary := fmt.Sprintf("Adventure Complete! Your hero %s ended with %d/%d HP at %s.",
		s.Player.Name, s.Player.HP, s.Player.MaxHP, s.Player.Location)
	if len(s.CompletedQuests) > 0 {
		summary += fmt.Sprintf(" Completed quests: %d", len(s.CompletedQuests))
	}
	if len(s.StoryProgress) > 0 {
		recent := s.StoryProgress
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		summary += fmt.Sprintf(" Key events: %s", strings.Join(recent, ", "))
	}
	g.logger.Info(ctx, "Game ended")
	return summary + " Thanks for playing! Say 'restart' for a new adventure."
}
