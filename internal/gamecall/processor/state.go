package processor

// PlayerCharacter is the hero a single caller plays through the
// adventure.
type PlayerCharacter struct {
	Name         string   `json:"name"`
	HP           int      `json:"hp"`
	MaxHP        int      `json:"max_hp"`
	Strength     int      `json:"strength"`
	Intelligence int      `json:"intelligence"`
	Luck         int      `json:"luck"`
	Inventory    []string `json:"inventory"`
	Location     string   `json:"location"`
	Status       string   `json:"status"`
}

// NPC tracks a non-player character the story has introduced.
type NPC struct {
	Status   string `json:"status"`
	Attitude string `json:"attitude"`
	Location string `json:"location"`
}

// GameState is the full session state for one adventure.
type GameState struct {
	Player           PlayerCharacter `json:"player"`
	StoryProgress    []string        `json:"story_progress"`
	GameStarted      bool            `json:"game_started"`
	SelectedScenario string          `json:"scenario"`
	NPCs             map[string]NPC  `json:"npcs"`
	ActiveQuests     []string        `json:"active_quests"`
	CompletedQuests  []string        `json:"completed_quests"`
}

// NewGameState creates a fresh adventure with a default hero.
func NewGameState() *GameState {
	return &GameState{
		Player: PlayerCharacter{
			Name:         "Adventurer",
			HP:           100,
			MaxHP:        100,
			Strength:     10,
			Intelligence: 10,
			Luck:         10,
			Inventory:    []string{},
			Location:     "Village Square",
			Status:       "Healthy",
		},
		NPCs: map[string]NPC{},
	}
}
