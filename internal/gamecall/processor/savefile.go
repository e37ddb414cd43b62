package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// saveFile is the on-disk save format.
type saveFile struct {
	Timestamp time.Time `json:"timestamp"`
	GameState
}

// SaveGame writes the current state to a timestamped JSON file under
// the saves directory.
func (g *GameMaster) SaveGame(ctx context.Context) string {
	data := saveFile{
		Timestamp: g.now(),
		GameState: *g.state,
	}
	blob, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		g.logger.Error(ctx, "failed to encode game save", err)
		return fmt.Sprintf("Failed to save game: %v", err)
	}

	filename := fmt.Sprintf("game_save_%s.json", g.now().Format("20060102_150405"))
	path := filepath.Join(g.savesDir, filename)
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		g.logger.Error(ctx, "failed to write game save", err)
		return fmt.Sprintf("Failed to save game: %v", err)
	}

	g.logger.Info(ctx, fmt.Sprintf("Game saved: %s", filename))
	return fmt.Sprintf("Game saved as %s", filename)
}

// LoadGame restores state from a previously saved file. The filename is
// resolved inside the saves directory only.
func (g *GameMaster) LoadGame(ctx context.Context, filename string) string {
	path := filepath.Join(g.savesDir, filepath.Base(filename))
	blob, err := os.ReadFile(path)
	if err != nil {
		g.logger.Error(ctx, "failed to read game save", err)
		return fmt.Sprintf("Failed to load game: %v", err)
	}

	var data saveFile
	if err := json.Unmarshal(blob, &data); err != nil {
		g.logger.Error(ctx, "failed to decode game save", err)
		return fmt.Sprintf("Failed to load game: %v", err)
	}

	restored := data.GameState
	if restored.NPCs == nil {
		restored.NPCs = map[string]NPC{}
	}
	restored.GameStarted = true
	g.state = &restored

	g.logger.Info(ctx, fmt.Sprintf("Game loaded: %s", filename))
	return fmt.Sprintf("Game loaded successfully! Welcome back, %s. You're at %s.",
		g.state.Player.Name, g.state.Player.Location)
}
