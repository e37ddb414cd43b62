package processor

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"voicebot-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGameMaster(t *testing.T) *GameMaster {
	t.Helper()
	g := NewGameMaster(t.TempDir(), observability.NewLogger())
	g.rng = rand.New(rand.NewSource(1))
	return g
}

func TestRollDice_WithinBounds(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		msg := g.RollDice(ctx, 6)
		assert.Contains(t, msg, "on a d6")
	}

	// Nonsense sides fall back to a d20.
	assert.Contains(t, g.RollDice(ctx, 0), "on a d20")
}

func TestSkillCheck_Buckets(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		msg := g.SkillCheck(ctx, "strength", 0)
		switch {
		case strings.Contains(msg, "Critical Success"):
			seen["crit"] = true
		case strings.Contains(msg, "Partial Success"):
			seen["partial"] = true
		case strings.Contains(msg, "Success"):
			seen["success"] = true
		case strings.Contains(msg, "Failure"):
			seen["failure"] = true
		}
	}
	// With neutral stats a d20 covers every bucket.
	assert.Len(t, seen, 4)
}

func TestSkillCheck_UnknownSkillUsesNeutralBonus(t *testing.T) {
	g := newTestGameMaster(t)
	msg := g.SkillCheck(context.Background(), "charisma", 0)
	assert.Contains(t, msg, "charisma check")
	assert.Contains(t, msg, "+ 0 - 0")
}

func TestInventory(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	assert.Equal(t, "Your inventory is empty.", g.CheckInventory(ctx))

	g.AddItem(ctx, "rusty sword")
	g.AddItem(ctx, "healing potion")
	assert.Equal(t, "You are carrying: rusty sword, healing potion", g.CheckInventory(ctx))
}

func TestUpdateHP_Clamped(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	msg := g.UpdateHP(ctx, -30)
	assert.Contains(t, msg, "You took 30 damage")
	assert.Equal(t, 70, g.State().Player.HP)

	g.UpdateHP(ctx, -500)
	assert.Equal(t, 0, g.State().Player.HP)

	g.UpdateHP(ctx, 500)
	assert.Equal(t, 100, g.State().Player.HP)

	msg = g.UpdateHP(ctx, 20)
	assert.Contains(t, msg, "You gained 20 HP")
	assert.Equal(t, 100, g.State().Player.HP)
}

func TestQuests(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	g.AddQuest(ctx, "Find the lost ring")
	assert.Equal(t, []string{"Find the lost ring"}, g.State().ActiveQuests)

	msg := g.CompleteQuest(ctx, "Slay the dragon")
	assert.Contains(t, msg, "not found")
	assert.Empty(t, g.State().CompletedQuests)

	msg = g.CompleteQuest(ctx, "Find the lost ring")
	assert.Contains(t, msg, "Quest completed")
	assert.Empty(t, g.State().ActiveQuests)
	assert.Equal(t, []string{"Find the lost ring"}, g.State().CompletedQuests)
}

func TestSelectScenario(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	msg := g.SelectScenario(ctx, "underwater")
	assert.Contains(t, msg, "Invalid scenario")
	assert.False(t, g.State().GameStarted)

	msg = g.SelectScenario(ctx, " Cyberpunk ")
	assert.Contains(t, msg, "Let the adventure begin")
	assert.Equal(t, "cyberpunk", g.State().SelectedScenario)
	assert.True(t, g.State().GameStarted)
}

func TestUpdateNPC_TracksPlayerLocation(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	g.UpdateLocation(ctx, "The Prancing Pony")
	g.UpdateNPC(ctx, "Barliman", "alive", "friendly")

	npc, ok := g.State().NPCs["Barliman"]
	require.True(t, ok)
	assert.Equal(t, "alive", npc.Status)
	assert.Equal(t, "friendly", npc.Attitude)
	assert.Equal(t, "The Prancing Pony", npc.Location)
}

func TestSessionStatus(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	msg := g.SessionStatus(ctx)
	assert.Contains(t, msg, "Greetings, brave adventurer")

	g.SelectScenario(ctx, "fantasy")
	g.SaveProgress(ctx, "Met the wizard")
	msg = g.SessionStatus(ctx)
	assert.Contains(t, msg, "Welcome back")
	assert.Contains(t, msg, "fantasy")
	assert.Contains(t, msg, "Met the wizard")
}

func TestRestart_ResetsEverything(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	g.SelectScenario(ctx, "space")
	g.AddItem(ctx, "blaster")
	g.UpdateHP(ctx, -40)

	g.Restart(ctx)
	assert.Equal(t, 100, g.State().Player.HP)
	assert.Empty(t, g.State().Player.Inventory)
	assert.Empty(t, g.State().SelectedScenario)
	assert.False(t, g.State().GameStarted)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()
	g.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	g.SelectScenario(ctx, "fantasy")
	g.AddItem(ctx, "elven cloak")
	g.UpdateHP(ctx, -25)
	g.UpdateLocation(ctx, "Mirkwood")
	g.AddQuest(ctx, "Cross the forest")
	g.UpdateNPC(ctx, "Thranduil", "alive", "neutral")

	msg := g.SaveGame(ctx)
	require.Contains(t, msg, "Game saved as ")
	filename := strings.TrimPrefix(msg, "Game saved as ")

	// Fresh session loads it all back.
	g2 := NewGameMaster(g.savesDir, observability.NewLogger())
	msg = g2.LoadGame(ctx, filename)
	assert.Contains(t, msg, "Welcome back, Adventurer")

	assert.Equal(t, "fantasy", g2.State().SelectedScenario)
	assert.True(t, g2.State().GameStarted)
	assert.Equal(t, []string{"elven cloak"}, g2.State().Player.Inventory)
	assert.Equal(t, 75, g2.State().Player.HP)
	assert.Equal(t, "Mirkwood", g2.State().Player.Location)
	assert.Equal(t, []string{"Cross the forest"}, g2.State().ActiveQuests)
	assert.Equal(t, "neutral", g2.State().NPCs["Thranduil"].Attitude)
}

func TestLoadGame_MissingFile(t *testing.T) {
	g := newTestGameMaster(t)
	msg := g.LoadGame(context.Background(), "no_such_save.json")
	assert.Contains(t, msg, "Failed to load game")
}

func TestEndGame_Summary(t *testing.T) {
	g := newTestGameMaster(t)
	ctx := context.Background()

	g.AddQuest(ctx, "q1")
	g.CompleteQuest(ctx, "q1")
	for _, ev := range []string{"one", "two", "three", "four"} {
		g.SaveProgress(ctx, ev)
	}

	msg := g.EndGame(ctx)
	assert.Contains(t, msg, "Adventure Complete")
	assert.Contains(t, msg, "Completed quests: 1")
	// Only the last three events make the summary.
	assert.Contains(t, msg, "two, three, four")
	assert.NotContains(t, msg, "one, two, three, four")
}

func TestToolset_DispatchesGameActions(t *testing.T) {
	g := newTestGameMaster(t)
	ts := g.Toolset()
	ctx := context.Background()

	msg := ts.Dispatch(ctx, "add_item", map[string]any{"item": "torch"})
	assert.Equal(t, "You picked up: torch", msg)

	msg = ts.Dispatch(ctx, "update_hp", map[string]any{"change": float64(-15)})
	assert.Contains(t, msg, "You took 15 damage")

	msg = ts.Dispatch(ctx, "check_status", nil)
	assert.Contains(t, msg, "HP: 85/100")
}
