package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pklbhq/courtside/internal/database"
	"github.com/pklbhq/courtside/internal/session"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"DB_NAME"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", "./migrations")
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()
	defer db.Close()

	store := session.New(db)

	const playerCount = 10
	players := make([]session.PlayerInfo, 0, playerCount)
	for i := 1; i <= playerCount; i++ {
		players = append(players, session.PlayerInfo{
			ID:     fmt.Sprintf("player-%d", i),
			Name:   fmt.Sprintf("Seeder Player %d", i),
			Active: true,
		})
	}
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to insert dummy players: %s", err)
	}
	log.Info("Ensured dummy players exist.", "count", playerCount)

	const numGames = 200

	log.Info("Preparing to insert dummy games...", "total", numGames)
	startTime := time.Now()

	for i := 0; i < numGames; i++ {
		// Draw four distinct players for each historical game.
		perm := rand.Perm(playerCount)[:4]
		ids := make([]string, 4)
		for j, p := range perm {
			ids[j] = players[p].ID
		}
		winnerScore := 11
		loserScore := rand.Intn(10)

		game := &session.GameRecord{
			ID:               uuid.NewString(),
			TeamAIDs:         ids[:2],
			TeamBIDs:         ids[2:],
			ScoreA:           winnerScore,
			ScoreB:           loserScore,
			PlayedAt:         time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
			ProcessingStatus: session.StatusCompleted,
		}
		if err := store.InsertGame(game); err != nil {
			log.Fatalf("Failed to insert dummy game: %s", err)
		}
		if (i+1)%50 == 0 || (i+1) == numGames {
			log.Info("Inserted games", "completed", i+1, "total", numGames)
		}
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy games.", "duration", duration)
}
