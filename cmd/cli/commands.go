package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	confirm bool
	force   bool
	teamA   []string
	teamB   []string
	scoreA  int
	scoreB  int
)

func init() {
	recordCmd.Flags().StringSliceVar(&teamA, "team-a", nil, "Player ids for team A")
	recordCmd.Flags().StringSliceVar(&teamB, "team-b", nil, "Player ids for team B")
	recordCmd.Flags().IntVar(&scoreA, "score-a", 0, "Team A's score")
	recordCmd.Flags().IntVar(&scoreB, "score-b", 0, "Team B's score")
	recordCmd.Flags().BoolVar(&force, "force", false, "Record even if the backend flagged a possible duplicate")
	suggestCmd.Flags().BoolVar(&confirm, "confirm", false, "Replace open courts that still have players seated")
	reselectCmd.Flags().BoolVar(&confirm, "confirm", false, "Replace open courts that still have players seated")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(courtsCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(reshuffleCmd)
	rootCmd.AddCommand(reselectCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the session roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List recorded games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the player statistics leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var courtsCmd = &cobra.Command{
	Use:   "courts",
	Short: "Show the current court board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/courts")
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Compute and apply a fair rotation for the open courts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rotation/suggest" + confirmQuery())
	},
}

var reshuffleCmd = &cobra.Command{
	Use:   "reshuffle",
	Short: "Recompute teams on every court without changing who plays",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rotation/reshuffle")
	},
}

var reselectCmd = &cobra.Command{
	Use:   "reselect",
	Short: "Redo player selection and team formation from scratch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rotation/reselect" + confirmQuery())
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Submit a finished game for recording",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{
			"team_a_ids": teamA,
			"team_b_ids": teamB,
			"score_a":    scoreA,
			"score_b":    scoreB,
			"force":      force,
		}
		return performPostRequest("/games/record", payload)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the recorded-game processing pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/process")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func confirmQuery() string {
	if confirm {
		return "?" + url.Values{"confirm": {"true"}}.Encode()
	}
	return ""
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
