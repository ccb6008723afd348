// Command seed posts a batch of sample match records to a running predictor
// and triggers a training cycle, for local development and smoke testing.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

var teams = []string{
	"Mumbai Indians",
	"Chennai Super Kings",
	"Royal Challengers Bangalore",
	"Kolkata Knight Riders",
	"Delhi Capitals",
	"Rajasthan Royals",
	"Sunrisers Hyderabad",
	"Punjab Kings",
}

var venues = []string{
	"Wankhede Stadium",
	"M. A. Chidambaram Stadium",
	"Eden Gardens",
	"Arun Jaitley Stadium",
	"M. Chinnaswamy Stadium",
}

type matchPayload struct {
	EventID      string `json:"event_id"`
	Team1        string `json:"team1"`
	Team2        string `json:"team2"`
	Team1Score   int    `json:"team1Score"`
	Team2Score   int    `json:"team2Score"`
	Winner       string `json:"winner"`
	Venue        string `json:"venue"`
	TossWinner   string `json:"tossWinner"`
	TossDecision string `json:"tossDecision"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8091", "predictor base URL")
	count := flag.Int("count", 60, "number of match records to seed")
	seed := flag.Int64("seed", time.Now().UnixNano(), "rng seed")
	train := flag.Bool("train", true, "trigger a training cycle after seeding")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < *count; i++ {
		m := randomMatch(rng)
		if err := postJSON(client, *baseURL+"/matches", m); err != nil {
			fmt.Fprintf(os.Stderr, "seed match %d: %v\n", i+1, err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded %d matches\n", *count)

	if !*train {
		return
	}
	// Give the async append workers a moment to drain the queue before the
	// training cycle reads the log.
	time.Sleep(500 * time.Millisecond)
	if err := postJSON(client, *baseURL+"/train", struct{}{}); err != nil {
		fmt.Fprintf(os.Stderr, "train: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("training triggered")
}

func randomMatch(rng *rand.Rand) matchPayload {
	i := rng.Intn(len(teams))
	j := rng.Intn(len(teams) - 1)
	if j >= i {
		j++
	}

	score1 := 120 + rng.Intn(101)
	score2 := 120 + rng.Intn(101)
	winner := "team1"
	if score2 > score1 {
		winner = "team2"
	}

	tossWinner := "team1"
	if rng.Intn(2) == 1 {
		tossWinner = "team2"
	}
	tossDecision := "bat"
	if rng.Intn(2) == 1 {
		tossDecision = "bowl"
	}

	return matchPayload{
		EventID:      uuid.NewString(),
		Team1:        teams[i],
		Team2:        teams[j],
		Team1Score:   score1,
		Team2Score:   score2,
		Winner:       winner,
		Venue:        venues[rng.Intn(len(venues))],
		TossWinner:   tossWinner,
		TossDecision: tossDecision,
	}
}

func postJSON(client *http.Client, url string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("post %s: unexpected status %s", url, resp.Status)
	}
	return nil
}
