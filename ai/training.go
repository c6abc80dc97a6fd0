package ai

import (
	"context"
	"log"
	"snake-arcade/game"
	"snake-arcade/game/types"
)

const (
	reportEvery = 50  // Rounds per progress line
	saveEvery   = 500 // Rounds between Q table saves
	maxSteps    = 10000
)

// TrainingResult riassume una sessione di addestramento
type TrainingResult struct {
	Rounds     int
	BestScore  int
	TotalScore int
}

func (r TrainingResult) AverageScore() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.Rounds)
}

// Train esegue l'addestramento dell'agente per rounds partite, senza orologio.
// Events published by g reach its subscribers as in a normal game.
func Train(ctx context.Context, g *game.Game, pilot *Autopilot, rounds int) (TrainingResult, error) {
	var result TrainingResult
	batchScore := 0

	pilot.SetAutosave(false)
	defer pilot.SetAutosave(true)

	for episode := 0; episode < rounds; episode++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		// Reset del gioco per il nuovo episodio
		g.Restart()
		score := playRound(g, pilot)

		// Aggiorna le statistiche
		result.Rounds++
		result.TotalScore += score
		batchScore += score
		if score > result.BestScore {
			result.BestScore = score
		}

		if (episode+1)%reportEvery == 0 {
			log.Printf("[TRAIN] [INFO] rounds %d, batch average %.2f, best %d, states %d",
				episode+1, float64(batchScore)/reportEvery, result.BestScore, pilot.Agent().States())
			batchScore = 0
		}

		// Salva periodicamente la tabella
		if (episode+1)%saveEvery == 0 {
			pilot.Save()
		}
	}

	pilot.Save()
	return result, nil
}

// playRound runs one round to its end, or until maxSteps so a looping agent
// cannot stall training. It returns the final score.
func playRound(g *game.Game, pilot *Autopilot) int {
	for steps := 0; steps < maxSteps; steps++ {
		snap := g.Snapshot()
		if snap.State == game.Over {
			break
		}
		if d := pilot.Decide(snap); d != types.None {
			g.SetDirection(d)
		}
		before := g.Snapshot()
		events := g.Tick()
		if len(events) > 0 {
			pilot.Observe(before, g.Snapshot(), events)
		}
	}
	return g.Score()
}
