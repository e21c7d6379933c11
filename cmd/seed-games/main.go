// Command seed-games fills the fingerprint store with synthetic games so
// similarity search has something to rank before a real season has been
// ingested. Vectors follow a handful of recognizable momentum shapes with
// per-game noise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hoopsight/momentum/internal/adapters/repository"
	"github.com/hoopsight/momentum/internal/config"
	"github.com/hoopsight/momentum/internal/domain/model"
	"github.com/hoopsight/momentum/pkg/logger"
)

const defaultSeedCount = 15

var matchups = [][2]string{
	{"Bulls", "Knicks"},
	{"Lakers", "Celtics"},
	{"Warriors", "Cavaliers"},
	{"Suns", "Nuggets"},
	{"Heat", "Bucks"},
}

// shape produces the i-th component of a 20-point momentum vector.
type shape struct {
	name string
	at   func(i int) float64
}

var shapes = []shape{
	{"home_surge", func(i int) float64 {
		return math.Min(0.9, float64(i)*0.05)
	}},
	{"away_comeback", func(i int) float64 {
		return 0.6 - float64(i)*0.07
	}},
	{"seesaw", func(i int) float64 {
		return 0.5 * math.Sin(float64(i)*0.8)
	}},
	{"blowout", func(i int) float64 {
		return math.Min(1.0, 0.2+float64(i)*0.08)
	}},
	{"late_collapse", func(i int) float64 {
		if i < 14 {
			return 0.4
		}
		return 0.4 - float64(i-13)*0.15
	}},
}

func main() {
	var (
		count = flag.Int("count", defaultSeedCount, "Number of synthetic games to insert")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible vectors")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get().Named("seed")

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if cfg.PostgresDSN == "" {
		os.Stderr.WriteString("MOMENTUM_POSTGRES_DSN must be set; an in-memory store would vanish with this process\n")
		os.Exit(1)
	}

	store, err := repository.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		os.Stderr.WriteString("failed to connect to postgres: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	rng := rand.New(rand.NewSource(*seed))
	inserted := 0
	for i := 0; i < *count; i++ {
		fp := syntheticGame(rng, i)
		if err := store.Insert(ctx, fp); err != nil {
			if errors.Is(err, repository.ErrDuplicateGame) {
				continue
			}
			log.Error(ctx, "seed insert failed",
				logger.String("game_id", fp.GameID), logger.Error(err))
			os.Exit(1)
		}
		inserted++
	}

	log.Info(ctx, "seeded synthetic games",
		logger.Int("requested", *count),
		logger.Int("inserted", inserted),
	)
}

func syntheticGame(rng *rand.Rand, i int) model.Fingerprint {
	sh := shapes[i%len(shapes)]
	teams := matchups[i%len(matchups)]

	vector := make([]float64, model.VectorLength)
	for j := range vector {
		v := sh.at(j) + rng.NormFloat64()*0.08
		vector[j] = math.Max(-1, math.Min(1, v))
	}

	homeScore := 95 + rng.Intn(30)
	awayScore := 95 + rng.Intn(30)
	if homeScore == awayScore {
		homeScore++
	}

	return model.Fingerprint{
		GameID:     "seed-" + uuid.NewString(),
		Season:     "2025-26",
		HomeTeam:   teams[0],
		AwayTeam:   teams[1],
		FinalScore: fmt.Sprintf("%d-%d", homeScore, awayScore),
		Vector:     vector,
		Metadata: map[string]any{
			"sample_data": true,
			"shape":       sh.name,
		},
	}
}
