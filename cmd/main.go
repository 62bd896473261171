package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/saeidalz13/battleship-fleet/api"
	"github.com/saeidalz13/battleship-fleet/db"
	"github.com/saeidalz13/battleship-fleet/db/sqlc"
	"github.com/saeidalz13/battleship-fleet/internal/config"
	"github.com/saeidalz13/battleship-fleet/internal/logging"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		panic(err)
	}
	cfg, err := config.ParseEnv()
	if err != nil {
		panic(err)
	}

	logging.Setup(os.Stdout, cfg.LogLevel, !cfg.IsProd())

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		logging.Logger.Fatal().Err(err).Str("rules_file", cfg.RulesFile).Msg("failed to load rules")
	}

	gameManager, err := mb.NewBattleshipGameManager(rules)
	if err != nil {
		logging.Logger.Fatal().Err(err).Msg("rules can not be satisfied")
	}

	// Analytics are optional; without a database every counter is a no-op
	var querier sqlc.Querier
	if cfg.DatabaseURL != "" {
		querier = sqlc.New(db.MustConnectToDb(cfg.DatabaseURL, cfg.MigrationDir))
	} else {
		logging.Logger.Warn().Msg("DATABASE_URL not set; analytics disabled")
	}

	rp := api.NewRequestProcessor(gameManager, querier)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	logging.Logger.Info().
		Str("stage", cfg.Stage).
		Int("port", cfg.Port).
		Int("grid_size", rules.GridSize).
		Int("fleet_size", len(rules.Fleet)).
		Msg("listening...")

	if err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Port), mux); err != nil {
		logging.Logger.Fatal().Err(err).Msg("server stopped")
	}
}
