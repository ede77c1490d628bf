package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spok95/sales-training-backend/internal/auth"
	"github.com/Spok95/sales-training-backend/internal/config"
	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/Spok95/sales-training-backend/internal/materials"
	"github.com/Spok95/sales-training-backend/internal/render"
	"github.com/Spok95/sales-training-backend/internal/roster"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// seed: разовое заполнение базы без запуска HTTP-сервера.
//
//	seed                       весь встроенный ростер
//	seed -roster team.yaml     ростер из файла
//	seed -only a@x.com         один участник ростера
//	seed -materials            ещё и каталог материалов
func main() {
	rosterPath := flag.String("roster", "", "YAML roster file (default: embedded roster)")
	withMaterials := flag.Bool("materials", false, "also seed training materials")
	only := flag.String("only", "", "seed a single roster member by email")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Base.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = database.Close() }()
	if err := db.Migrate(ctx, database); err != nil {
		lg.Base.Fatal("migrate", zap.Error(err))
	}

	if *rosterPath == "" {
		*rosterPath = cfg.RosterFile
	}
	var r *roster.Roster
	if *rosterPath == "" {
		r, err = roster.Default()
	} else {
		r, err = roster.Load(*rosterPath)
	}
	if err != nil {
		lg.Base.Fatal("roster", zap.Error(err))
	}
	if *only != "" {
		if r, err = r.Only(*only); err != nil {
			lg.Base.Fatal("roster", zap.Error(err))
		}
	}

	seeder := roster.NewSeeder(database, auth.NewBcryptHasher(cfg.BcryptCost), r, lg)
	rep, err := seeder.Seed(ctx, r, "cli")
	if err != nil {
		lg.Base.Fatal("seed roster", zap.Error(err))
	}
	lg.Sugar.Infow("roster seeded", "members", len(rep.Members), "roster_file", *rosterPath)
	out := map[string]any{"roster": rep}

	if *withMaterials {
		renderer, err := render.New(render.Options{ExportsDir: cfg.ExportsDir, Converter: cfg.PDFConverter}, lg)
		if err != nil {
			lg.Base.Fatal("renderer", zap.Error(err))
		}
		res, err := materials.NewService(database, renderer, lg).Init(ctx)
		if err != nil {
			lg.Base.Fatal("seed materials", zap.Error(err))
		}
		lg.Sugar.Infow("materials seeded", "status", res.Status, "inserted", res.Inserted)
		out["materials"] = res
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
