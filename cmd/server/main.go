// Command server runs the authoritative survival-world process: it
// opens the store, seeds static data, starts the scheduled-reducer
// families, and serves the reducer/snapshot HTTP API — the same
// "setupLogging, initDB, go background loops, build mux, ListenAndServe"
// sequence as the teacher's main().
package main

import (
	"context"
	"database/sql"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitadek/survival/internal/config"
	"github.com/vitadek/survival/internal/httpapi"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/logging"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/resource"
	"github.com/vitadek/survival/internal/scheduler"
	"github.com/vitadek/survival/internal/store"
	"github.com/vitadek/survival/internal/structure"
	"github.com/vitadek/survival/internal/worldgen"
)

const worldSeed = "ownworld-genesis"

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.LogDir)
	if err != nil {
		panic(err)
	}
	log.Info.Println("SURVIVAL SERVER BOOT SEQUENCE")
	log.Info.Printf("db=%s driver=%s addr=%s", cfg.DBPath, cfg.DBDriver, cfg.HTTPAddr)

	db, err := store.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Error.Fatalf("opening store: %v", err)
	}
	defer db.Close()

	if err := seedWorld(db); err != nil {
		log.Error.Fatalf("seeding world: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	families := resourceRespawnFamilies(db, cfg)
	families = append(families,
		scheduler.Family{Name: "player-stat-decay", Interval: cfg.TickInterval, Run: func() error {
			return player.Decay(db, cfg.TickInterval, time.Now())
		}},
	)
	go scheduler.Run(ctx, log, families)

	srv := httpapi.New(db, log, time.Now().UnixNano())
	httpServer := srv.NewHTTPServer(cfg.HTTPAddr)

	go func() {
		log.Info.Printf("listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil {
			log.Error.Printf("server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info.Println("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

// seedWorld idempotently populates item_definition, repair_cost,
// world_tile and resource_node on first boot, matching the teacher's
// initDB's own "create schema, seed if empty" sequence, in a single
// transaction so a failure partway through doesn't half-seed.
func seedWorld(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := items.SeedItems(tx); err != nil {
		return err
	}
	if err := structure.SeedRepairCosts(tx); err != nil {
		return err
	}
	if err := worldgen.SeedWorld(tx, worldSeed); err != nil {
		return err
	}
	tiles, err := worldgen.LoadAll(tx)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(1))
	if err := resource.SeedNodes(tx, tiles, rng); err != nil {
		return err
	}
	return tx.Commit()
}

// resourceRespawnFamilies builds one scheduler.Family per harvestable
// kind, each sweeping its own DueForRespawn rows (§4.5 closing
// paragraph), generalizing the teacher's single startHeartbeatLoop into
// the per-family cadence §10.6 calls for.
func resourceRespawnFamilies(db *sql.DB, cfg config.Config) []scheduler.Family {
	kinds := []model.ResourceKind{
		model.ResourceCorn, model.ResourceMushroom, model.ResourceStone, model.ResourceTree,
		model.ResourceHemp, model.ResourcePotato, model.ResourcePumpkin,
	}
	families := make([]scheduler.Family, 0, len(kinds))
	for _, kind := range kinds {
		kind := kind
		families = append(families, scheduler.Family{
			Name:     "resource-respawn-" + string(kind),
			Interval: cfg.RespawnInterval,
			Run: func() error {
				tx, err := db.Begin()
				if err != nil {
					return err
				}
				if err := resource.Tick(resource.Repo{Tx: tx}, kind, time.Now()); err != nil {
					tx.Rollback()
					return err
				}
				return tx.Commit()
			},
		})
	}
	return families
}
