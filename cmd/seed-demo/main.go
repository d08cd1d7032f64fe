package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymdesk/gymdesk-backend/internal/config"
	"github.com/gymdesk/gymdesk-backend/internal/database"
	"github.com/gymdesk/gymdesk-backend/internal/logger"
	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/gymdesk/gymdesk-backend/internal/repository"
	"github.com/gymdesk/gymdesk-backend/internal/service"
)

type seedClass struct {
	name     string
	weekday  model.Weekday
	start    string
	capacity int
}

var demoClasses = []seedClass{
	{"Yoga", model.Monday, "18:00", 2},
	{"Spinning", model.Tuesday, "07:30", 15},
	{"CrossFit", model.Wednesday, "19:00", 12},
	{"Pilates", model.Thursday, "10:00", 8},
	{"Boxing", model.Friday, "20:00", 10},
	{"Functional", model.Saturday, "09:00", 20},
}

var demoMembers = []struct {
	name  string
	email string
	phone string
}{
	{"Valentina Rojas", "valentina.rojas@example.com", "+54 11 5550-1001"},
	{"Mateo Fernandez", "mateo.fernandez@example.com", "+54 11 5550-1002"},
	{"Camila Sosa", "camila.sosa@example.com", "+54 11 5550-1003"},
	{"Santiago Medina", "santiago.medina@example.com", "+54 11 5550-1004"},
	{"Lucia Herrera", "lucia.herrera@example.com", "+54 11 5550-1005"},
	{"Joaquin Castro", "joaquin.castro@example.com", "+54 11 5550-1006"},
	{"Martina Gimenez", "martina.gimenez@example.com", "+54 11 5550-1007"},
	{"Bruno Acosta", "bruno.acosta@example.com", "+54 11 5550-1008"},
	{"Julieta Molina", "julieta.molina@example.com", "+54 11 5550-1009"},
	{"Tomas Vega", "tomas.vega@example.com", "+54 11 5550-1010"},
	{"Agustina Luna", "agustina.luna@example.com", "+54 11 5550-1011"},
	{"Franco Paredes", "franco.paredes@example.com", "+54 11 5550-1012"},
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	classService := service.NewClassService(repository.NewClassRepository(pool))
	memberService := service.NewMemberService(repository.NewMemberRepository(pool))

	fmt.Println("=== Seed Demo Data ===")

	// ─── Classes ───────────────────────────────────────────────────────
	existing, err := classService.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list classes")
	}
	haveClass := make(map[string]bool, len(existing))
	for _, c := range existing {
		haveClass[c.Name] = true
	}

	createdClasses := 0
	for _, sc := range demoClasses {
		if haveClass[sc.name] {
			fmt.Printf("Class '%s' already exists, skipping\n", sc.name)
			continue
		}
		start, err := model.ParseTimeOfDay(sc.start)
		if err != nil {
			log.Fatal().Err(err).Str("class", sc.name).Msg("Invalid seed start time")
		}
		class := &model.Class{
			Name:      sc.name,
			Weekday:   sc.weekday,
			StartTime: start,
			Capacity:  sc.capacity,
		}
		if err := classService.Create(ctx, class); err != nil {
			log.Fatal().Err(err).Str("class", sc.name).Msg("Failed to create class")
		}
		createdClasses++
		fmt.Printf("Created class '%s' (%s %s, capacity %d)\n", class.Name, class.Weekday, class.StartTime, class.Capacity)
	}

	// ─── Members ───────────────────────────────────────────────────────
	createdMembers := 0
	for i, dm := range demoMembers {
		member := &model.Member{
			Name:   dm.name,
			Email:  dm.email,
			Phone:  dm.phone,
			Active: true,
		}
		if err := memberService.Create(ctx, member); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				fmt.Printf("Member '%s' already exists, skipping\n", dm.email)
				continue
			}
			log.Fatal().Err(err).Str("email", dm.email).Msg("Failed to create member")
		}
		createdMembers++
		if (i+1)%10 == 0 {
			fmt.Printf("Seeded %d/%d members...\n", i+1, len(demoMembers))
		}
	}

	fmt.Printf("\nDone. Created %d classes and %d members.\n", createdClasses, createdMembers)
}
