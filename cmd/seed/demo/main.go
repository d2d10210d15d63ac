package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/calc"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/config"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/repository"
)

// Seeds a user with a default profile, a set of max tests, and an active
// Operator program so the API has something to compile against in dev.
func main() {
	userID := flag.String("user", "", "user id to seed")
	flag.Parse()
	if *userID == "" {
		log.Fatal("usage: seed/demo -user <user-id>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	maxRepo := repository.NewMongoMaxTestRepository(db)
	profileRepo := repository.NewMongoProfileRepository(db)
	programRepo := repository.NewMongoProgramRepository(db)

	profile := domain.DefaultProfile(*userID)
	if err := profileRepo.Upsert(ctx, profile); err != nil {
		log.Fatalf("Failed to seed profile: %v", err)
	}
	fmt.Println("Seeded default profile")

	tests := []struct {
		Lift   domain.Lift
		Weight float64
		Reps   int
	}{
		{domain.LiftSquat, 285, 5},
		{domain.LiftBench, 225, 3},
		{domain.LiftDeadlift, 335, 5},
		{domain.LiftPress, 135, 5},
		{domain.LiftPullup, 45, 5},
	}

	now := time.Now()
	for _, t := range tests {
		est := calc.OneRepMax(t.Weight, t.Reps)
		test := &domain.MaxTest{
			ID:           ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
			UserID:       *userID,
			Lift:         t.Lift,
			Weight:       t.Weight,
			Reps:         t.Reps,
			TestDate:     now,
			MaxType:      profile.MaxType,
			EstimatedMax: est,
			WorkingMax:   calc.TrainingMax(est, profile.MaxType),
			UpdatedAt:    now,
		}
		if err := maxRepo.Create(ctx, test); err != nil {
			log.Fatalf("Failed to seed %s test: %v", t.Lift, err)
		}
		fmt.Printf("Seeded %s: %.0fx%d (est %.1f)\n", t.Lift, t.Weight, t.Reps, est)
	}

	program := &domain.ActiveProgram{
		UserID:     *userID,
		TemplateID: domain.TemplateOperator,
		StartDate:  now,
		Week:       1,
		Session:    1,
		Selections: map[string][]domain.Lift{
			"cluster": {domain.LiftSquat, domain.LiftBench, domain.LiftPullup},
		},
		UpdatedAt: now,
	}
	if err := programRepo.Upsert(ctx, program); err != nil {
		log.Fatalf("Failed to seed program: %v", err)
	}
	fmt.Println("Seeded operator program at week 1, session 1")
}
