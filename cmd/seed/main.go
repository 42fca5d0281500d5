// seed inserts a verified demo user with a profile and a handful of
// tracked applications into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"applytrack/api/internal/infrastructure/postgres"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "demo@applytrack.local"
	seedPassword = "demo-password-1"
)

type jobSpec struct {
	company      string
	title        string
	status       string
	fit          int
	progress     int
	nextAction   string
	highPriority bool
}

var jobs = []jobSpec{
	{"Fathom Analytics", "Backend Engineer", "applied", 82, 10, "Follow up with recruiter", false},
	{"Northwind Labs", "Platform Engineer", "interviewing", 91, 55, "Prepare system design round", true},
	{"Lumina Health", "Go Developer", "interviewing", 74, 40, "Send take-home solution", false},
	{"Orbital Systems", "Senior Software Engineer", "offers", 88, 95, "Review offer letter", true},
	{"Cobalt Works", "Infrastructure Engineer", "rejected", 60, 100, "", false},
	{"Driftline", "API Engineer", "applied", 70, 5, "Tailor resume", false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := postgres.Migrate(ctx, dbURL); err != nil {
		pool.Close()
		log.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		pool.Close()
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user, already verified so login works immediately
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, password_hash, is_verified)
		VALUES ($1, $2, 'Demo', 'User', $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id`,
		uuid.NewString(), seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		pool.Close()
		log.Fatalf("upsert user: %v", err)
	}

	var profileID string
	err = pool.QueryRow(ctx, `
		INSERT INTO profiles (id, user_id, professional_title, location, summary)
		VALUES ($1, $2, 'Software Engineer', 'Berlin, DE', 'Backend engineer focused on Go and distributed systems.')
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id`,
		uuid.NewString(), userID,
	).Scan(&profileID)
	if err != nil {
		pool.Close()
		log.Fatalf("upsert profile: %v", err)
	}

	if _, err := pool.Exec(ctx, `UPDATE users SET profile_id = $1 WHERE id = $2`, profileID, userID); err != nil {
		pool.Close()
		log.Fatalf("link profile: %v", err)
	}

	// Idempotent re-runs: wipe and reinsert the demo user's applications
	if _, err := pool.Exec(ctx, `DELETE FROM jobs WHERE user_id = $1`, userID); err != nil {
		pool.Close()
		log.Fatalf("clear jobs: %v", err)
	}

	appliedAt := time.Now().AddDate(0, 0, -14)
	for i, spec := range jobs {
		_, err := pool.Exec(ctx, `
			INSERT INTO jobs (
				id, user_id, company, title, status,
				fit, progress, next_action, high_priority, applied_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.NewString(), userID, spec.company, spec.title, spec.status,
			spec.fit, spec.progress, spec.nextAction, spec.highPriority,
			appliedAt.AddDate(0, 0, i*2),
		)
		if err != nil {
			pool.Close()
			log.Fatalf("insert job %s: %v", spec.company, err)
		}
	}

	pool.Close()

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s\n", seedEmail)
	fmt.Printf("  Password: %s\n", seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Jobs:     %d\n", len(jobs))
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — sign in:")
	fmt.Printf("    curl -s -X POST localhost:8080/api/auth/login -H 'Content-Type: application/json' -d '{\"email\":%q,\"password\":%q}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list applications with the returned token:")
	fmt.Println("    curl -s localhost:8080/api/jobs -H \"Authorization: Bearer $TOKEN\"")
}
