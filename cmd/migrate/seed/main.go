package main

import (
	"context"
	"log"
	"os"

	"catalog/internal/db"
	"catalog/internal/store"

	"github.com/joho/godotenv"
)

// Seeds an initial staff account so the API is usable right after the
// migrations run. Username and password come from SEED_ADMIN_USER and
// SEED_ADMIN_PASS.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	username := os.Getenv("SEED_ADMIN_USER")
	pass := os.Getenv("SEED_ADMIN_PASS")
	if username == "" || pass == "" {
		log.Fatal("SEED_ADMIN_USER and SEED_ADMIN_PASS must be set")
	}

	pool, err := db.New(os.Getenv("DB_ADDR"), 3, "15m")
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	str := store.NewStorage(pool)

	admin := &store.User{
		Username: username,
		IsStaff:  true,
	}
	if err := admin.Password.Set(pass); err != nil {
		log.Fatal(err)
	}

	if err := str.Users.Create(context.Background(), admin); err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded staff user %q (id %d)", admin.Username, admin.ID)
}
