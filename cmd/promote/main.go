// Command promote sets a user's role to superuser by email address.
// It is used to bootstrap the first superuser account.
//
// Usage:
//
//	promote --email=user@example.com
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	userrepo "armatupc/internal/adapter/postgres/user"
	"armatupc/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of user to promote to superuser")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := userrepo.New(pool)

	user, err := repo.GetByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("look up user %q: %v", *email, err)
	}
	if user.Role == domain.UserRoleSuperuser {
		fmt.Printf("User %q is already a superuser.\n", *email)
		return
	}

	if _, err := repo.UpdateRole(ctx, user.ID, domain.UserRoleSuperuser); err != nil {
		log.Fatalf("update role: %v", err)
	}

	fmt.Printf("User %q promoted to superuser.\n", *email)
}
