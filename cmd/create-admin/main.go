package main

import (
	"context"
	"flag"
	"log"

	"gorm.io/gorm"

	"unimarket/internal/auth"
	"unimarket/internal/config"
	"unimarket/internal/db"
	"unimarket/internal/model"
	"unimarket/internal/repository"
)

// Creates a new admin user, or promotes an existing user to admin. Role
// changes happen only through this command, never over HTTP.
func main() {
	username := flag.String("username", "", "username for the admin")
	password := flag.String("password", "", "password (optional when promoting an existing user)")
	flag.Parse()

	if *username == "" {
		log.Fatal("usage: create-admin -username <name> [-password <password>]")
	}

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	user, err := userRepo.FindByUsername(ctx, *username)
	switch {
	case err == nil:
		log.Printf("user %s found, promoting to admin", *username)
		user.Role = model.RoleAdmin
		if *password != "" {
			hashed, err := auth.HashPassword(*password)
			if err != nil {
				log.Fatalf("hash password: %v", err)
			}
			user.PasswordHash = hashed
		}
		if err := userRepo.Update(ctx, user); err != nil {
			log.Fatalf("update user: %v", err)
		}
	case err == gorm.ErrRecordNotFound:
		if *password == "" {
			log.Fatal("password required when creating a new admin user")
		}
		hashed, err := auth.HashPassword(*password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user = &model.User{
			Username:     *username,
			PasswordHash: hashed,
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create user: %v", err)
		}
	default:
		log.Fatalf("find user: %v", err)
	}

	log.Printf("successfully configured %s as admin", *username)
}
