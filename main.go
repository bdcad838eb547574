// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"movie-catalog/cmd"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/session"
	"movie-catalog/internal/wire"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const usage = `usage: movie-catalog <command> [flags]

commands:
  serve-mock   serve the in-memory catalog API on MOCK_PORT
  sync         fetch the catalog from API_URL and print it`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "serve-mock":
		err = serveMock(ctx, config, logger, os.Args[2:])
	case "sync":
		err = syncCatalog(ctx, config, logger, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func serveMock(ctx context.Context, config *utils.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("serve-mock", flag.ExitOnError)
	port := fs.String("port", config.Mock.Port, "port to listen on")
	seed := fs.Bool("seed", true, "load the demo catalog")
	if err := fs.Parse(args); err != nil {
		return err
	}

	router, backend := wire.MockAPI(config, logger)
	if *seed {
		adminToken := config.Mock.AdminToken
		if adminToken == "" {
			adminToken = uuid.NewString()
		}
		userToken := uuid.NewString()
		backend.SeedDemo(adminToken, userToken)
		logger.Info("Demo catalog seeded",
			zap.String("admin_token", adminToken),
			zap.String("user_token", userToken),
		)
	}

	return cmd.MockAPIServer(ctx, router, *port, logger)
}

func syncCatalog(ctx context.Context, config *utils.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	name := fs.String("as", "", "display name of the signed-in user")
	userID := fs.String("user-id", "", "id of the signed-in user")
	admin := fs.Bool("admin", false, "sign in with the admin role and load every section")
	query := fs.String("q", "", "filter movies by title and users by name or email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := wire.Wiring(config, logger)
	if err != nil {
		return err
	}

	role := entity.RoleUser
	if *admin {
		role = entity.RoleAdmin
	}
	if config.API.Token != "" {
		app.Session.Establish(session.Identity{ID: *userID, Name: *name, Role: role}, config.API.Token)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(config.API.TimeoutSecs)*time.Second*2)
	defer cancel()

	svc := app.Service
	if app.Session.IsAdmin() {
		report, err := svc.Admin.Mount(ctx)
		if err != nil {
			return err
		}
		printReport(report)
	} else if _, err := svc.Catalog.Load(ctx); err != nil {
		return fmt.Errorf("load movies: %w", err)
	}

	fmt.Println("\nMovies:")
	for _, m := range svc.Catalog.Views(*query) {
		fmt.Printf("  %-30s %-4.1f %-20s %s\n", m.Title, m.Rating, m.Director.Name, strings.Join(m.ActorNames(), ", "))
		for _, r := range m.Reviews {
			fmt.Printf("      %d/5 %s: %s\n", r.Rating, r.User.Name, r.Comment)
		}
	}

	if app.Session.IsAdmin() {
		fmt.Println("\nUsers:")
		for _, u := range svc.Users.Filter(*query) {
			fmt.Printf("  %-20s %-30s %s\n", u.Name, u.Email, u.Role)
		}
	}
	return nil
}

func printReport(report response.LoadReport) {
	fmt.Printf("Loaded in %s\n", report.Duration.Round(time.Millisecond))
	for _, s := range report.Sections {
		if s.Loaded {
			fmt.Printf("  %-10s %d\n", s.Section, s.Count)
		} else {
			fmt.Printf("  %-10s failed: %s\n", s.Section, s.Error)
		}
	}
}
