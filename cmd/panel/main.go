package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/penpot-ir/panel"
	"github.com/penpot-ir/panel/adapters/hasher"
	"github.com/penpot-ir/panel/config"
	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/internal/logger"
	"go.uber.org/zap"
)

const usage = `usage: panel [-config path] <command>

commands:
  serve                                  run the HTTP server (default)
  migrate                                apply database migrations and exit
  seed                                   load demo accounts, plans and services into an empty database
  create-user -email -password -name -role   provision an account
  hash-password -password                print a bcrypt hash
`

func main() {
	cfgPath := flag.String("config", envOr("APP_CONFIG", "configs/config.yaml"), "path to the YAML config file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	command := "serve"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if command == "hash-password" {
		os.Exit(hashPassword(cfg, args))
	}

	log, err := logger.New(cfg.Log.Level, cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := panel.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("create panel app", zap.Error(err))
	}
	defer app.Close()

	switch command {
	case "serve":
		if err := app.Run(ctx); err != nil {
			log.Error("panel server failed", zap.Error(err))
		}
	case "migrate":
		log.Info("database is up to date")
	case "seed":
		seeded, err := app.Seed(ctx)
		if err != nil {
			log.Error("seed database", zap.Error(err))
			return
		}
		if !seeded {
			log.Info("database already has users; seed skipped")
			return
		}
		log.Info("database seeded")
	case "create-user":
		createUser(ctx, app, log, args)
	default:
		flag.Usage()
		log.Error("unknown command", zap.String("command", command))
	}
}

func createUser(ctx context.Context, app *panel.App, log *zap.Logger, args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "plain password")
	name := fs.String("name", "", "display name")
	role := fs.String("role", string(core.RoleUser), "admin or user")
	_ = fs.Parse(args)

	if *email == "" || *password == "" || *name == "" {
		log.Error("create-user needs -email, -password and -name")
		return
	}
	if !core.Role(*role).Valid() {
		log.Error("unknown role", zap.String("role", *role))
		return
	}

	record, err := app.CreateUser(ctx, *email, *password, *name, core.Role(*role))
	if err != nil {
		log.Error("create user", zap.Error(err))
		return
	}
	log.Info("user created", zap.Int64("user_id", record.ID), zap.String("email", record.Email))
}

func hashPassword(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	password := fs.String("password", "", "plain password")
	_ = fs.Parse(args)

	if strings.TrimSpace(*password) == "" {
		fmt.Fprintln(os.Stderr, "use -password to pass plain password")
		return 2
	}

	hash, err := hasher.NewBcryptHasher(cfg.Auth.BcryptCost).Hash(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		return 1
	}
	fmt.Println(hash)
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
