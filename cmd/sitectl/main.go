package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	constructioncms "construction-cms"
	"construction-cms/internal/core/config"
	"construction-cms/internal/core/database"
	"construction-cms/internal/core/objectstore"
	"construction-cms/internal/storage/gormstore"
	"construction-cms/internal/storage/s3store"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "sitectl",
		Usage: "Operate the site storage backend (relational or document mode)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the yaml config file (defaults to CONFIG_PATH)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create tables (relational) or the bucket and empty collections (document)",
				Action: migrateCommand,
			},
			{
				Name:   "check",
				Usage:  "Verify the configured backend is reachable",
				Action: checkCommand,
			},
			{
				Name:   "seed",
				Usage:  "Load demo site content into the configured backend",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "admin-email",
						Usage: "Email for the seeded admin account",
						Value: "admin@example.com",
					},
					&cli.StringFlag{
						Name:  "admin-password",
						Usage: "Initial admin password (stored bcrypt-hashed)",
						Value: "changeme",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}
	log, cleanup := constructioncms.NewLogger(cfg.Log)
	return cfg, log, cleanup, nil
}

func migrateCommand(c *cli.Context) error {
	cfg, log, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	switch cfg.Storage.Mode {
	case config.ModeRelational:
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.Storage.DB.Driver,
			DSN:                cfg.Storage.DB.DSN,
			MaxOpenConns:       cfg.Storage.DB.MaxOpenConns,
			MaxIdleConns:       cfg.Storage.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.Storage.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.Storage.DB.LogLevel,
		})
		if err != nil {
			return err
		}
		if err := gormstore.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("automigrate done", zap.String("driver", cfg.Storage.DB.Driver))
	case config.ModeDocument:
		client, err := objectstore.New(objectstore.Opts{
			Bucket:    cfg.Storage.S3.Bucket,
			Region:    cfg.Storage.S3.Region,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Endpoint:  cfg.Storage.S3.Endpoint,
			UseSSL:    cfg.Storage.S3.UseSSL,
			RateRPS:   cfg.Storage.S3.RateRPS,
		})
		if err != nil {
			return err
		}
		if err := client.EnsureBucket(c.Context); err != nil {
			return err
		}
		var opts []s3store.Option
		if cfg.Storage.S3.KeyPrefix != "" {
			opts = append(opts, s3store.WithKeyPrefix(cfg.Storage.S3.KeyPrefix))
		}
		if err := s3store.Migrate(c.Context, client, opts...); err != nil {
			return err
		}
		log.Info("collections initialized", zap.String("bucket", cfg.Storage.S3.Bucket))
	}
	return nil
}

func checkCommand(c *cli.Context) error {
	cfg, log, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := constructioncms.Open(&cfg.Storage, log)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Ping(c.Context); err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	log.Info("backend reachable", zap.String("mode", cfg.Storage.Mode))
	return nil
}

func seedCommand(c *cli.Context) error {
	cfg, log, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := constructioncms.Open(&cfg.Storage, log)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := seed(c.Context, st, c.String("admin-email"), c.String("admin-password")); err != nil {
		return err
	}
	log.Info("seed complete", zap.String("mode", cfg.Storage.Mode))
	return nil
}
