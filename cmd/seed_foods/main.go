package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/glycemic-assist/backend/config"
	"github.com/pageza/glycemic-assist/backend/internal/database"
	"github.com/pageza/glycemic-assist/backend/internal/logger"
	"github.com/pageza/glycemic-assist/backend/internal/service"
)

// dbOpener returns the database to seed
type dbOpener func() (*gorm.DB, error)

// secretLoader returns the key service tokens are signed with
type secretLoader func() (string, error)

func main() {
	if err := newRootCmd(openConfiguredDB, configuredSecret).Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Setup(cfg.Environment, cfg.LogLevel)
	return cfg, nil
}

func openConfiguredDB() (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	return db.Gorm()
}

func configuredSecret() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not configured")
	}
	return cfg.JWTSecret, nil
}

func newRootCmd(open dbOpener, secret secretLoader) *cobra.Command {
	root := &cobra.Command{
		Use:          "seed_foods",
		Short:        "Manage the reference food-nutrition dataset and API clients",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(open), newImportCmd(open), newTokenCmd(secret))
	return root
}

func newMigrateCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the dataset schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}

func newImportCmd(open dbOpener) *cobra.Command {
	var (
		file  string
		s3URI string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON dataset export, updating foods that already exist",
		Example: "  seed_foods import --file foods.json\n" +
			"  seed_foods import --s3 s3://datasets/diabetes_food_dataset.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (s3URI == "") {
				return fmt.Errorf("exactly one of --file or --s3 is required")
			}
			ctx := cmd.Context()

			var src io.ReadCloser
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open dataset: %w", err)
				}
				src = f
			} else {
				bucket, key, err := config.ParseS3URI(s3URI)
				if err != nil {
					return err
				}
				s3cfg, err := config.NewS3Config(ctx, bucket)
				if err != nil {
					return err
				}
				if src, err = s3cfg.Open(ctx, key); err != nil {
					return err
				}
			}
			defer src.Close()

			db, err := open()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db); err != nil {
				return err
			}

			result, err := service.ImportFoods(ctx, db, src)
			if err != nil {
				return err
			}
			log.Info().Int("created", result.Created).Int("updated", result.Updated).Msg("import finished")
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %d\nUpdated: %d\nSkipped: %d\n", result.Created, result.Updated, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a JSON dataset export")
	cmd.Flags().StringVar(&s3URI, "s3", "", "s3://bucket/key of a JSON dataset export")
	return cmd
}

func newTokenCmd(secret secretLoader) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Issue a service token for an API client",
		Example: "  seed_foods token --subject mobile-app --ttl 720h",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject = strings.TrimSpace(subject)
			if subject == "" {
				return errors.New("--subject must not be blank")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}

			key, err := secret()
			if err != nil {
				return err
			}
			token, err := service.NewTokenService(key, ttl).GenerateToken(subject)
			if err != nil {
				return err
			}
			log.Info().Str("subject", subject).Dur("ttl", ttl).Msg("service token issued")
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "client the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "how long the token stays valid")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
