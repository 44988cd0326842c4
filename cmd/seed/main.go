package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"promptbase/internal/config"
	"promptbase/internal/domain/models"
	"promptbase/internal/repository/postgres"
)

// Fixture is the YAML shape of a seed file: users owning folders owning
// prompts. User ids must be existing auth user uuids.
type Fixture struct {
	Users []struct {
		ID      string `yaml:"id"`
		Folders []struct {
			Name    string `yaml:"name"`
			Prompts []struct {
				Title    string `yaml:"title"`
				Content  string `yaml:"content"`
				Image    string `yaml:"image"`
				IsPublic bool   `yaml:"is_public"`
			} `yaml:"prompts"`
		} `yaml:"folders"`
	} `yaml:"users"`
}

func main() {
	fixtureFile := flag.String("file", "fixtures.yaml", "Path to the YAML fixture file")
	clearData := flag.Bool("clear-data", false, "Delete all folders and prompts before seeding")
	schemaOnly := flag.Bool("schema-only", false, "Only ensure the schema, don't seed data")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: refusing to clear data in the production environment")
	}
	if cfg.SupabaseDBURL == "" {
		log.Fatalf("SUPABASE_DB_URL is required for seeding")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("schema ensured", "prefix", cfg.TablePrefix)

	if *clearData {
		// Prompts go first only for clarity; the folder delete would cascade.
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", tables.Prompts)); err != nil {
			log.Fatalf("Failed to clear prompts: %v", err)
		}
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", tables.Folders)); err != nil {
			log.Fatalf("Failed to clear folders: %v", err)
		}
		logger.Info("data cleared")
	}

	if *schemaOnly {
		return
	}

	data, err := os.ReadFile(*fixtureFile)
	if err != nil {
		log.Fatalf("Failed to read fixture file: %v", err)
	}
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		log.Fatalf("Failed to parse fixture file: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	promptRepo := postgres.NewPromptRepository(repoConfig)

	var folderCount, promptCount int
	for _, user := range fixture.Users {
		for _, f := range user.Folders {
			folder, err := folderRepo.Insert(ctx, &models.CreateFolderRequest{
				Name:    f.Name,
				OwnerID: user.ID,
			})
			if err != nil {
				log.Fatalf("Failed to seed folder %q: %v", f.Name, err)
			}
			folderCount++

			for _, p := range f.Prompts {
				if _, err := promptRepo.Insert(ctx, &models.PromptRecord{
					Title:    p.Title,
					Content:  p.Content,
					FolderID: folder.ID,
					Image:    p.Image,
					IsPublic: p.IsPublic,
					OwnerID:  user.ID,
				}); err != nil {
					log.Fatalf("Failed to seed prompt %q: %v", p.Title, err)
				}
				promptCount++
			}
		}
	}

	logger.Info("seeding complete", "folders", folderCount, "prompts", promptCount)
}
