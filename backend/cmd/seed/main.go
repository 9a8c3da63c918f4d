package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"post-spot/backend/internal/content"
	"post-spot/backend/internal/engagement"
	"post-spot/backend/internal/graph"
	"post-spot/backend/internal/identity"
	"post-spot/backend/pkg/config"
	apperrors "post-spot/backend/pkg/errors"
	"post-spot/backend/pkg/logger"
)

type demoUser struct {
	email     string
	firstName string
	lastName  string
	posts     []string
}

var demoUsers = []demoUser{
	{"ada@example.com", "Ada", "Lovelace", []string{"Notes on the analytical engine are finally up.", "Anyone up for a bernoulli numbers reading group?"}},
	{"alan@example.com", "Alan", "Turing", []string{"Can machines think? Discuss."}},
	{"grace@example.com", "Grace", "Hopper", []string{"Found an actual bug in the relay today.", "It's easier to ask forgiveness than permission."}},
	{"edsger@example.com", "Edsger", "Dijkstra", []string{"Shortest path to lunch: straight through the courtyard."}},
}

const demoPassword = "password123"

func main() {
	reset := flag.Bool("reset", false, "Delete ALL data before seeding")
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt for -reset")
	demo := flag.Bool("demo", true, "Create demo users, posts, comments and likes")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development", os.Getenv("LOG_LEVEL")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	if *reset && !*skipConfirm {
		log.Warn("This will DELETE ALL DATA from Neo4j and cannot be undone")
		fmt.Print("Are you sure you want to continue? (yes/no): ")
		var response string
		fmt.Scanln(&response)
		if response != "yes" && response != "y" {
			log.Info("Aborted.")
			os.Exit(0)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	repo := graph.NewRepository(driver, graph.WithDatabase(cfg.Neo4jDatabase))
	defer repo.Close(context.Background())

	if *reset {
		if err := repo.Reset(ctx); err != nil {
			log.Fatal("Failed to reset graph", zap.Error(err))
		}
	}

	log.Info("Creating constraints and indexes...")
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}

	if !*demo {
		log.Info("Seeding complete (schema only)")
		return
	}

	if err := seedDemo(ctx, repo, log); err != nil {
		log.Fatal("Failed to seed demo data", zap.Error(err))
	}
	log.Info("Seeding complete", zap.Int("users", len(demoUsers)))
}

// seedDemo registers the demo users and their posts concurrently, then has
// every user comment on and like the posts of the next user in the list.
func seedDemo(ctx context.Context, repo *graph.Repository, log *zap.Logger) error {
	ids := identity.NewService(repo)
	posts := content.NewService(repo)
	likes := engagement.NewService(repo)

	created := make([][]*graph.Post, len(demoUsers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, u := range demoUsers {
		g.Go(func() error {
			_, err := ids.Register(gctx, identity.RegisterInput{
				Email:     u.email,
				Password:  demoPassword,
				FirstName: u.firstName,
				LastName:  u.lastName,
			})
			switch {
			case errors.Is(err, apperrors.ErrDuplicateEmail):
				log.Info("Demo user already exists, skipping", zap.String("email", u.email))
				return nil
			case err != nil:
				return fmt.Errorf("register %s: %w", u.email, err)
			}

			for _, text := range u.posts {
				post, err := posts.CreatePost(gctx, u.email, text)
				if err != nil {
					return fmt.Errorf("post for %s: %w", u.email, err)
				}
				created[i] = append(created[i], post)
			}
			log.Info("Demo user seeded", zap.String("email", u.email), zap.Int("posts", len(u.posts)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, u := range demoUsers {
		target := created[(i+1)%len(demoUsers)]
		g.Go(func() error {
			for _, post := range target {
				if post == nil {
					continue
				}
				if _, err := posts.AddComment(gctx, post.UUID, u.email, fmt.Sprintf("Great point, says %s.", u.firstName)); err != nil {
					return err
				}
				if err := likes.Like(gctx, post.UUID, u.email); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
