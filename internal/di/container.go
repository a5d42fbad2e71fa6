package di

import (
	"context"
	"time"

	announcementService "github.com/dkosarev/discord-announce-relay/internal/modules/announcement/service"
	mirrorRepo "github.com/dkosarev/discord-announce-relay/internal/modules/mirror/repository"
	mirrorService "github.com/dkosarev/discord-announce-relay/internal/modules/mirror/service"
	"github.com/dkosarev/discord-announce-relay/internal/shared/config"
	"github.com/dkosarev/discord-announce-relay/internal/transport/discord"
	httpServer "github.com/dkosarev/discord-announce-relay/internal/transport/http"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Mirror Repository
	do.Provide(injector, func(i do.Injector) (mirrorRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := mirrorRepo.NewFileStorage(cfg.MirrorPath)
		if err != nil {
			return nil, oops.With("mirror_path", cfg.MirrorPath, "context", "failed to initialize mirror repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Mirror Service
	do.Provide(injector, func(i do.Injector) (*mirrorService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[mirrorRepo.Repository](i)
		return mirrorService.New(repo, time.Duration(cfg.RequestTimeout)*time.Second), nil
	})

	// Register Discord Client
	do.Provide(injector, func(i do.Injector) (*discord.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return discord.New(cfg.DiscordAPIURL, cfg.DiscordBotToken, time.Duration(cfg.RequestTimeout)*time.Second), nil
	})

	// Register Announcement Service
	do.Provide(injector, func(i do.Injector) (*announcementService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		discordClient := do.MustInvoke[*discord.Client](i)
		mirror := do.MustInvoke[*mirrorService.Service](i)
		return announcementService.New(cfg, discordClient, mirror), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		announcements := do.MustInvoke[*announcementService.Service](i)
		return httpServer.New(cfg, announcements), nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server if it exists
	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		return server.Shutdown(ctx)
	}

	return nil
}
