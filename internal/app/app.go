package app

import (
	"context"
	"fmt"

	"github.com/gfdmit/kanban/config"
	"github.com/gfdmit/kanban/internal/auth"
	v1 "github.com/gfdmit/kanban/internal/handlers/http/v1"
	"github.com/gfdmit/kanban/internal/httpserver"
	"github.com/gfdmit/kanban/internal/repository/postgres"
	"github.com/gfdmit/kanban/internal/service"
)

func Run(conf config.Config) error {
	ctx := context.Background()

	repo, err := postgres.New(conf.Postgres)
	if err != nil {
		return fmt.Errorf("error when setting up repository: %v", err)
	}

	svc := service.New(repo)

	if conf.App.Seed {
		if err := svc.SeedDemo(ctx); err != nil {
			return fmt.Errorf("error when seeding demo data: %v", err)
		}
	}

	ident, err := auth.NewRedisSessions(conf.Redis)
	if err != nil {
		return fmt.Errorf("error when setting up sessions: %v", err)
	}

	handler, err := v1.New(svc, ident)
	if err != nil {
		return fmt.Errorf("error when setting up handler: %v", err)
	}

	httpserver := httpserver.New(conf.HTTPServer, handler)

	return httpserver.Run(ctx)
}
