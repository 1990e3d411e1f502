package main

import (
	"go.uber.org/fx"

	"github.com/readnext/readnext/internal/components/favorite"
	"github.com/readnext/readnext/internal/components/recommend"
	"github.com/readnext/readnext/internal/components/user"
	"github.com/readnext/readnext/internal/server"
	"github.com/readnext/readnext/internal/shared/config"
	"github.com/readnext/readnext/internal/shared/database"
	"github.com/readnext/readnext/internal/shared/llm"
	"github.com/readnext/readnext/internal/shared/logging"
	"github.com/readnext/readnext/internal/shared/token"
	"github.com/readnext/readnext/internal/shared/vector"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			database.NewPgxPool,
			vector.NewClient,
			llm.NewClient,
			token.NewIssuer,
			user.NewRepo,
			user.NewService,
			user.NewRouter,
			favorite.NewRepo,
			favorite.NewService,
			favorite.NewRouter,
			recommend.NewService,
			recommend.NewRouter,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			server.NewServer,
		),
		fx.Invoke((*server.Server).Start),
	).Run()
}
