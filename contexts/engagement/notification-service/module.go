package notificationservice

import (
	"log/slog"

	httpadapter "estatehub/contexts/engagement/notification-service/adapters/http"
	"estatehub/contexts/engagement/notification-service/adapters/memory"
	"estatehub/contexts/engagement/notification-service/application/commands"
	"estatehub/contexts/engagement/notification-service/application/queries"
	"estatehub/contexts/engagement/notification-service/ports"
)

type Module struct {
	Handler      httpadapter.Handler
	NotifyAdmins commands.NotifyAdminsUseCase
	Store        *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Admins      ports.AdminDirectory
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Concurrency int
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			MarkRead: commands.MarkReadUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
		NotifyAdmins: commands.NotifyAdminsUseCase{
			Repository:  deps.Repository,
			Admins:      deps.Admins,
			Publisher:   deps.Publisher,
			Clock:       deps.Clock,
			IDGen:       deps.IDGen,
			Concurrency: deps.Concurrency,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(admins ports.AdminDirectory, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Admins:     admins,
		Publisher:  publisher,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
