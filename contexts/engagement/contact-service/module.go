package contactservice

import (
	"log/slog"

	httpadapter "estatehub/contexts/engagement/contact-service/adapters/http"
	"estatehub/contexts/engagement/contact-service/adapters/memory"
	"estatehub/contexts/engagement/contact-service/application/commands"
	"estatehub/contexts/engagement/contact-service/application/queries"
	"estatehub/contexts/engagement/contact-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Notifier   ports.AdminNotifier
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			SubmitContact: commands.SubmitContactUseCase{
				Repository: deps.Repository,
				Notifier:   deps.Notifier,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(notifier ports.AdminNotifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Notifier:   notifier,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
