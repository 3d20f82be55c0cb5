package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"txdash/adapters/csvdir"
	"txdash/adapters/postgres"
	"txdash/app"
	"txdash/internal"
	"txdash/internal/config"
	"txdash/internal/errors"
	"txdash/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	Source   ports.DatasetSource
	Loader   *app.DatasetLoader
	Renderer *app.SectionRenderer
	Service  *app.DashboardService

	logger *internal.Logger
}

// New builds the container for cfg. The postgres source connects eagerly so a
// bad DATABASE_URL fails at startup.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		logger: internal.DefaultLogger,
	}

	if err := c.initSource(); err != nil {
		return nil, err
	}

	c.Loader = app.NewDatasetLoader(c.Source)
	c.Renderer = app.NewSectionRenderer(app.RenderOptions{
		HistogramBins: cfg.Render.HistogramBins,
		PreviewRows:   cfg.Render.PreviewRows,
	})
	c.Service = app.NewDashboardService(c.Loader, c.Renderer)
	return c, nil
}

func (c *Container) initSource() error {
	switch c.Config.Data.Source {
	case config.SourcePostgres:
		db, err := sqlx.Connect("postgres", c.Config.Database.URL)
		if err != nil {
			return errors.DatabaseError("failed to connect to database", err)
		}
		c.DB = db
		c.Source = postgres.NewDatasetSource(db, c.Config.Database.Schema)
	default:
		c.Source = csvdir.NewDirectorySource(c.Config.Data.Dir)
	}
	c.logger.Info("[Container] Dataset source: %s", c.Source.Describe())
	return nil
}

// Load reads every dataset up front; the dashboard refuses to start without them
func (c *Container) Load(ctx context.Context) error {
	_, err := c.Loader.Load(ctx)
	return err
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
