package container

import (
	"errors"
	"fmt"
	"log"

	"coffee-grader/config"
	app "coffee-grader/internal/application"
	"coffee-grader/internal/domain/port"
	"coffee-grader/internal/infrastructure/detector"
	"coffee-grader/internal/infrastructure/render"
	"coffee-grader/internal/infrastructure/storage"
	"coffee-grader/internal/infrastructure/storage/sqlite"
	"coffee-grader/internal/infrastructure/vision"
	"coffee-grader/internal/infrastructure/ws"
)

// Container assembles the application services and their adapters
// from the loaded configuration.
type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService
	Blobs             port.BlobStore
	Hub               *ws.Hub

	db *sqlite.DB
}

func New(cfg *config.Config) (*Container, error) {
	fonts := render.LoadFonts(cfg.FontPath)

	var blobs port.BlobStore
	if cfg.BlobDir != "" {
		blobs = storage.NewFSBlobStore(cfg.BlobDir, cfg.PublicBaseURL)
	} else {
		blobs = storage.NewMemoryBlobStore()
	}

	var (
		history port.InspectionRepository
		db      *sqlite.DB
	)
	if cfg.DBPath != "" {
		var err error
		db, err = sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open inspection database: %w", err)
		}
		history = sqlite.NewInspectionRepository(db)
	} else {
		history = storage.NewMemoryInspectionRepository()
	}

	det, err := newDetector(cfg)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	userService := app.NewUserService(storage.NewMemoryUserRepository())
	inspectionService := app.NewInspectionService(
		userService,
		det,
		blobs,
		history,
		render.NewAnnotator(fonts),
		render.NewSummaryRenderer(fonts),
	)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
		Blobs:             blobs,
		Hub:               ws.NewHub(),
		db:                db,
	}, nil
}

// newDetector picks the backend for DETECTOR_MODE. In dev the remote
// detector degrades to the seeded mock instead of failing the pipeline.
func newDetector(cfg *config.Config) (port.Detector, error) {
	switch cfg.DetectorMode {
	case "remote":
		if cfg.DetectorEndpoint == "" {
			return nil, errors.New("DETECTOR_MODE=remote requires DETECTOR_ENDPOINT")
		}
		remote := detector.NewRemoteDetector(cfg.DetectorEndpoint, cfg.DetectorAPIKey)
		if cfg.IsDev() {
			return detector.NewFallbackDetector(remote, detector.NewMockDetector(cfg.MockSeed)), nil
		}
		return remote, nil
	case "local":
		return vision.NewLocalDetector(), nil
	case "mock":
		return detector.NewMockDetector(cfg.MockSeed), nil
	default:
		return nil, fmt.Errorf("unknown DETECTOR_MODE %q", cfg.DetectorMode)
	}
}

func (c *Container) Close() {
	c.Hub.Stop()
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}
}
