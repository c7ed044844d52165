package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pankajk/Wound-Care/internal/analysis"
	"github.com/pankajk/Wound-Care/internal/history"
	"github.com/pankajk/Wound-Care/internal/imaging"
)

// ErrAnalysisInFlight is returned when a submission arrives while another analysis is
// still running. Only one submission may be in flight at a time.
var ErrAnalysisInFlight = errors.New("an analysis is already in progress")

// AnalysisClient is the remote-API surface the core depends on.
type AnalysisClient interface {
	Health(ctx context.Context) error
	Analyze(ctx context.Context, filename, contentType string, image []byte) (*analysis.Result, error)
}

// ImageUpload is a transient submission: one image with its declared type. It exists
// only for the duration of a single analysis and is never persisted.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CoreService wires the analysis client and the history store together and drives the
// submit lifecycle: validate, submit, classify, record.
type CoreService struct {
	config *ServiceConfig
	client AnalysisClient
	store  *history.Store

	submitMu sync.Mutex
}

func NewCoreService(config *ServiceConfig) *CoreService {
	repository, err := history.NewRepository(config.History.Type, config.History.ConnectionString)
	if err != nil {
		slog.Error("failed to initialize history store", "error", err)
		panic(err)
	}

	store := history.NewStore(repository, config.History.Capacity)
	store.Load(context.Background())

	client := analysis.NewClient(
		config.AnalysisAPI.BaseURL,
		time.Duration(config.AnalysisAPI.TimeoutSeconds)*time.Second)

	return newCoreService(config, client, store)
}

func newCoreService(config *ServiceConfig, client AnalysisClient, store *history.Store) *CoreService {
	return &CoreService{
		config: config,
		client: client,
		store:  store,
	}
}

// CheckServiceHealth probes the remote API. Failure is non-fatal; callers surface a
// warning and keep all other operations available.
func (service *CoreService) CheckServiceHealth(ctx context.Context) error {
	if err := service.client.Health(ctx); err != nil {
		slog.Warn("CheckServiceHealth: analysis service unavailable", "error", err)
		return err
	}
	return nil
}

// AnalyzeImage runs one full submission. The upload is validated before any network
// call; a non-image yields a ValidationError with no request issued. On success a
// history entry is appended. The single-flight guard is released on every exit path.
func (service *CoreService) AnalyzeImage(ctx context.Context, upload ImageUpload) (*analysis.Result, error) {
	if !service.submitMu.TryLock() {
		return nil, ErrAnalysisInFlight
	}
	defer service.submitMu.Unlock()

	if err := imaging.ValidateImage(upload.ContentType, upload.Data); err != nil {
		slog.Warn("AnalyzeImage: rejected upload", "filename", upload.Filename, "error", err)
		return nil, &analysis.ValidationError{Reason: err.Error()}
	}

	result, err := service.client.Analyze(ctx, upload.Filename, upload.ContentType, upload.Data)
	if err != nil {
		return nil, err
	}

	for _, partial := range result.PartialErrors() {
		slog.Warn("AnalyzeImage: partial result", "filename", upload.Filename, "error", partial)
	}

	if result.Deepskin != nil && result.Deepskin.Success {
		service.recordHistory(ctx, upload, result)
	} else {
		slog.Warn("AnalyzeImage: deepskin sub-result failed; not recorded in history",
			"filename", upload.Filename, "error", result.Deepskin.ErrorMessage())
	}

	return result, nil
}

func (service *CoreService) recordHistory(ctx context.Context, upload ImageUpload, result *analysis.Result) {
	thumbnail, err := imaging.Thumbnail(upload.Data, service.config.ThumbnailWidth)
	if err != nil {
		// The entry is still worth keeping without its preview.
		slog.Warn("recordHistory: failed to build thumbnail", "filename", upload.Filename, "error", err)
		thumbnail = nil
	}

	severity := result.Deepskin.EffectiveSeverity()
	entry := history.NewEntry(result.Score(), severity.Level, thumbnail)
	service.store.Append(ctx, entry)

	slog.Info("recordHistory: analysis recorded",
		"id", entry.ID,
		"pwat_score", entry.Score,
		"severity", entry.SeverityLabel)
}

// History exposes the bounded analysis-history store.
func (service *CoreService) History() *history.Store {
	return service.store
}

// Config returns the loaded service configuration.
func (service *CoreService) Config() *ServiceConfig {
	return service.config
}

func (service *CoreService) Close() error {
	return service.store.Close()
}
