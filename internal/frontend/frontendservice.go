package frontend

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pankajk/Wound-Care/internal/analysis"
	"github.com/pankajk/Wound-Care/internal/core"
	"github.com/pankajk/Wound-Care/internal/history"
	"github.com/pankajk/Wound-Care/internal/imaging"
)

const (
	MainPageName = "index.html"
	mimePNG      = "image/png"
	iconSize     = 64
)

type FrontendService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

func NewFrontendService(config *core.ServiceConfig, coreService *core.CoreService) *FrontendService {
	return &FrontendService{
		coreService: coreService,
		config:      config,
	}
}

// rootRedirectHandler redirects root path to index.html
func (service *FrontendService) rootRedirectHandler(ctx echo.Context) error {
	return ctx.Redirect(http.StatusMovedPermanently, "/"+MainPageName)
}

func (service *FrontendService) SetRoutes(e *echo.Echo) {
	// Create template renderer
	e.Renderer = &Template{
		templates: template.Must(template.New("").ParseFS(assetsFS, viewsPattern)),
	}

	e.GET("/", service.rootRedirectHandler) // Redirect root to index.html
	e.GET("/"+MainPageName, service.indexHandler)
	e.GET("/probe", service.probeHandler)

	e.POST("/htmx/analyze", service.htmxAnalyzeHandler)
	e.GET("/htmx/health", service.htmxHealthHandler)

	// Routes for listing history and re-previewing past analyses
	e.GET("/htmx/history", service.htmxHistoryHandler)
	e.GET("/htmx/history/:id", service.htmxHistoryPreviewHandler)
	e.GET("/htmx/history/:id/thumbnail", service.htmxHistoryThumbnailHandler)

	// Favicon routes
	e.GET("/icon.svg", service.iconHandler)
	e.GET("/icon.png", service.iconPNGHandler)
}

// indexView carries everything the main page needs on first render.
type indexView struct {
	History []historyItemView
}

// analyzeView is the analyze response: the result fragment plus an out-of-band
// history refresh.
type analyzeView struct {
	Result  ResultView
	History []historyItemView
}

type historyItemView struct {
	ID            int64
	CreatedAt     string
	Score         string
	SeverityLabel string
	HasThumbnail  bool
}

func (service *FrontendService) indexHandler(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, MainPageName, indexView{
		History: service.buildHistoryItems(),
	})
}

func (service *FrontendService) probeHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "ok")
}

func (service *FrontendService) htmxAnalyzeHandler(ctx echo.Context) error {
	file, err := ctx.FormFile("image")
	if err != nil {
		slog.Error("htmxAnalyzeHandler: failed to get uploaded file",
			"status", http.StatusBadRequest, "error", err)
		return ctx.String(http.StatusBadRequest, "No image selected")
	}

	src, err := file.Open()
	if err != nil {
		slog.Error("htmxAnalyzeHandler: failed to open uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return ctx.String(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("htmxAnalyzeHandler: failed to close uploaded file reader", "error", cerr, "filename", file.Filename)
		}
	}()

	image, err := io.ReadAll(src)
	if err != nil {
		slog.Error("htmxAnalyzeHandler: failed to read uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return ctx.String(http.StatusInternalServerError, "Failed to read uploaded file")
	}

	result, err := service.coreService.AnalyzeImage(ctx.Request().Context(), core.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        image,
	})
	if err != nil {
		return service.analyzeErrorResponse(ctx, file.Filename, err)
	}

	service.setNoCache(ctx)

	return ctx.Render(http.StatusOK, "results.html", analyzeView{
		Result:  BuildResultView(result),
		History: service.buildHistoryItems(),
	})
}

// analyzeErrorResponse maps the analysis error taxonomy onto transient user-visible
// messages. The page shows the response text as a toast; nothing here is fatal.
func (service *FrontendService) analyzeErrorResponse(ctx echo.Context, filename string, err error) error {
	var validationErr *analysis.ValidationError
	var serverErr *analysis.ServerError
	var networkErr *analysis.NetworkError

	switch {
	case errors.As(err, &validationErr):
		slog.Warn("htmxAnalyzeHandler: rejected upload",
			"status", http.StatusBadRequest, "filename", filename, "error", err)
		return ctx.String(http.StatusBadRequest, "Please select an image file")
	case errors.Is(err, core.ErrAnalysisInFlight):
		slog.Warn("htmxAnalyzeHandler: submission while busy", "filename", filename)
		return ctx.String(http.StatusConflict, "An analysis is already in progress")
	case errors.As(err, &serverErr):
		slog.Error("htmxAnalyzeHandler: analysis service error",
			"status", http.StatusBadGateway, "upstream_status", serverErr.StatusCode, "filename", filename)
		return ctx.String(http.StatusBadGateway,
			fmt.Sprintf("Analysis failed: server returned status %d", serverErr.StatusCode))
	case errors.As(err, &networkErr):
		slog.Error("htmxAnalyzeHandler: analysis service unreachable",
			"status", http.StatusBadGateway, "filename", filename, "error", err)
		return ctx.String(http.StatusBadGateway, "Analysis service could not be reached")
	default:
		slog.Error("htmxAnalyzeHandler: analysis failed",
			"status", http.StatusInternalServerError, "filename", filename, "error", err)
		return ctx.String(http.StatusInternalServerError, "Analysis failed unexpectedly")
	}
}

func (service *FrontendService) htmxHealthHandler(ctx echo.Context) error {
	service.setNoCache(ctx)

	if err := service.coreService.CheckServiceHealth(ctx.Request().Context()); err != nil {
		return ctx.HTML(http.StatusOK,
			`<span class="health-badge health-down">Analysis service unavailable</span>`)
	}
	return ctx.HTML(http.StatusOK,
		`<span class="health-badge health-up">Analysis service online</span>`)
}

func (service *FrontendService) htmxHistoryHandler(ctx echo.Context) error {
	// Prevent caching so the latest entries are always shown
	service.setNoCache(ctx)

	return ctx.Render(http.StatusOK, "history.html", service.buildHistoryItems())
}

func (service *FrontendService) htmxHistoryPreviewHandler(ctx echo.Context) error {
	entry, ok := service.lookupEntry(ctx)
	if !ok {
		return ctx.String(http.StatusNotFound, "History entry not available")
	}

	service.setNoCache(ctx)

	return ctx.Render(http.StatusOK, "preview.html", historyItemView{
		ID:            entry.ID,
		CreatedAt:     entry.CreatedAt.Format("2006-01-02 15:04"),
		Score:         fmt.Sprintf("%.1f", entry.Score),
		SeverityLabel: entry.SeverityLabel,
		HasThumbnail:  len(entry.Thumbnail) > 0,
	})
}

func (service *FrontendService) htmxHistoryThumbnailHandler(ctx echo.Context) error {
	entry, ok := service.lookupEntry(ctx)
	if !ok || len(entry.Thumbnail) == 0 {
		slog.Warn("htmxHistoryThumbnailHandler: thumbnail not available",
			"status", http.StatusNotFound, "id", ctx.Param("id"))
		return ctx.String(http.StatusNotFound, "Thumbnail not available")
	}

	service.setNoCache(ctx)

	return ctx.Blob(http.StatusOK, mimePNG, entry.Thumbnail)
}

func (service *FrontendService) lookupEntry(ctx echo.Context) (history.Entry, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		slog.Warn("lookupEntry: invalid history id", "id", ctx.Param("id"), "error", err)
		return history.Entry{}, false
	}
	return service.coreService.History().Get(id)
}

func (service *FrontendService) buildHistoryItems() []historyItemView {
	entries := service.coreService.History().Entries()

	items := make([]historyItemView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyItemView{
			ID:            entry.ID,
			CreatedAt:     entry.CreatedAt.Format("2006-01-02 15:04"),
			Score:         fmt.Sprintf("%.1f", entry.Score),
			SeverityLabel: entry.SeverityLabel,
			HasThumbnail:  len(entry.Thumbnail) > 0,
		})
	}
	return items
}

func (service *FrontendService) setNoCache(ctx echo.Context) {
	ctx.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	ctx.Response().Header().Set("Pragma", "no-cache")
	ctx.Response().Header().Set("Expires", "0")
}

func (service *FrontendService) iconHandler(ctx echo.Context) error {
	data, err := assetsFS.ReadFile("views/icon.svg")
	if err != nil {
		slog.Error("iconHandler: failed to read icon.svg", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load icon")
	}
	// Cache for 7 days
	ctx.Response().Header().Set("Cache-Control", "public, max-age=604800, immutable")
	return ctx.Blob(http.StatusOK, "image/svg+xml", data)
}

func (service *FrontendService) iconPNGHandler(ctx echo.Context) error {
	data, err := assetsFS.ReadFile("views/icon.svg")
	if err != nil {
		slog.Error("iconPNGHandler: failed to read icon.svg", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load icon")
	}
	rendered, err := imaging.RenderSVGToPNG(data, iconSize, iconSize)
	if err != nil {
		slog.Error("iconPNGHandler: failed to rasterize icon", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to render icon")
	}
	ctx.Response().Header().Set("Cache-Control", "public, max-age=604800, immutable")
	return ctx.Blob(http.StatusOK, mimePNG, rendered)
}
