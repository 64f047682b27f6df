package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-metrics/internal/logging"
	"github.com/iliyamo/court-metrics/internal/middleware"
	"github.com/iliyamo/court-metrics/internal/model"
	"github.com/iliyamo/court-metrics/internal/queue"
	"github.com/iliyamo/court-metrics/internal/repository"
	queue_publisher "github.com/iliyamo/court-metrics/internal/service"
	"github.com/iliyamo/court-metrics/internal/stats"
)

// MatchHandler serves the signed-in user's matches.  Every route sits
// behind SessionAuth, so the owner always comes from the cookie.
type MatchHandler struct {
	Matches repository.MatchStore
	Events  queue_publisher.Publisher
	Log     logging.Logger
}

func NewMatchHandler(matches repository.MatchStore, events queue_publisher.Publisher, log logging.Logger) *MatchHandler {
	return &MatchHandler{Matches: matches, Events: events, Log: log}
}

type matchesResp struct {
	Matches []model.MatchRecord `json:"matches"`
}

type rejectedRow struct {
	Row    int                    `json:"row"`
	Fields stats.ValidationErrors `json:"fields"`
}

type importResp struct {
	Imported []model.MatchRecord `json:"imported"`
	Rejected []rejectedRow       `json:"rejected"`
}

// List returns the user's matches ordered by creation time.
func (h *MatchHandler) List(c echo.Context) error {
	email := middleware.UserEmail(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Matches.ListForUser(ctx, email)
	if err != nil {
		h.Log.Error(ctx, "list matches failed", "user", email, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to load matches"})
	}
	return c.JSON(http.StatusOK, matchesResp{Matches: recs})
}

// Create validates one submitted match and stores it.
func (h *MatchHandler) Create(c echo.Context) error {
	var rec stats.Record
	if err := json.NewDecoder(c.Request().Body).Decode(&rec); err != nil || rec == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid match payload"})
	}
	m, verrs := stats.ParseMatch(rec)
	if len(verrs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid match payload", "fields": verrs})
	}

	email := middleware.UserEmail(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Matches.CreateForUser(ctx, email, m)
	if err != nil {
		h.Log.Error(ctx, "save match failed", "user", email, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to save match"})
	}
	h.publish(ctx, saved, queue.SourceForm)
	return c.JSON(http.StatusCreated, saved)
}

// Import stores every valid row of an uploaded CSV and reports the rows it
// rejected.  Row numbers count data rows from 1.
func (h *MatchHandler) Import(c echo.Context) error {
	records, err := readCSVUpload(c)
	if err != nil {
		return uploadError(c, err)
	}

	var (
		valid    []model.Match
		rejected = []rejectedRow{}
	)
	for i, rec := range records {
		m, verrs := stats.ParseMatch(rec)
		if len(verrs) > 0 {
			rejected = append(rejected, rejectedRow{Row: i + 1, Fields: verrs})
			continue
		}
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No valid matches in CSV", "rejected": rejected})
	}

	email := middleware.UserEmail(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	imported := make([]model.MatchRecord, 0, len(valid))
	for _, m := range valid {
		saved, err := h.Matches.CreateForUser(ctx, email, m)
		if err != nil {
			h.Log.Error(ctx, "import match failed", "user", email, "stored", len(imported), "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to save match"})
		}
		h.publish(ctx, saved, queue.SourceImport)
		imported = append(imported, saved)
	}
	return c.JSON(http.StatusCreated, importResp{Imported: imported, Rejected: rejected})
}

// Stats builds the dashboard over everything the user has stored.
func (h *MatchHandler) Stats(c echo.Context) error {
	email := middleware.UserEmail(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Matches.ListForUser(ctx, email)
	if err != nil {
		h.Log.Error(ctx, "list matches failed", "user", email, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to load matches"})
	}
	rows := make([]model.Match, len(recs))
	for i, r := range recs {
		rows[i] = r.Match
	}
	return c.JSON(http.StatusOK, stats.BuildDashboard(rows))
}

// publish is best effort; a broker outage never fails the request.
func (h *MatchHandler) publish(ctx context.Context, rec model.MatchRecord, source string) {
	err := h.Events.PublishMatchRecorded(ctx, queue.MatchRecordedEvent{
		MatchID:    rec.MatchID,
		UserEmail:  rec.UserEmail,
		Date:       rec.Match.Date,
		Opponent:   rec.Match.Opponent,
		Outcome:    rec.Match.Outcome,
		Source:     source,
		RecordedAt: rec.CreatedAt.Format(model.TimeLayout),
	})
	if err != nil {
		h.Log.Warn(ctx, "publish match event failed", "match_id", rec.MatchID, "err", err)
	}
}
