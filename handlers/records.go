package handlers

import (
	"context"
	"net/http"

	recordsRepo "asumo/database/repository/records"
	"asumo/models"
	"asumo/services/notification"
	"asumo/services/user"
	"asumo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordsHandler exposes the generic portal records: news, maintenance
// tickets and polls.
type RecordsHandler struct {
	Repo     recordsRepo.RecordRepository
	Users    user.UserService
	Notifier notification.NotificationService
}

// NewRecordsHandler returns a handler bound to the record repository.
func NewRecordsHandler(repo recordsRepo.RecordRepository, users user.UserService, notifier notification.NotificationService) *RecordsHandler {
	return &RecordsHandler{Repo: repo, Users: users, Notifier: notifier}
}

// ListNewsHandler handles GET /api/records/news.
func (h *RecordsHandler) ListNewsHandler(c *gin.Context) {
	records, err := h.Repo.ListByKind(c.Request.Context(), models.RecordKindNews)
	if err != nil {
		utils.GetLogger().Error("Failed to list news", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// PublishNewsHandler handles POST /api/admin/news. Publishing also fans the
// post out to every resident by email in the background.
func (h *RecordsHandler) PublishNewsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var rec models.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rec.Title == "" || rec.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and body are required"})
		return
	}
	rec.Kind = models.RecordKindNews
	rec.AuthorID = c.GetString("userID")

	created, err := h.Repo.Create(c.Request.Context(), rec)
	if err != nil {
		logger.Error("Failed to store news post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The fan-out is rate limited and can take a while with many
	// residents; the publish response does not wait for it.
	go func() {
		residents, err := h.Users.ListResidents(context.Background())
		if err != nil {
			logger.Warn("News broadcast: could not list residents", zap.Error(err))
			return
		}
		recipients := make([]string, 0, len(residents))
		for _, r := range residents {
			if r.Email != "" {
				recipients = append(recipients, r.Email)
			}
		}
		if err := h.Notifier.BroadcastNews(context.Background(), created.Title, "<p>"+created.Body+"</p>", recipients); err != nil {
			logger.Warn("News broadcast failed", zap.String("recordId", created.ID), zap.Error(err))
		}
	}()

	c.JSON(http.StatusCreated, created)
}

// CreateTicketHandler handles POST /api/records/tickets.
func (h *RecordsHandler) CreateTicketHandler(c *gin.Context) {
	var rec models.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rec.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	rec.Kind = models.RecordKindTicket
	rec.Status = models.TicketStatusOpen
	rec.AuthorID = c.GetString("userID")

	created, err := h.Repo.Create(c.Request.Context(), rec)
	if err != nil {
		utils.GetLogger().Error("Failed to store ticket", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListOwnTicketsHandler handles GET /api/records/tickets.
func (h *RecordsHandler) ListOwnTicketsHandler(c *gin.Context) {
	records, err := h.Repo.ListByKindAndAuthor(c.Request.Context(), models.RecordKindTicket, c.GetString("userID"))
	if err != nil {
		utils.GetLogger().Error("Failed to list tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// SetTicketStatusHandler handles PATCH /api/admin/tickets/:id/status.
func (h *RecordsHandler) SetTicketStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.TicketStatusOpen, models.TicketStatusInProgress, models.TicketStatusResolved:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown ticket status"})
		return
	}

	if err := h.Repo.SetTicketStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket updated"})
}

// CreatePollHandler handles POST /api/admin/polls.
func (h *RecordsHandler) CreatePollHandler(c *gin.Context) {
	var rec models.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rec.Title == "" || len(rec.Options) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a poll needs a title and at least two options"})
		return
	}
	rec.Kind = models.RecordKindPoll
	rec.AuthorID = c.GetString("userID")
	rec.Votes = nil

	created, err := h.Repo.Create(c.Request.Context(), rec)
	if err != nil {
		utils.GetLogger().Error("Failed to store poll", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListPollsHandler handles GET /api/records/polls.
func (h *RecordsHandler) ListPollsHandler(c *gin.Context) {
	records, err := h.Repo.ListByKind(c.Request.Context(), models.RecordKindPoll)
	if err != nil {
		utils.GetLogger().Error("Failed to list polls", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// VotePollHandler handles POST /api/records/polls/:id/vote.
func (h *RecordsHandler) VotePollHandler(c *gin.Context) {
	var req struct {
		Option string `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pollID := c.Param("id")
	poll, err := h.Repo.GetByID(c.Request.Context(), pollID)
	if err != nil || poll.Kind != models.RecordKindPoll {
		c.JSON(http.StatusNotFound, gin.H{"error": "poll not found"})
		return
	}
	valid := false
	for _, opt := range poll.Options {
		if opt == req.Option {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown poll option"})
		return
	}

	vote := models.PollVote{UserID: c.GetString("userID"), Option: req.Option}
	if err := h.Repo.AddPollVote(c.Request.Context(), pollID, vote); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
}
