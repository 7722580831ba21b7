package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"
	"pointdesk/domain/services"
	"pointdesk/infrastructure/observability"

	"github.com/gin-gonic/gin"
)

// Handlers exposes the HTTP surface over the domain services
type Handlers struct {
	members    interfaces.MemberService
	ledger     interfaces.LedgerService
	approvals  interfaces.ApprovalService
	orders     interfaces.OrderService
	games      interfaces.GameService
	settlement interfaces.SettlementService
}

// NewHandlers creates the handler set
func NewHandlers(
	members interfaces.MemberService,
	ledger interfaces.LedgerService,
	approvals interfaces.ApprovalService,
	orders interfaces.OrderService,
	games interfaces.GameService,
	settlement interfaces.SettlementService,
) *Handlers {
	return &Handlers{
		members:    members,
		ledger:     ledger,
		approvals:  approvals,
		orders:     orders,
		games:      games,
		settlement: settlement,
	}
}

// RegisterRoutes wires all endpoints onto the engine
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.POST("/members", h.createMember)
	r.GET("/members/:id", h.getMember)
	r.GET("/members/:id/ledger", h.getMemberLedger)

	r.POST("/orders", h.createOrder)

	r.POST("/ledger/entries", h.requestEntry)
	r.POST("/ledger/entries/:id/approve", h.approveEntry)
	r.POST("/ledger/entries/:id/reject", h.rejectEntry)

	r.GET("/games", h.listGames)
	r.POST("/games", h.createGame)
	r.POST("/games/:id/result", h.recordResult)
	r.POST("/games/:id/verify", h.verifyGame)

	r.GET("/settlement/candidates", h.settlementCandidates)
	r.POST("/settlement/run", h.runSettlement)
}

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, services.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyFinalized),
		errors.Is(err, services.ErrAlreadySettled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type createMemberRequest struct {
	MemberNo    string `json:"memberNo" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
}

func (h *Handlers) createMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	member, err := h.members.CreateMember(c.Request.Context(), req.MemberNo, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *Handlers) getMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	member, err := h.members.GetMember(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handlers) getMemberLedger(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.members.GetLedger(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type orderItemRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	GameID      *int64 `json:"gameId"`
	Selection   string `json:"selection"`
	Odds        string `json:"odds"`
}

type createOrderRequest struct {
	MemberID int64              `json:"memberId" binding:"required"`
	Items    []orderItemRequest `json:"items"`
}

func (h *Handlers) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items := make([]interfaces.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, interfaces.OrderItemInput{
			Category:    item.Category,
			Description: item.Description,
			Amount:      item.Amount,
			GameID:      item.GameID,
			Selection:   item.Selection,
			Odds:        item.Odds,
		})
	}

	result, err := h.orders.CreateOrder(c.Request.Context(), req.MemberID, items, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"orderId":  result.OrderID,
		"ticketNo": result.TicketNo,
	})
}

type requestEntryRequest struct {
	MemberID int64  `json:"memberId" binding:"required"`
	Category string `json:"category" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Amount   int64  `json:"amount"`
	Reason   string `json:"reason"`
}

func (h *Handlers) requestEntry(c *gin.Context) {
	var req requestEntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.ledger.RequestEntry(
		c.Request.Context(),
		req.MemberID,
		entities.Category(req.Category),
		entities.EntryType(req.Type),
		req.Amount,
		req.Reason,
		actorID(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

type approveRequest struct {
	ApproverID int64 `json:"approverId"`
}

func (h *Handlers) approveEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req approveRequest
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	approver := req.ApproverID
	if approver == 0 {
		approver = actorID(c)
	}

	if err := h.approvals.Approve(c.Request.Context(), id, approver); err != nil {
		respondError(c, err)
		return
	}
	observability.RecordLedgerDecision("approved")
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

type rejectRequest struct {
	ApproverID int64  `json:"approverId"`
	Reason     string `json:"reason"`
}

func (h *Handlers) rejectEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req rejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	approver := req.ApproverID
	if approver == 0 {
		approver = actorID(c)
	}

	if err := h.approvals.Reject(c.Request.Context(), id, approver, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	observability.RecordLedgerDecision("rejected")
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

type createGameRequest struct {
	League   string    `json:"league"`
	HomeTeam string    `json:"homeTeam" binding:"required"`
	AwayTeam string    `json:"awayTeam" binding:"required"`
	GameDate time.Time `json:"gameDate" binding:"required"`
}

func (h *Handlers) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	game, err := h.games.CreateGame(c.Request.Context(), req.League, req.HomeTeam, req.AwayTeam, req.GameDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

type recordResultRequest struct {
	ResultScore string `json:"resultScore"`
	Status      string `json:"status" binding:"required"`
}

func (h *Handlers) recordResult(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req recordResultRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.games.RecordResult(c.Request.Context(), id, req.ResultScore, entities.GameStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

func (h *Handlers) verifyGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.games.Verify(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

func (h *Handlers) listGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	games, err := h.games.ListGames(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *Handlers) settlementCandidates(c *gin.Context) {
	candidates, err := h.settlement.Candidates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, gin.H{
			"gameId":   candidate.ID,
			"league":   candidate.League,
			"homeTeam": candidate.HomeTeam,
			"awayTeam": candidate.AwayTeam,
			"gameDate": candidate.GameDate,
			"score":    candidate.ResultScore,
			"betCount": candidate.BetCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"candidates": out})
}

type runSettlementRequest struct {
	GameIDs []int64 `json:"gameIds"`
}

func (h *Handlers) runSettlement(c *gin.Context) {
	var req runSettlementRequest
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	started := time.Now()
	report, err := h.settlement.Run(c.Request.Context(), req.GameIDs, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	observability.RecordSettlementRun(
		report.Stats.Settled,
		report.Stats.Skipped,
		report.Stats.Errored,
		report.Stats.TotalPayout,
		started,
	)

	results := make([]gin.H, 0, len(report.Results))
	for _, result := range report.Results {
		items := make([]gin.H, 0, len(result.Items))
		for _, item := range result.Items {
			items = append(items, gin.H{
				"itemId":    item.ItemID,
				"memberId":  item.MemberID,
				"selection": item.Selection,
				"odds":      item.Odds.String(),
				"stake":     item.Stake,
				"won":       item.Won,
				"payout":    item.Payout,
			})
		}
		results = append(results, gin.H{
			"gameId":  result.GameID,
			"outcome": result.Outcome,
			"skipped": result.Skipped,
			"error":   result.Error,
			"staked":  result.TotalStaked,
			"payout":  result.TotalPayout,
			"profit":  result.Profit,
			"items":   items,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"processed":   report.Stats.Processed,
			"settled":     report.Stats.Settled,
			"skipped":     report.Stats.Skipped,
			"errored":     report.Stats.Errored,
			"totalStaked": report.Stats.TotalStaked,
			"totalPayout": report.Stats.TotalPayout,
			"totalProfit": report.Stats.TotalProfit,
		},
		"results": results,
	})
}
