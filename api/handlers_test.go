package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"
	"pointdesk/domain/services"
	"pointdesk/domain/testhelpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	members    *testhelpers.MockMemberService
	ledger     *testhelpers.MockLedgerService
	approvals  *testhelpers.MockApprovalService
	orders     *testhelpers.MockOrderService
	games      *testhelpers.MockGameService
	settlement *testhelpers.MockSettlementService
	engine     *gin.Engine
}

func newHandlerFixture() *handlerFixture {
	gin.SetMode(gin.TestMode)

	f := &handlerFixture{
		members:    &testhelpers.MockMemberService{},
		ledger:     &testhelpers.MockLedgerService{},
		approvals:  &testhelpers.MockApprovalService{},
		orders:     &testhelpers.MockOrderService{},
		games:      &testhelpers.MockGameService{},
		settlement: &testhelpers.MockSettlementService{},
	}

	handlers := NewHandlers(f.members, f.ledger, f.approvals, f.orders, f.games, f.settlement)
	f.engine = gin.New()
	handlers.RegisterRoutes(f.engine)
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	f.engine.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateMember(t *testing.T) {
	f := newHandlerFixture()
	f.members.On("CreateMember", mock.Anything, "M0001", "alice").Return(&entities.Member{
		ID:          1,
		MemberNo:    "M0001",
		DisplayName: "alice",
	}, nil)

	resp := f.do(t, http.MethodPost, "/members", `{"memberNo": "M0001", "displayName": "alice"}`, nil)

	require.Equal(t, http.StatusCreated, resp.Code)
	var member entities.Member
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &member))
	assert.Equal(t, int64(1), member.ID)
	assert.Equal(t, "M0001", member.MemberNo)
	assert.Equal(t, "alice", member.DisplayName)
}

func TestCreateMemberMissingName(t *testing.T) {
	f := newHandlerFixture()

	resp := f.do(t, http.MethodPost, "/members", `{"memberNo": "M0002"}`, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	f.members.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMemberNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.members.On("GetMember", mock.Anything, int64(99)).Return(nil, services.ErrMemberNotFound)

	resp := f.do(t, http.MethodGet, "/members/99", "", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetMemberInvalidID(t *testing.T) {
	f := newHandlerFixture()

	resp := f.do(t, http.MethodGet, "/members/abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	f.members.AssertNotCalled(t, "GetMember", mock.Anything, mock.Anything)
}

func TestCreateOrder(t *testing.T) {
	f := newHandlerFixture()
	gameID := int64(5)
	f.orders.On("CreateOrder", mock.Anything, int64(1), []interfaces.OrderItemInput{
		{Category: "book", Description: "signed copy", Amount: 300},
		{Category: "game", Description: "EPL wager", Amount: 200, GameID: &gameID, Selection: "home", Odds: "2.5"},
	}, int64(700)).Return(&interfaces.OrderResult{OrderID: 42, TicketNo: "T20250314-ABC123"}, nil)

	body := `{
		"memberId": 1,
		"items": [
			{"category": "book", "description": "signed copy", "amount": 300},
			{"category": "game", "description": "EPL wager", "amount": 200, "gameId": 5, "selection": "home", "odds": "2.5"}
		]
	}`
	resp := f.do(t, http.MethodPost, "/orders", body, map[string]string{"X-Actor-ID": "700"})

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.JSONEq(t, `{"orderId": 42, "ticketNo": "T20250314-ABC123"}`, resp.Body.String())
}

func TestCreateOrderInsufficientFunds(t *testing.T) {
	f := newHandlerFixture()
	f.orders.On("CreateOrder", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(nil, services.ErrInsufficientFunds)

	body := `{"memberId": 1, "items": [{"category": "book", "amount": 9999}]}`
	resp := f.do(t, http.MethodPost, "/orders", body, nil)

	assert.Equal(t, http.StatusPaymentRequired, resp.Code)
}

func TestRequestEntryValidation(t *testing.T) {
	f := newHandlerFixture()
	f.ledger.On("RequestEntry", mock.Anything, int64(1), entities.CategoryGeneral, entities.EntryTypeCharge, int64(0), "", int64(0)).
		Return(nil, services.NewValidationError("amount", "must be non-zero"))

	body := `{"memberId": 1, "category": "general", "type": "charge", "amount": 0}`
	resp := f.do(t, http.MethodPost, "/ledger/entries", body, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestApproveEntry(t *testing.T) {
	f := newHandlerFixture()
	f.approvals.On("Approve", mock.Anything, int64(10), int64(900)).Return(nil)

	resp := f.do(t, http.MethodPost, "/ledger/entries/10/approve", `{"approverId": 900}`, nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	f.approvals.AssertExpectations(t)
}

func TestApproveEntryActorHeaderFallback(t *testing.T) {
	f := newHandlerFixture()
	f.approvals.On("Approve", mock.Anything, int64(10), int64(900)).Return(nil)

	resp := f.do(t, http.MethodPost, "/ledger/entries/10/approve", "", map[string]string{"X-Actor-ID": "900"})

	assert.Equal(t, http.StatusOK, resp.Code)
	f.approvals.AssertExpectations(t)
}

func TestApproveEntryAlreadyFinalized(t *testing.T) {
	f := newHandlerFixture()
	f.approvals.On("Approve", mock.Anything, int64(10), int64(900)).Return(services.ErrAlreadyFinalized)

	resp := f.do(t, http.MethodPost, "/ledger/entries/10/approve", `{"approverId": 900}`, nil)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestApproveEntryPermissionDenied(t *testing.T) {
	f := newHandlerFixture()
	f.approvals.On("Approve", mock.Anything, int64(10), int64(1)).Return(services.ErrPermissionDenied)

	resp := f.do(t, http.MethodPost, "/ledger/entries/10/approve", `{"approverId": 1}`, nil)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRejectEntry(t *testing.T) {
	f := newHandlerFixture()
	f.approvals.On("Reject", mock.Anything, int64(10), int64(900), "duplicate request").Return(nil)

	resp := f.do(t, http.MethodPost, "/ledger/entries/10/reject", `{"approverId": 900, "reason": "duplicate request"}`, nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	f.approvals.AssertExpectations(t)
}

func TestRecordResultAlreadySettled(t *testing.T) {
	f := newHandlerFixture()
	f.games.On("RecordResult", mock.Anything, int64(5), "2:1", entities.GameStatusFinished).
		Return(services.ErrAlreadySettled)

	resp := f.do(t, http.MethodPost, "/games/5/result", `{"resultScore": "2:1", "status": "finished"}`, nil)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestVerifyGame(t *testing.T) {
	f := newHandlerFixture()
	f.games.On("Verify", mock.Anything, int64(5)).Return(nil)

	resp := f.do(t, http.MethodPost, "/games/5/verify", "", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	f.games.AssertExpectations(t)
}

func TestSettlementCandidates(t *testing.T) {
	f := newHandlerFixture()
	f.settlement.On("Candidates", mock.Anything).Return([]*entities.SettlementCandidate{
		{
			Game: entities.Game{
				ID:          5,
				League:      "EPL",
				HomeTeam:    "Arsenal",
				AwayTeam:    "Chelsea",
				GameDate:    time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC),
				ResultScore: "3:1",
			},
			BetCount: 2,
		},
	}, nil)

	resp := f.do(t, http.MethodGet, "/settlement/candidates", "", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var parsed struct {
		Candidates []struct {
			GameID   int64  `json:"gameId"`
			HomeTeam string `json:"homeTeam"`
			BetCount int    `json:"betCount"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &parsed))
	require.Len(t, parsed.Candidates, 1)
	assert.Equal(t, int64(5), parsed.Candidates[0].GameID)
	assert.Equal(t, "Arsenal", parsed.Candidates[0].HomeTeam)
	assert.Equal(t, 2, parsed.Candidates[0].BetCount)
}

func TestRunSettlement(t *testing.T) {
	f := newHandlerFixture()
	report := &entities.SettlementReport{}
	report.Add(entities.GameSettlement{
		GameID:      5,
		Outcome:     entities.OutcomeHome,
		TotalStaked: 200,
		TotalPayout: 500,
		Profit:      -300,
	})
	report.Add(entities.GameSettlement{GameID: 6, Skipped: true})
	f.settlement.On("Run", mock.Anything, []int64{5, 6}, int64(900)).Return(report, nil)

	resp := f.do(t, http.MethodPost, "/settlement/run", `{"gameIds": [5, 6]}`, map[string]string{"X-Actor-ID": "900"})

	require.Equal(t, http.StatusOK, resp.Code)
	var parsed struct {
		Stats struct {
			Processed int   `json:"processed"`
			Settled   int   `json:"settled"`
			Skipped   int   `json:"skipped"`
			Payout    int64 `json:"totalPayout"`
		} `json:"stats"`
		Results []struct {
			GameID  int64 `json:"gameId"`
			Skipped bool  `json:"skipped"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &parsed))
	assert.Equal(t, 2, parsed.Stats.Processed)
	assert.Equal(t, 1, parsed.Stats.Settled)
	assert.Equal(t, 1, parsed.Stats.Skipped)
	assert.Equal(t, int64(500), parsed.Stats.Payout)
	require.Len(t, parsed.Results, 2)
	assert.True(t, parsed.Results[1].Skipped)
}

func TestRunSettlementEmptyBodySettlesAllCandidates(t *testing.T) {
	f := newHandlerFixture()
	f.settlement.On("Run", mock.Anything, []int64(nil), int64(900)).
		Return(&entities.SettlementReport{}, nil)

	resp := f.do(t, http.MethodPost, "/settlement/run", "", map[string]string{"X-Actor-ID": "900"})

	assert.Equal(t, http.StatusOK, resp.Code)
	f.settlement.AssertExpectations(t)
}

func TestRunSettlementPermissionDenied(t *testing.T) {
	f := newHandlerFixture()
	f.settlement.On("Run", mock.Anything, mock.Anything, int64(1)).
		Return(nil, services.ErrPermissionDenied)

	resp := f.do(t, http.MethodPost, "/settlement/run", `{"gameIds": [5]}`, map[string]string{"X-Actor-ID": "1"})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
