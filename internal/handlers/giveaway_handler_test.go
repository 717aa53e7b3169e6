package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/services"
)

// stubGiveawayService returns canned results so the tests exercise only the
// HTTP layer: binding, id parsing, and error-to-status mapping.
type stubGiveawayService struct {
	createID  uint64
	winner    string
	giveaway  *models.Giveaway
	err       error
	gotAmount int64
}

var _ services.GiveawayService = (*stubGiveawayService)(nil)

func (s *stubGiveawayService) CreateGiveaway(ctx context.Context, creator, token string, amount int64, title string, duration time.Duration) (uint64, error) {
	s.gotAmount = amount
	return s.createID, s.err
}

func (s *stubGiveawayService) EnterGiveaway(ctx context.Context, participant string, giveawayID uint64) error {
	return s.err
}

func (s *stubGiveawayService) PickWinner(ctx context.Context, giveawayID uint64) (string, error) {
	return s.winner, s.err
}

func (s *stubGiveawayService) DistributePrize(ctx context.Context, giveawayID uint64) error {
	return s.err
}

func (s *stubGiveawayService) GetGiveaway(ctx context.Context, giveawayID uint64) (*models.Giveaway, error) {
	return s.giveaway, s.err
}

func (s *stubGiveawayService) ListGiveaways(ctx context.Context, page, limit int) ([]*models.Giveaway, error) {
	return nil, s.err
}

func (s *stubGiveawayService) ListParticipants(ctx context.Context, giveawayID uint64, page, limit int) ([]*models.ParticipantEntry, error) {
	return nil, s.err
}

func giveawayTestRouter(stub *stubGiveawayService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGiveawayHandler(stub)
	router := gin.New()
	router.POST("/giveaways", h.CreateGiveaway)
	router.POST("/giveaways/:id/enter", h.EnterGiveaway)
	router.GET("/giveaways/:id", h.GetGiveaway)
	return router
}

func TestCreateGiveawayEndpoint(t *testing.T) {
	stub := &stubGiveawayService{createID: 7}
	router := giveawayTestRouter(stub)

	body := `{"token":"USDC","amount":500,"title":"spring drop","duration_seconds":3600}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/giveaways", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
	assert.Equal(t, int64(500), stub.gotAmount)
}

func TestCreateGiveawayEndpointRejectsBadBody(t *testing.T) {
	router := giveawayTestRouter(&stubGiveawayService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/giveaways", strings.NewReader(`{"token":"USDC"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnterGiveawayEndpointMapsTypedErrors(t *testing.T) {
	cases := []struct {
		kind apperrors.Kind
		want int
	}{
		{apperrors.KindDuplicateEntry, http.StatusConflict},
		{apperrors.KindTimeWindow, http.StatusUnprocessableEntity},
		{apperrors.KindNotFound, http.StatusNotFound},
		{apperrors.KindContractPaused, http.StatusBadRequest},
	}
	for _, tc := range cases {
		router := giveawayTestRouter(&stubGiveawayService{err: apperrors.New(tc.kind, "nope")})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/giveaways/1/enter", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, tc.want, rec.Code, string(tc.kind))
		assert.Contains(t, rec.Body.String(), string(tc.kind))
	}
}

func TestGetGiveawayEndpointRejectsBadID(t *testing.T) {
	router := giveawayTestRouter(&stubGiveawayService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/giveaways/abc", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
