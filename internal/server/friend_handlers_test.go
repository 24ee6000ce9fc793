package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFriendRepository is a mock of the FriendRepository interface
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	args := m.Called(ctx, friendship)
	return args.Error(0)
}

func (m *MockFriendRepository) ExistsBetweenUsers(ctx context.Context, userID1, userID2 uint) (bool, error) {
	args := m.Called(ctx, userID1, userID2)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) ExistsAccepted(ctx context.Context, userID1, userID2 uint) (bool, error) {
	args := m.Called(ctx, userID1, userID2)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) AcceptPending(ctx context.Context, requesterID, addresseeID uint) (int64, error) {
	args := m.Called(ctx, requesterID, addresseeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFriendRepository) DeletePending(ctx context.Context, requesterID, addresseeID uint) (int64, error) {
	args := m.Called(ctx, requesterID, addresseeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFriendRepository) DeleteAccepted(ctx context.Context, userID1, userID2 uint) (int64, error) {
	args := m.Called(ctx, userID1, userID2)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FriendSummary), args.Error(1)
}

func (m *MockFriendRepository) ListPendingSent(ctx context.Context, userID uint) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) ListPendingReceived(ctx context.Context, userID uint) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) SearchCandidates(ctx context.Context, callerID uint, query string, limit int) ([]models.UserRef, error) {
	args := m.Called(ctx, callerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserRef), args.Error(1)
}

func (m *MockFriendRepository) CountFriends(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// newFriendTestApp wires a Fiber app with the friend routes, an authenticated
// caller, and the real friend service over mocked repositories.
func newFriendTestApp(callerID uint, friendRepo repository.FriendRepository, userRepo repository.UserRepository) (*fiber.App, *Server) {
	s := &Server{
		friendService: service.NewFriendService(friendRepo, userRepo),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", callerID)
		return c.Next()
	})
	friends := app.Group("/api/friends")
	friends.Get("/", s.GetFriends)
	friends.Get("/count", s.GetFriendCount)
	friends.Get("/search", s.SearchFriendCandidates)
	friends.Get("/requests", s.GetPendingRequests)
	friends.Post("/requests/:userId", s.SendFriendRequest)
	friends.Post("/requests/:userId/accept", s.AcceptFriendRequest)
	friends.Post("/requests/:userId/reject", s.RejectFriendRequest)
	friends.Delete("/requests/:userId", s.CancelFriendRequest)
	friends.Delete("/:userId", s.RemoveFriend)
	return app, s
}

func TestSendFriendRequest_Created(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	friendRepo.On("ExistsBetweenUsers", mock.Anything, uint(1), uint(7)).Return(false, nil)
	friendRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	app, _ := newFriendTestApp(1, friendRepo, userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.NotContains(t, body, "already_related")
	friendRepo.AssertExpectations(t)
}

func TestSendFriendRequest_AlreadyRelated(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	friendRepo.On("ExistsBetweenUsers", mock.Anything, uint(1), uint(7)).Return(true, nil)

	app, _ := newFriendTestApp(1, friendRepo, userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["already_related"])
	friendRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendFriendRequest_Self(t *testing.T) {
	app, _ := newFriendTestApp(1, new(MockFriendRepository), new(MockUserRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendFriendRequest_TargetMissing(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(nil, models.NewNotFoundError("User", 7))

	app, _ := newFriendTestApp(1, friendRepo, userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAcceptFriendRequest_VanishedIsOk(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	friendRepo.On("AcceptPending", mock.Anything, uint(7), uint(1)).Return(int64(0), nil)

	app, _ := newFriendTestApp(1, friendRepo, new(MockUserRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/7/accept", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	friendRepo.AssertExpectations(t)
}

func TestCancelFriendRequest_UsesCallerAsRequester(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	friendRepo.On("DeletePending", mock.Anything, uint(1), uint(7)).Return(int64(1), nil)

	app, _ := newFriendTestApp(1, friendRepo, new(MockUserRepository))

	req := httptest.NewRequest(http.MethodDelete, "/api/friends/requests/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	friendRepo.AssertExpectations(t)
}

func TestRemoveFriend_AbsentIsOk(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	friendRepo.On("DeleteAccepted", mock.Anything, uint(1), uint(7)).Return(int64(0), nil)

	app, _ := newFriendTestApp(1, friendRepo, new(MockUserRepository))

	req := httptest.NewRequest(http.MethodDelete, "/api/friends/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	friendRepo.AssertExpectations(t)
}

func TestGetFriends(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	friendRepo.On("ListFriends", mock.Anything, uint(1)).Return([]models.FriendSummary{
		{UserID: 2, Username: "ella", FriendCount: 3},
	}, nil)

	app, _ := newFriendTestApp(1, friendRepo, new(MockUserRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/friends/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.FriendSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "ella", body[0].Username)
	assert.Equal(t, int64(3), body[0].FriendCount)
}

func TestGetPendingRequests_SplitsQueues(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	friendRepo.On("ListPendingSent", mock.Anything, uint(1)).Return([]models.Friendship{
		{RequesterID: 1, AddresseeID: 5, Addressee: models.User{Username: "ella"}},
	}, nil)
	friendRepo.On("ListPendingReceived", mock.Anything, uint(1)).Return([]models.Friendship{
		{RequesterID: 9, AddresseeID: 1, Requester: models.User{Username: "miles"}},
	}, nil)

	app, _ := newFriendTestApp(1, friendRepo, new(MockUserRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/friends/requests", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Sent     []models.UserRef `json:"sent"`
		Received []models.UserRef `json:"received"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Sent, 1)
	require.Len(t, body.Received, 1)
	assert.Equal(t, uint(5), body.Sent[0].UserID)
	assert.Equal(t, uint(9), body.Received[0].UserID)
}

func TestSearchFriendCandidates_BlankQuery(t *testing.T) {
	friendRepo := new(MockFriendRepository)

	app, _ := newFriendTestApp(1, friendRepo, new(MockUserRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/friends/search?q=%20%20", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.UserRef
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body)
	friendRepo.AssertNotCalled(t, "SearchCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchFriendCandidates(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	friendRepo.On("SearchCandidates", mock.Anything, uint(1), "nina", 10).Return([]models.UserRef{
		{UserID: 4, Username: "nina_s"},
	}, nil)

	app, _ := newFriendTestApp(1, friendRepo, new(MockUserRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/friends/search?q=nina", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.UserRef
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "nina_s", body[0].Username)
	friendRepo.AssertExpectations(t)
}
