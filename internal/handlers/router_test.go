package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roomledger/internal/common"
	"roomledger/internal/models"
	"roomledger/internal/presentation"
	"roomledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	rooms         *MockRoomService
	tenants       *MockTenantService
	registrations *MockRegistrationService
	reports       *MockReportService
	e             *echo.Echo
}

func (suite *RouterTestSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	suite.rooms = new(MockRoomService)
	suite.tenants = new(MockTenantService)
	suite.registrations = new(MockRegistrationService)
	suite.reports = new(MockReportService)

	suite.e = NewRouter(RouterConfig{
		Rooms:   NewRoomHandlers(suite.rooms, suite.tenants, suite.registrations, logger),
		Tenants: NewTenantHandlers(suite.tenants, logger),
		Reports: NewReportHandlers(suite.reports, logger),
		Health:  NewHealthHandlers(fakePinger{}, nil, nil, "", "test"),
		Logger:  logger,
	})
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.rooms.AssertExpectations(suite.T())
	suite.tenants.AssertExpectations(suite.T())
	suite.registrations.AssertExpectations(suite.T())
	suite.reports.AssertExpectations(suite.T())
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (suite *RouterTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const tenantBody = `{
	"name": "Ravi Kumar",
	"fatherName": "Mohan Kumar",
	"villageName": "Rampur",
	"tehsil": "Sadar",
	"policeStation": "Kotwali",
	"district": "Varanasi",
	"pincode": "221001",
	"state": "Uttar Pradesh",
	"aadharNumber": "123456789012",
	"phoneNumber": "9876543210",
	"fatherPhoneNumber": "9876501234",
	"roomId": "ROOM"
}`

func (suite *RouterTestSuite) TestListRooms_VersionedAndRoot() {
	rooms := []*models.Room{{ID: uuid.New(), Name: "F1"}, {ID: uuid.New(), Name: "G1"}}
	suite.rooms.On("List", mock.Anything).Return(rooms, nil).Twice()

	rec := suite.do(http.MethodGet, "/v1/rooms", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "v1", rec.Header().Get("X-API-Version"))

	var got []models.Room
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), "F1", got[0].Name)

	rec = suite.do(http.MethodGet, "/rooms/", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *RouterTestSuite) TestListRooms_DisplayOrder() {
	suite.rooms.On("ListForDisplay", mock.Anything).Return([]*models.Room{}, nil).Once()

	rec := suite.do(http.MethodGet, "/rooms?order=display", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *RouterTestSuite) TestListRooms_UnknownOrder() {
	rec := suite.do(http.MethodGet, "/rooms?order=rent", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), common.CodeValidation, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestGetRoom_InvalidID() {
	rec := suite.do(http.MethodGet, "/rooms/not-a-uuid", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	resp := decodeError(suite.T(), rec)
	assert.Equal(suite.T(), common.CodeValidation, resp.Error.Code)
	assert.Contains(suite.T(), resp.Error.Details, "id")
}

func (suite *RouterTestSuite) TestGetRoom_NotFound() {
	id := uuid.New()
	suite.rooms.On("GetByID", mock.Anything, id).Return(nil, services.ErrRoomNotFound).Once()

	rec := suite.do(http.MethodGet, "/rooms/"+id.String(), "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), common.CodeNotFound, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestCreateRoom_Duplicate() {
	suite.rooms.On("Create", mock.Anything, &services.CreateRoomRequest{Name: "G1"}).
		Return(nil, services.ErrDuplicateRoom).Once()

	rec := suite.do(http.MethodPost, "/rooms", `{"name":"G1"}`)
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
	assert.Equal(suite.T(), common.CodeConflict, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestCreateRoom_MalformedBody() {
	rec := suite.do(http.MethodPost, "/rooms", `{"name":`)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), common.CodeClient, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestDeleteRoom_Occupied() {
	id := uuid.New()
	suite.rooms.On("Delete", mock.Anything, id).Return(services.ErrRoomOccupied).Once()

	rec := suite.do(http.MethodDelete, "/rooms/"+id.String(), "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), common.CodeRoomOccupied, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestDeleteRoom_Success() {
	id := uuid.New()
	suite.rooms.On("Delete", mock.Anything, id).Return(nil).Once()

	rec := suite.do(http.MethodDelete, "/rooms/"+id.String(), "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"message":"Room deleted successfully"}`, rec.Body.String())
}

func (suite *RouterTestSuite) TestEmptyRoom_ReportsZeroCount() {
	id := uuid.New()
	suite.tenants.On("EmptyRoom", mock.Anything, id).Return(int64(0), nil).Once()

	rec := suite.do(http.MethodDelete, "/rooms/"+id.String()+"/tenants", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"message":"Room emptied successfully","count":0}`, rec.Body.String())
}

func (suite *RouterTestSuite) TestRegisterTenants_Created() {
	id := uuid.New()
	room := &models.Room{ID: id, Name: "G1", RentAmount: 4500}
	suite.registrations.On("Register", mock.Anything, id, mock.AnythingOfType("*services.RegistrationRequest")).
		Return(room, nil).Once()

	rec := suite.do(http.MethodPost, "/v1/rooms/"+id.String()+"/registrations", `{"rentAmount":4500,"tenants":[]}`)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
}

func (suite *RouterTestSuite) TestCreateTenant_MissingRoom() {
	roomID := uuid.New()
	suite.tenants.On("Create", mock.Anything, mock.AnythingOfType("*services.TenantRequest")).
		Return(nil, services.ErrRoomNotFound).Once()

	rec := suite.do(http.MethodPost, "/tenants", strings.Replace(tenantBody, "ROOM", roomID.String(), 1))
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), common.CodeRoomNotFound, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestCreateTenant_DuplicateAadhar() {
	suite.tenants.On("Create", mock.Anything, mock.AnythingOfType("*services.TenantRequest")).
		Return(nil, services.ErrDuplicateTenant).Once()

	rec := suite.do(http.MethodPost, "/tenants", strings.Replace(tenantBody, "ROOM", uuid.NewString(), 1))
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *RouterTestSuite) TestUpdateTenant_ValidationDetails() {
	id := uuid.New()
	suite.tenants.On("Update", mock.Anything, id, mock.AnythingOfType("*services.TenantRequest")).
		Return(nil, &services.ValidationError{Field: "phoneNumber", Message: "phoneNumber must be exactly 10 digits"}).Once()

	rec := suite.do(http.MethodPatch, "/tenants/"+id.String(), strings.Replace(tenantBody, "ROOM", "", 1))
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	resp := decodeError(suite.T(), rec)
	assert.Equal(suite.T(), common.CodeValidation, resp.Error.Code)
	assert.Equal(suite.T(), "phoneNumber must be exactly 10 digits", resp.Error.Details["phoneNumber"])
}

func (suite *RouterTestSuite) TestDeleteTenant_NotFound() {
	id := uuid.New()
	suite.tenants.On("Delete", mock.Anything, id).Return(services.ErrTenantNotFound).Once()

	rec := suite.do(http.MethodDelete, "/tenants/"+id.String(), "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *RouterTestSuite) TestListTenants_InvalidRoomFilter() {
	rec := suite.do(http.MethodGet, "/tenants?roomId=abc", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestListTenants_StoreFailureIsHidden() {
	suite.tenants.On("List", mock.Anything, (*uuid.UUID)(nil)).
		Return(nil, errors.New("connection reset by peer")).Once()

	rec := suite.do(http.MethodGet, "/tenants", "")
	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)

	resp := decodeError(suite.T(), rec)
	assert.Equal(suite.T(), common.CodeServer, resp.Error.Code)
	assert.NotContains(suite.T(), resp.Error.Message, "connection reset")
}

func (suite *RouterTestSuite) TestOccupancy_PassesOptions() {
	want, err := presentation.ParseTableOptions("", "email,aadhar", false)
	require.NoError(suite.T(), err)
	suite.reports.On("OccupancyTable", mock.Anything, want).
		Return(&presentation.Table{Title: "Tenant Register"}, nil).Once()

	rec := suite.do(http.MethodGet, "/reports/occupancy?hide=email,aadhar", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *RouterTestSuite) TestOccupancy_UnknownColumn() {
	rec := suite.do(http.MethodGet, "/reports/occupancy?columns=salary", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), decodeError(suite.T(), rec).Error.Details, "columns")
}

func (suite *RouterTestSuite) TestOccupancy_BadSimplifiedFlag() {
	rec := suite.do(http.MethodGet, "/reports/occupancy?simplified=maybe", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestOccupancyPDF() {
	suite.reports.On("OccupancyPDF", mock.Anything, mock.AnythingOfType("presentation.TableOptions")).
		Return([]byte("%PDF-1.3"), nil).Once()

	rec := suite.do(http.MethodGet, "/reports/occupancy.pdf?simplified=true", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(suite.T(), "%PDF-1.3", rec.Body.String())
}

func (suite *RouterTestSuite) TestPublish_StorageUnavailable() {
	suite.reports.On("PublishOccupancyPDF", mock.Anything, mock.AnythingOfType("presentation.TableOptions")).
		Return(nil, services.ErrStorageUnavailable).Once()

	rec := suite.do(http.MethodPost, "/reports/occupancy/publish", "")
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
	assert.Equal(suite.T(), common.CodeUnavailable, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestUnknownRoute() {
	rec := suite.do(http.MethodGet, "/v1/nothing-here", "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), common.CodeNotFound, decodeError(suite.T(), rec).Error.Code)
}

func (suite *RouterTestSuite) TestHealth_BackendsDisabled() {
	rec := suite.do(http.MethodGet, "/health", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var health HealthStatus
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(suite.T(), "healthy", health.Status)
	assert.Equal(suite.T(), "disabled", health.Services["redis"])
	assert.Equal(suite.T(), "disabled", health.Services["storage"])
}

// Validation runs before any repository access, so the real services can be
// mounted without a store.
func TestRentOutOfRange_IsValidationError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	rooms := services.NewRoomService(nil, nil, logger)
	tenants := services.NewTenantService(nil, nil, nil, logger)
	e := NewRouter(RouterConfig{
		Rooms:   NewRoomHandlers(rooms, tenants, services.NewRegistrationService(nil, logger), logger),
		Tenants: NewTenantHandlers(tenants, logger),
		Reports: NewReportHandlers(new(MockReportService), logger),
		Logger:  logger,
	})

	id := uuid.NewString()
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"update", http.MethodPatch, "/rooms/" + id, `{"rentAmount":3000000000}`},
		{"create", http.MethodPost, "/rooms", `{"name":"G1","rentAmount":3000000000}`},
		{"register", http.MethodPost, "/v1/rooms/" + id + "/registrations", `{"rentAmount":3000000000,"tenants":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, common.CodeValidation, resp.Error.Code)
			assert.Contains(t, resp.Error.Details, "rentAmount")
		})
	}
}

func (suite *RouterTestSuite) TestOccupancy_NoVisibleColumns() {
	rec := suite.do(http.MethodGet, "/reports/occupancy?simplified=true&columns=aadhar,email", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), decodeError(suite.T(), rec).Error.Details, "columns")
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func TestHealth_DatabaseDown(t *testing.T) {
	e := echo.New()
	h := NewHealthHandlers(fakePinger{err: errors.New("refused")}, nil, nil, "", "test")
	h.RegisterRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"unhealthy"`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
