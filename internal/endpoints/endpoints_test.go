package endpoints

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-dispatch/internal/dispatcher"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/mock"
	"github.com/MKhiriev/go-api-dispatch/internal/service"
	"github.com/MKhiriev/go-api-dispatch/internal/store"
	"github.com/MKhiriev/go-api-dispatch/models"
)

type testServices struct {
	auth    *mock.MockAuthService
	users   *mock.MockUserService
	appInfo *mock.MockAppInfoService
}

func newTestEndpoints(t *testing.T) (models.Endpoints, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testServices{
		auth:    mock.NewMockAuthService(ctrl),
		users:   mock.NewMockUserService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		AuthService:    m.auth,
		UserService:    m.users,
		AppInfoService: m.appInfo,
	}

	return New(services, logger.Nop()), m
}

func call(t *testing.T, endpoints models.Endpoints, name string, payload models.Payload) (*models.Response, error) {
	t.Helper()
	e, ok := endpoints[name]
	require.True(t, ok, "endpoint %q is not registered", name)
	require.NotNil(t, e.Handler, "endpoint %q has no handler", name)
	return e.Handler(context.Background(), payload)
}

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

func TestNew_Registry(t *testing.T) {
	endpoints, _ := newTestEndpoints(t)

	tests := []struct {
		name   string
		method string
		auth   bool
		roles  []string
	}{
		{name: AppVersion, method: http.MethodGet},
		{name: AuthRegister, method: http.MethodPost},
		{name: AuthLogin, method: http.MethodPost},
		{name: UsersMe, method: http.MethodGet, auth: true},
		{name: UsersList, method: http.MethodGet, auth: true, roles: []string{models.RoleAdmin}},
		{name: UsersSetRole, method: http.MethodPost, auth: true, roles: []string{models.RoleAdmin}},
		{name: UsersDisable, method: http.MethodPost, auth: true, roles: []string{models.RoleAdmin}},
		{name: UsersDelete, method: http.MethodPost, auth: true, roles: []string{models.RoleAdmin}},
	}

	require.Len(t, endpoints, len(tests))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := endpoints[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.method, e.Method)
			assert.Equal(t, tt.auth, e.AuthRequired)
			assert.Equal(t, tt.roles, e.Roles)
		})
	}

	assert.Nil(t, endpoints[UsersDelete].Handler)
}

// ─────────────────────────────────────────────
// app.version
// ─────────────────────────────────────────────

func TestVersion(t *testing.T) {
	endpoints, m := newTestEndpoints(t)
	m.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.2.3", "", ""))

	resp, err := call(t, endpoints, AppVersion, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	v, _ := resp.Get("version")
	assert.Equal(t, "1.2.3", v)
}

// ─────────────────────────────────────────────
// auth.register
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		payload    models.Payload
		setup      func(m testServices)
		wantStatus int
		wantDesc   string
	}{
		{
			name:    "created",
			payload: models.Payload{"login": "john", "password": "secret1"},
			setup: func(m testServices) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), "john", "secret1").
					Return(models.User{UserID: 1, Login: "john", Role: models.RoleUser}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing password",
			payload:    models.Payload{"login": "john"},
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
			wantDesc:   "Validation failed",
		},
		{
			name:       "no payload",
			payload:    nil,
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
			wantDesc:   "Validation failed",
		},
		{
			name:       "wrong type",
			payload:    models.Payload{"login": 42, "password": "secret1"},
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "duplicate login",
			payload: models.Payload{"login": "john", "password": "secret1"},
			setup: func(m testServices) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), "john", "secret1").
					Return(models.User{}, store.ErrLoginAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantDesc:   store.ErrLoginAlreadyExists.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints, m := newTestEndpoints(t)
			tt.setup(m)

			resp, err := call(t, endpoints, AuthRegister, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode())
			if tt.wantDesc != "" {
				assert.Equal(t, tt.wantDesc, resp.Description())
			}
		})
	}
}

func TestRegister_ValidationErrorsUseJSONNames(t *testing.T) {
	endpoints, _ := newTestEndpoints(t)

	resp, err := call(t, endpoints, AuthRegister, models.Payload{"login": "jo", "password": "x"})
	require.NoError(t, err)

	problems, ok := resp.Get("errors")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{
		"login: must satisfy min=3",
		"password: must satisfy min=6",
	}, problems)
}

func TestRegister_UnexpectedErrorReachesDispatcher(t *testing.T) {
	endpoints, m := newTestEndpoints(t)
	boom := errors.New("db down")
	m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, boom)

	resp, err := call(t, endpoints, AuthRegister, models.Payload{"login": "john", "password": "secret1"})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, boom)

	var origin *models.OriginError
	require.ErrorAs(t, err, &origin)
	assert.Equal(t, "handlers_auth.go", origin.File)
}

func TestUnexpectedError_ReportsHandlerLocation(t *testing.T) {
	endpoints, m := newTestEndpoints(t)
	m.users.EXPECT().ListUsers(gomock.Any()).Return(nil, errors.New("db down"))
	m.auth.EXPECT().Authenticate(gomock.Any(), "admin-token").
		Return(models.Allowed(models.Identity{UserID: 1, Login: "admin", Role: models.RoleAdmin}))

	d, err := dispatcher.New(endpoints, m.auth, logger.Nop())
	require.NoError(t, err)

	resp := d.HandleRequest(context.Background(), models.Request{Method: http.MethodGet, Endpoint: UsersList, Token: "admin-token"})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Contains(t, resp.Description(), "Message: db down. File: handlers_users.go. Line: ")
	assert.NotContains(t, resp.Description(), "autogenerated")
}

// ─────────────────────────────────────────────
// auth.login
// ─────────────────────────────────────────────

func TestLogin(t *testing.T) {
	user := models.User{UserID: 1, Login: "john", Role: models.RoleUser}

	tests := []struct {
		name       string
		setup      func(m testServices)
		wantStatus int
	}{
		{
			name: "success",
			setup: func(m testServices) {
				m.auth.EXPECT().Login(gomock.Any(), "john", "secret1").Return(user, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "jwt"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			setup: func(m testServices) {
				m.auth.EXPECT().Login(gomock.Any(), "john", "secret1").Return(models.User{}, service.ErrWrongPassword)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown login",
			setup: func(m testServices) {
				m.auth.EXPECT().Login(gomock.Any(), "john", "secret1").Return(models.User{}, store.ErrNoUserWasFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "disabled",
			setup: func(m testServices) {
				m.auth.EXPECT().Login(gomock.Any(), "john", "secret1").Return(models.User{}, service.ErrUserIsDisabled)
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints, m := newTestEndpoints(t)
			tt.setup(m)

			resp, err := call(t, endpoints, AuthLogin, models.Payload{"login": "john", "password": "secret1"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode())

			if tt.wantStatus == http.StatusOK {
				token, _ := resp.Get("token")
				assert.Equal(t, "jwt", token)
			}
		})
	}
}

func TestLogin_WrongPasswordAndUnknownLoginLookAlike(t *testing.T) {
	endpoints, m := newTestEndpoints(t)
	m.auth.EXPECT().Login(gomock.Any(), "a", gomock.Any()).Return(models.User{}, service.ErrWrongPassword)
	m.auth.EXPECT().Login(gomock.Any(), "b", gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)

	wrong, err := call(t, endpoints, AuthLogin, models.Payload{"login": "a", "password": "secret1"})
	require.NoError(t, err)
	unknown, err := call(t, endpoints, AuthLogin, models.Payload{"login": "b", "password": "secret1"})
	require.NoError(t, err)

	assert.True(t, wrong.Equal(unknown))
}

// ─────────────────────────────────────────────
// users.*
// ─────────────────────────────────────────────

func TestMe(t *testing.T) {
	endpoints, _ := newTestEndpoints(t)
	identity := models.Identity{UserID: 4, Login: "kate", Role: models.RoleUser}

	resp, err := call(t, endpoints, UsersMe, models.Payload{models.LoggedUserKey: identity})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	got, _ := resp.Get("user")
	assert.Equal(t, identity, got)
}

func TestMe_WithoutIdentity(t *testing.T) {
	endpoints, _ := newTestEndpoints(t)

	resp, err := call(t, endpoints, UsersMe, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestListUsers(t *testing.T) {
	endpoints, m := newTestEndpoints(t)
	users := []models.User{{UserID: 1, Login: "admin"}}
	m.users.EXPECT().ListUsers(gomock.Any()).Return(users, nil)

	resp, err := call(t, endpoints, UsersList, nil)
	require.NoError(t, err)

	got, _ := resp.Get("users")
	assert.Equal(t, users, got)
}

func TestSetRole(t *testing.T) {
	tests := []struct {
		name       string
		payload    models.Payload
		setup      func(m testServices)
		wantStatus int
	}{
		{
			name:    "success",
			payload: models.Payload{"login": "john", "role": "admin"},
			setup: func(m testServices) {
				m.users.EXPECT().SetRole(gomock.Any(), "john", "admin").Return(models.User{Login: "john", Role: "admin"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "role outside allow-list",
			payload:    models.Payload{"login": "john", "role": "root"},
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "unknown login",
			payload: models.Payload{"login": "ghost", "role": "user"},
			setup: func(m testServices) {
				m.users.EXPECT().SetRole(gomock.Any(), "ghost", "user").Return(models.User{}, store.ErrNoUserWasFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints, m := newTestEndpoints(t)
			tt.setup(m)

			resp, err := call(t, endpoints, UsersSetRole, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode())
		})
	}
}

func TestDisable(t *testing.T) {
	admin := models.Identity{UserID: 1, Login: "admin", Role: models.RoleAdmin}

	tests := []struct {
		name       string
		payload    models.Payload
		setup      func(m testServices)
		wantStatus int
	}{
		{
			name:    "disable",
			payload: models.Payload{"login": "john", "disabled": true, models.LoggedUserKey: admin},
			setup: func(m testServices) {
				m.users.EXPECT().SetDisabled(gomock.Any(), "john", true).Return(models.User{Login: "john", Disabled: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "enable",
			payload: models.Payload{"login": "john", "disabled": false, models.LoggedUserKey: admin},
			setup: func(m testServices) {
				m.users.EXPECT().SetDisabled(gomock.Any(), "john", false).Return(models.User{Login: "john"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing flag",
			payload:    models.Payload{"login": "john", models.LoggedUserKey: admin},
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "self",
			payload:    models.Payload{"login": "admin", "disabled": true, models.LoggedUserKey: admin},
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints, m := newTestEndpoints(t)
			tt.setup(m)

			resp, err := call(t, endpoints, UsersDisable, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode())
		})
	}
}

// ─────────────────────────────────────────────
// Through the dispatcher
// ─────────────────────────────────────────────

func TestEndpoints_ThroughDispatcher(t *testing.T) {
	endpoints, m := newTestEndpoints(t)
	admin := models.Identity{UserID: 1, Login: "admin", Role: models.RoleAdmin}
	user := models.Identity{UserID: 2, Login: "john", Role: models.RoleUser}

	m.auth.EXPECT().Authenticate(gomock.Any(), "admin-token").Return(models.Allowed(admin)).AnyTimes()
	m.auth.EXPECT().Authenticate(gomock.Any(), "user-token").Return(models.Allowed(user)).AnyTimes()
	m.users.EXPECT().ListUsers(gomock.Any()).Return([]models.User{}, nil)

	d, err := dispatcher.New(endpoints, dispatcher.AuthenticatorFunc(m.auth.Authenticate), logger.Nop(), dispatcher.WithNotImplemented())
	require.NoError(t, err)
	ctx := context.Background()

	resp := d.HandleRequest(ctx, models.Request{Method: http.MethodGet, Endpoint: UsersList, Token: "user-token"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	resp = d.HandleRequest(ctx, models.Request{Method: http.MethodGet, Endpoint: UsersList, Token: "admin-token"})
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp = d.HandleRequest(ctx, models.Request{Method: http.MethodGet, Endpoint: UsersMe, Token: "user-token"})
	got, _ := resp.Get("user")
	assert.Equal(t, user, got)

	resp = d.HandleRequest(ctx, models.Request{Method: http.MethodPost, Endpoint: UsersDelete, Token: "admin-token"})
	assert.Same(t, models.NotImplemented, resp)
}
