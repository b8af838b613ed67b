package staff

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient/apitest"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
)

var admin = auth.User{Username: "owner", TenantID: "t-1", Roles: []auth.Role{{RoleName: "ADMIN"}}}

func request(api *apitest.Fake, sess auth.Session, user auth.User, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	g := e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(auth.NewContext(c.Request().Context(), sess, user)))
			return next(c)
		}
	})
	NewHandler(NewService(api), zerolog.Nop()).RegisterRoutes(g)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_RolesIsPublic(t *testing.T) {
	api := apitest.New().On(http.MethodGet, "/o/role", []Role{{ID: "r-1", RoleName: "DOCTOR"}})
	rec := request(api, auth.Session{}, auth.User{}, http.MethodGet, "/api/v1/roles", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out []Role
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if len(out) != 1 || out[0].RoleName != "DOCTOR" {
		t.Errorf("unexpected roles %+v", out)
	}
}

func TestHandler_StaffRoutesNeedAdmin(t *testing.T) {
	receptionist := auth.User{TenantID: "t-1", Roles: []auth.Role{{RoleName: "RECEPTIONIST"}}}
	tests := []struct {
		method, target string
	}{
		{http.MethodGet, "/api/v1/staff"},
		{http.MethodGet, "/api/v1/staff/u-1"},
		{http.MethodPut, "/api/v1/staff/u-1"},
		{http.MethodDelete, "/api/v1/staff/u-1"},
		{http.MethodPost, "/api/v1/staff"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			api := apitest.New()
			if rec := request(api, signedIn, receptionist, tt.method, tt.target, ""); rec.Code != http.StatusForbidden {
				t.Errorf("expected 403, got %d", rec.Code)
			}
			if rec := request(api, auth.Session{}, admin, tt.method, tt.target, ""); rec.Code != http.StatusUnauthorized {
				t.Errorf("signed out: expected 401, got %d", rec.Code)
			}
			if api.Count() != 0 {
				t.Errorf("expected no upstream calls, got %d", api.Count())
			}
		})
	}
}

func TestHandler_AdminCrud(t *testing.T) {
	api := apitest.New().
		On(http.MethodGet, "/users/staff", []Member{{User: Account{ID: "u-1"}}}).
		On(http.MethodPut, "/users/staff/u-1", Member{User: Account{ID: "u-1"}, Person: Person{Sex: "FEMALE"}})

	rec := request(api, signedIn, admin, http.MethodGet, "/api/v1/staff?clinicId=cl-1", "")
	if rec.Code != http.StatusOK || api.Last().Query["clinicId"] != "cl-1" {
		t.Errorf("list: %d %v", rec.Code, api.Last().Query)
	}

	rec = request(api, signedIn, admin, http.MethodPut, "/api/v1/staff/u-1", `{"sex":"FEMALE"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("update: expected 200, got %d", rec.Code)
	}
	if body, _ := api.Last().Body.(UpdatePayload); body.Sex == nil || *body.Sex != "FEMALE" {
		t.Errorf("unexpected update body %+v", api.Last().Body)
	}

	rec = request(api, signedIn, admin, http.MethodDelete, "/api/v1/staff/u-1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
}

func TestHandler_Create(t *testing.T) {
	api := apitest.New()
	b, _ := json.Marshal(completeForm())

	rec := request(api, signedIn, admin, http.MethodPost, "/api/v1/staff", string(b))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body, _ := api.Last().Body.(CreatePayload)
	if api.Last().Path != "/users/staff" {
		t.Errorf("unexpected path %s", api.Last().Path)
	}
	if body.TenantID != "t-1" || body.Username != "sunita" {
		t.Errorf("unexpected payload %+v", body)
	}
}
