package http

import (
	"net/http"
	"strconv"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/auth"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/middleware"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
)

// principal returns the caller identity or writes a 401.
func principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return auth.Principal{}, false
	}
	return p, true
}

// employeePrincipal additionally requires the token to name an employee.
func employeePrincipal(w http.ResponseWriter, r *http.Request) (auth.Principal, string, bool) {
	p, ok := principal(w, r)
	if !ok {
		return p, "", false
	}
	if p.EmployeeID == nil {
		response.HandleError(w, auth.ErrEmployeeIDRequired)
		return p, "", false
	}
	return p, *p.EmployeeID, true
}

// intQueryParam parses an integer query parameter. A missing parameter yields
// def; a malformed one writes a 400 and reports false.
func intQueryParam(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return def, true
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		response.BadRequest(w, "invalid "+key+" parameter", nil)
		return 0, false
	}
	return n, true
}

// yearMonth reads the year and month query parameters.
func yearMonth(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	if year, ok = intQueryParam(w, r, "year", 0); !ok {
		return 0, 0, false
	}
	if month, ok = intQueryParam(w, r, "month", 0); !ok {
		return 0, 0, false
	}
	return year, month, true
}

// authorizeEmployee lets managers act on anyone and employees only on
// themselves.
func authorizeEmployee(w http.ResponseWriter, p auth.Principal, employeeID string) bool {
	if p.Role.CanManage() {
		return true
	}
	if p.EmployeeID != nil && *p.EmployeeID == employeeID {
		return true
	}
	response.HandleError(w, auth.ErrManagerAccessRequired)
	return false
}
