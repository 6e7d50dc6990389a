// Package contract declares the HTTP surface as data: one Operation per
// endpoint, shared by route registration, clients, and tests, so path and
// method live in exactly one place.
package contract

import (
	"net/http"
	"net/url"
	"strings"
)

// Operation describes one logical endpoint.
type Operation struct {
	Name   string
	Method string
	Path   string // gin-style template with :name parameters
}

var (
	Register = Operation{Name: "auth.register", Method: http.MethodPost, Path: "/api/auth/register"}
	Login    = Operation{Name: "auth.login", Method: http.MethodPost, Path: "/api/auth/login"}

	GetProfile    = Operation{Name: "profile.get", Method: http.MethodGet, Path: "/api/profile"}
	CreateProfile = Operation{Name: "profile.create", Method: http.MethodPost, Path: "/api/profile"}
	UpdateProfile = Operation{Name: "profile.update", Method: http.MethodPut, Path: "/api/profile"}
	ResetProfile  = Operation{Name: "profile.reset", Method: http.MethodDelete, Path: "/api/profile"}

	GetCurrentPlan = Operation{Name: "plans.current", Method: http.MethodGet, Path: "/api/plans/current"}
	ListPlans      = Operation{Name: "plans.list", Method: http.MethodGet, Path: "/api/plans"}
	GeneratePlan   = Operation{Name: "plans.generate", Method: http.MethodPost, Path: "/api/plans/generate"}

	ListWorkouts = Operation{Name: "workouts.list", Method: http.MethodGet, Path: "/api/workouts"}
	GetWorkout   = Operation{Name: "workouts.get", Method: http.MethodGet, Path: "/api/workouts/:id"}

	StartLog    = Operation{Name: "logs.start", Method: http.MethodPost, Path: "/api/logs/start"}
	CompleteLog = Operation{Name: "logs.complete", Method: http.MethodPost, Path: "/api/logs/:id/complete"}
	LogSet      = Operation{Name: "logs.logSet", Method: http.MethodPost, Path: "/api/logs/:id/sets"}
	LogHistory  = Operation{Name: "logs.history", Method: http.MethodGet, Path: "/api/logs/history"}
	LogStats    = Operation{Name: "logs.stats", Method: http.MethodGet, Path: "/api/logs/stats"}
	GetLog      = Operation{Name: "logs.get", Method: http.MethodGet, Path: "/api/logs/:id"}

	PhotoUploadURL = Operation{Name: "photos.uploadURL", Method: http.MethodPost, Path: "/api/photos/upload-url"}
	ConfirmPhoto   = Operation{Name: "photos.confirm", Method: http.MethodPost, Path: "/api/photos"}
	ListPhotos     = Operation{Name: "photos.list", Method: http.MethodGet, Path: "/api/photos"}
	DeletePhoto    = Operation{Name: "photos.delete", Method: http.MethodDelete, Path: "/api/photos/:id"}
)

// Operations lists every endpoint of the service.
var Operations = []Operation{
	Register, Login,
	GetProfile, CreateProfile, UpdateProfile, ResetProfile,
	GetCurrentPlan, ListPlans, GeneratePlan,
	ListWorkouts, GetWorkout,
	StartLog, CompleteLog, LogSet, LogHistory, LogStats, GetLog,
	PhotoUploadURL, ConfirmPhoto, ListPhotos, DeletePhoto,
}

// URL substitutes the :name parameters of the operation's path template.
// Values are percent-encoded, so a value containing "/" or other reserved
// characters cannot corrupt the path.
func (o Operation) URL(params map[string]string) string {
	segments := strings.Split(o.Path, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		if value, ok := params[segment[1:]]; ok {
			segments[i] = url.PathEscape(value)
		}
	}
	return strings.Join(segments, "/")
}
