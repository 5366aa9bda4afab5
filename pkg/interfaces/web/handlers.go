package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/application/services/estimation"
	"github.com/vsinha/schc/pkg/interfaces/cli/output"
)

// ErrorReply is the JSON body of every failed API call
type ErrorReply struct {
	Error string `json:"error"`
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	session := s.holder.Current()
	s.renderDashboard(w, http.StatusOK, output.DashboardData{
		Options:   session.Advisor.Options(),
		Request:   session.Advisor.DefaultRequest(),
		Readiness: session.Readiness,
	})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	session := s.holder.Current()
	data := output.DashboardData{
		Options:   session.Advisor.Options(),
		Request:   session.Advisor.DefaultRequest(),
		Readiness: session.Readiness,
	}

	req, err := parseForm(r, data.Request)
	data.Request = req
	if err != nil {
		data.Error = err.Error()
		s.renderDashboard(w, http.StatusBadRequest, data)
		return
	}

	rec, err := session.Advisor.Evaluate(r.Context(), req)
	if err != nil {
		data.Error = err.Error()
		s.renderDashboard(w, statusFor(err), data)
		return
	}

	view := output.NewView(rec)
	data.View = &view
	s.renderDashboard(w, http.StatusOK, data)
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	var req dto.RecommendationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorReply{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	rec, err := s.holder.Current().Advisor.Evaluate(r.Context(), req)
	if err != nil {
		render.Status(r, statusFor(err))
		render.JSON(w, r, ErrorReply{Error: err.Error()})
		return
	}

	render.JSON(w, r, rec)
}

func (s *Server) options(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.holder.Current().Advisor.Options())
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.holder.Current().Readiness)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) renderDashboard(w http.ResponseWriter, status int, data output.DashboardData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := output.RenderDashboard(w, data); err != nil {
		s.logger.Errorw("failed to render dashboard", "error", err)
	}
}

func statusFor(err error) int {
	if errors.Is(err, estimation.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// parseForm overlays the submitted form fields on defaults. Fields left
// empty keep their default value.
func parseForm(r *http.Request, defaults dto.RecommendationRequest) (dto.RecommendationRequest, error) {
	req := defaults
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form: %w", err)
	}

	text := map[string]*string{
		"hospital":      &req.Hospital,
		"medicine":      &req.Medicine,
		"origin":        &req.Origin,
		"destination":   &req.Destination,
		"carrier":       &req.Carrier,
		"service_level": &req.ServiceLevel,
	}
	for name, field := range text {
		if v := strings.TrimSpace(r.PostForm.Get(name)); v != "" {
			*field = v
		}
	}

	ints := map[string]*int{
		"month":          &req.Month,
		"lead_time_days": &req.LeadTimeDays,
		"stops":          &req.Stops,
	}
	for name, field := range ints {
		v := strings.TrimSpace(r.PostForm.Get(name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%s must be a whole number, got %q", name, v)
		}
		*field = n
	}

	if v := strings.TrimSpace(r.PostForm.Get("current_inventory")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("current_inventory must be a whole number, got %q", v)
		}
		req.CurrentInventory = n
	}

	floats := map[string]*float64{
		"weight":            &req.Weight,
		"distance_override": &req.DistanceOverride,
	}
	for name, field := range floats {
		v := strings.TrimSpace(r.PostForm.Get(name))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("%s must be a number, got %q", name, v)
		}
		*field = f
	}

	return req, nil
}
