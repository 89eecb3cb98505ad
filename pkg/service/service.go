package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/egandro/variance-heatmap/pkg/chart"
	"github.com/egandro/variance-heatmap/pkg/colormap"
	"github.com/egandro/variance-heatmap/pkg/dataset"
	"github.com/egandro/variance-heatmap/pkg/raster"
	"github.com/egandro/variance-heatmap/pkg/svg"
)

// service represents the HTTP service.
type service struct {
	Host     string
	Port     int
	server   *http.Server
	provider dataset.Provider
	ramp     colormap.Ramp
	title    string
}

// New creates a new service instance.
func New(host string, port int, provider dataset.Provider, ramp colormap.Ramp, title string) *service {
	if len(ramp) == 0 {
		ramp = colormap.DefaultRamp()
	}
	return &service{
		Host:     host,
		Port:     port,
		provider: provider,
		ramp:     ramp,
		title:    title,
	}
}

// Handler returns the service routes.
func (s *service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/color", s.handleColor)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /heatmap.svg", s.handleSVG)
	mux.HandleFunc("GET /heatmap.png", s.handlePNG)
	return mux
}

// Start runs the HTTP server.
func (s *service) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	slog.Info("Starting HTTP service", "address", addr)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *service) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *service) handleSummary(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dataset(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, d.Summary())
}

// ColorResponse is the answer of /api/color.
type ColorResponse struct {
	Variance float64 `json:"variance"`
	Percent  float64 `json:"percent"`
	Color    string  `json:"color"`
	Hex      string  `json:"hex"`
}

func (s *service) handleColor(w http.ResponseWriter, r *http.Request) {
	v, err := strconv.ParseFloat(r.URL.Query().Get("variance"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "Invalid variance"})
		return
	}
	d, ok := s.dataset(w, r)
	if !ok {
		return
	}
	m := d.Mapper(s.ramp)
	c := m.Color(v)
	s.respond(w, http.StatusOK, ColorResponse{Variance: v, Percent: m.Percent(v), Color: c.String(), Hex: c.Hex()})
}

// LegendStop is one ramp stop of /api/legend.
type LegendStop struct {
	Percent  float64 `json:"percent"`
	Variance float64 `json:"variance"`
	Color    string  `json:"color"`
	Hex      string  `json:"hex"`
}

// LegendResponse is the answer of /api/legend.
type LegendResponse struct {
	Range    colormap.Range `json:"range"`
	Fallback string         `json:"fallback"`
	Stops    []LegendStop   `json:"stops"`
}

func (s *service) handleLegend(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dataset(w, r)
	if !ok {
		return
	}
	m := d.Mapper(s.ramp)
	resp := LegendResponse{Range: m.Range, Fallback: m.FallbackColor().Hex()}
	for _, stop := range m.Ramp {
		resp.Stops = append(resp.Stops, LegendStop{
			Percent:  stop.Threshold,
			Variance: m.Range.Min + stop.Threshold/100*(m.Range.Max-m.Range.Min),
			Color:    stop.Color.String(),
			Hex:      stop.Color.Hex(),
		})
	}
	s.respond(w, http.StatusOK, resp)
}

func (s *service) handleSVG(w http.ResponseWriter, r *http.Request) {
	c, ok := s.chart(w, r)
	if !ok {
		return
	}
	out, err := svg.Render(c)
	if err != nil {
		s.respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(out))
}

func (s *service) handlePNG(w http.ResponseWriter, r *http.Request) {
	c, ok := s.chart(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := raster.Encode(&buf, c); err != nil {
		s.respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *service) chart(w http.ResponseWriter, r *http.Request) (*chart.Chart, bool) {
	d, ok := s.dataset(w, r)
	if !ok {
		return nil, false
	}
	c, err := chart.New(d, chart.Options{
		Title:    s.title,
		Subtitle: chart.Subtitle(d),
		Ramp:     s.ramp,
	})
	if err != nil {
		s.respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return c, true
}

func (s *service) dataset(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	d, err := s.provider.Dataset(r.Context())
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		s.respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return nil, false
	}
	return d, true
}

func (s *service) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
