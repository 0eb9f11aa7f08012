// Package server exposes material evaluation over a websocket. Each
// connection holds its own current material and answers requests in order.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/curesim/internal/config"
	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/material"
	"github.com/san-kum/curesim/internal/storage"
	"github.com/san-kum/curesim/internal/sweep"
)

const (
	TypeMaterial = "material"
	TypeEval     = "eval"
	TypeBatch    = "batch"
	TypeSweep    = "sweep"
	TypeResult   = "result"
	TypeError    = "error"

	shutdownTimeout = 5 * time.Second
)

// Request is one client message. Only the fields used by Type are read.
type Request struct {
	Type   string           `json:"type"`
	Preset string           `json:"preset,omitempty"`
	Phi    *float64         `json:"phi,omitempty"`
	TempC  *float64         `json:"temp_c,omitempty"`
	Points []material.Point `json:"points,omitempty"`
	Sweep  *SweepRequest    `json:"sweep,omitempty"`
}

type SweepRequest struct {
	Axis  string  `json:"axis"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Steps int     `json:"steps"`
	Fixed float64 `json:"fixed"`
}

type Response struct {
	Type       string                `json:"type"`
	Request    string                `json:"request"`
	Material   string                `json:"material,omitempty"`
	Models     map[string]string     `json:"models,omitempty"`
	Properties *material.Properties  `json:"properties,omitempty"`
	Batch      []material.Properties `json:"batch,omitempty"`
	Sweep      *storage.ExportData   `json:"sweep,omitempty"`
	Kind       string                `json:"kind,omitempty"`
	Error      string                `json:"error,omitempty"`
}

type Server struct {
	upgrader websocket.Upgrader
	initial  *config.Config
	log      *logrus.Logger
}

// New returns a server whose connections start on the material in cfg.
func New(cfg *config.Config, log *logrus.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		initial: cfg,
		log:     log,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.WithField("addr", addr).Info("server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.WithField("remote", r.RemoteAddr)
	log.Info("client connected")

	m, err := s.initial.Build()
	if err != nil {
		_ = conn.WriteJSON(errorResponse("", err))
		return
	}

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("read failed")
			}
			log.Info("client disconnected")
			return
		}

		var resp Response
		m, resp = handle(m, req)
		log.WithFields(logrus.Fields{"request": req.Type, "response": resp.Type}).Debug("handled")

		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Warn("write failed")
			return
		}
	}
}

// handle answers one request and returns the material to use afterwards.
func handle(m *material.Material, req Request) (*material.Material, Response) {
	switch req.Type {
	case TypeMaterial:
		cfg := config.GetPreset(req.Preset)
		if cfg == nil {
			return m, errorResponse(req.Type, cure.ConfigError("preset", req.Preset, config.ListPresets()))
		}
		next, err := cfg.Build()
		if err != nil {
			return m, errorResponse(req.Type, err)
		}
		return next, Response{Type: TypeResult, Request: req.Type, Material: next.Name, Models: next.Describe()}

	case TypeEval:
		if req.Phi == nil || req.TempC == nil {
			return m, errorResponse(req.Type, fmt.Errorf("%w: eval request needs phi and temp_c", cure.ErrConfiguration))
		}
		props, err := m.Evaluate(*req.Phi, *req.TempC)
		if err != nil {
			return m, errorResponse(req.Type, err)
		}
		return m, Response{Type: TypeResult, Request: req.Type, Material: m.Name, Properties: &props}

	case TypeBatch:
		props, err := m.EvaluateBatch(req.Points)
		if err != nil {
			return m, errorResponse(req.Type, err)
		}
		return m, Response{Type: TypeResult, Request: req.Type, Material: m.Name, Batch: props}

	case TypeSweep:
		if req.Sweep == nil {
			return m, errorResponse(req.Type, fmt.Errorf("%w: sweep request without parameters", cure.ErrConfiguration))
		}
		axis, err := sweep.ParseAxis(req.Sweep.Axis)
		if err != nil {
			return m, errorResponse(req.Type, err)
		}
		res, err := sweep.Run(m, sweep.Spec{
			Axis: axis, Min: req.Sweep.Min, Max: req.Sweep.Max, Steps: req.Sweep.Steps, Fixed: req.Sweep.Fixed,
		})
		if err != nil {
			return m, errorResponse(req.Type, err)
		}
		data := storage.NewExportData(res, m.Describe())
		return m, Response{Type: TypeResult, Request: req.Type, Material: m.Name, Sweep: &data}
	}

	return m, errorResponse(req.Type, cure.ConfigError("request type", req.Type,
		[]string{TypeMaterial, TypeEval, TypeBatch, TypeSweep}))
}

func errorResponse(request string, err error) Response {
	return Response{Type: TypeError, Request: request, Kind: Kind(err), Error: err.Error()}
}

// Kind names the error class for clients that cannot unwrap Go errors.
func Kind(err error) string {
	switch {
	case errors.Is(err, cure.ErrInputDomain):
		return "input_domain"
	case errors.Is(err, cure.ErrNumericOverflow):
		return "numeric_overflow"
	case errors.Is(err, cure.ErrConfiguration):
		return "configuration"
	}
	return "internal"
}
