package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/studiowebux/metawrite/internal/types"
	"go.uber.org/zap"
)

// maxLogs bounds the in-memory request log
const maxLogs = 1000

// shutdownTimeout bounds graceful shutdown in Run
const shutdownTimeout = 5 * time.Second

// LogsPath serves the request log: GET lists it, DELETE clears it
const LogsPath = "/__mock/logs"

// queryPlaceholder is replaced with the JSON-escaped request query
const queryPlaceholder = "{{query}}"

// Server represents the mock generation service
type Server struct {
	config    *Config
	logger    *zap.Logger
	logs      []RequestLog
	logsMutex sync.RWMutex
	workdir   string
}

// NewServer creates a new mock server. workdir resolves relative bodyFile
// paths.
func NewServer(cfg *Config, workdir string, logger *zap.Logger) *Server {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		config:  cfg,
		logger:  logger,
		logs:    make([]RequestLog, 0),
		workdir: workdir,
	}
}

// Handler returns the http.Handler serving the configured routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(LogsPath, s.handleLogs)
	mux.HandleFunc("/", s.handleRequest)
	return mux
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on an existing listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	s.logger.Info("mock server listening",
		zap.String("address", "http://"+listener.Addr().String()),
		zap.Int("routes", len(s.config.Routes)))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop mock server: %w", err)
	}
	s.logger.Info("mock server stopped", s.logSummary()...)
	return nil
}

// logSummary counts the logged requests per status code
func (s *Server) logSummary() []zap.Field {
	logs := s.GetLogs()
	byStatus := make(map[string]int)
	for _, l := range logs {
		byStatus[strconv.Itoa(l.Status)]++
	}
	return []zap.Field{
		zap.Int("requests", len(logs)),
		zap.Any("by_status", byStatus),
	}
}

// handleLogs exposes the in-memory request log
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.GetLogs()); err != nil {
			s.logger.Warn("failed to write request log", zap.Error(err))
		}
	case http.MethodDelete:
		s.ClearLogs()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRequest handles incoming HTTP requests
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bodyBytes, _ := io.ReadAll(r.Body)
	r.Body.Close()
	requestBody := string(bodyBytes)
	query := extractQuery(r, bodyBytes)

	route := s.findMatchingRoute(r.Method, r.URL.Path, query)

	var status int
	var responseBody string
	var matchedRule string

	if route == nil {
		status = http.StatusNotFound
		responseBody = fmt.Sprintf("Mock server: No route configured for %s %s", r.Method, r.URL.Path)
		matchedRule = "none"
	} else {
		if route.Delay > 0 {
			select {
			case <-time.After(time.Duration(route.Delay) * time.Millisecond):
			case <-r.Context().Done():
				s.logger.Debug("client went away during delay", zap.String("path", r.URL.Path))
				return
			}
		}

		status = route.Status
		if status == 0 {
			status = http.StatusOK
		}

		for key, value := range route.Headers {
			w.Header().Set(key, value)
		}

		template, err := s.routeBody(route)
		if err != nil {
			status = http.StatusInternalServerError
			responseBody = fmt.Sprintf("Mock server: %v", err)
		} else {
			responseBody = RenderBody(template, query)
		}

		matchedRule = route.Name
		if matchedRule == "" {
			matchedRule = fmt.Sprintf("%s %s", route.Method, route.Path)
		}
	}

	w.WriteHeader(status)
	w.Write([]byte(responseBody))

	duration := time.Since(start)

	s.logger.Info("mock request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("query", query),
		zap.String("route", matchedRule),
		zap.Int("status", status),
		zap.Duration("duration", duration))

	if s.config.Logging {
		s.logRequest(RequestLog{
			Timestamp:   start,
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       query,
			Body:        requestBody,
			MatchedRule: matchedRule,
			Status:      status,
			Duration:    duration,
		})
	}
}

// routeBody returns the inline body or reads bodyFile relative to workdir
func (s *Server) routeBody(route *Route) (string, error) {
	if route.BodyFile == "" {
		return route.Body, nil
	}
	filePath := route.BodyFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(s.workdir, filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read body file %s: %w", route.BodyFile, err)
	}
	return string(data), nil
}

// extractQuery reads the query from a {"query": ...} body, falling back to
// the ?query= URL parameter.
func extractQuery(r *http.Request, body []byte) string {
	var req types.GenerateRequest
	if err := json.Unmarshal(body, &req); err == nil && req.Query != "" {
		return req.Query
	}
	return r.URL.Query().Get("query")
}

// RenderBody replaces every {{query}} placeholder with the query escaped
// for use inside a JSON string literal.
func RenderBody(template, query string) string {
	if !strings.Contains(template, queryPlaceholder) {
		return template
	}
	quoted, _ := json.Marshal(query)
	escaped := string(quoted[1 : len(quoted)-1])
	return strings.ReplaceAll(template, queryPlaceholder, escaped)
}

// findMatchingRoute finds the first route that matches method, path and
// query substring
func (s *Server) findMatchingRoute(method, path, query string) *Route {
	for i := range s.config.Routes {
		route := &s.config.Routes[i]
		if !strings.EqualFold(route.Method, method) {
			continue
		}
		if !matchPath(route, path) {
			continue
		}
		if route.QueryContains != "" && !strings.Contains(query, route.QueryContains) {
			continue
		}
		return route
	}

	return nil
}

func matchPath(route *Route, path string) bool {
	switch route.PathType {
	case "", "exact":
		return route.Path == path
	case "prefix":
		return strings.HasPrefix(path, route.Path)
	case "regex":
		re, err := regexp.Compile(route.Path)
		return err == nil && re.MatchString(path)
	}
	return false
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)

	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}

// GetAddress returns the server base URL, usable as the client endpoint
func (s *Server) GetAddress() string {
	return "http://" + s.addr()
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}
