package services

import (
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"fishdata/internal/providers"
	"fishdata/internal/structures"
)

type AuditServiceInterface interface {
	AuthSuccess(keyName, keyID, endpoint, clientIP string)
	AuthFailure(clientIP, endpoint, errorMessage string)
	PermissionCheck(keyName, keyID, endpoint, clientIP string, queryParams map[string]any, allowed bool, errorMessage string)
	DataAccess(keyName, keyID, endpoint, method, clientIP string, queryParams map[string]any, statusCode int, durationMs float64)
	Close()
}

type auditEvent struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	APIKeyName   string         `json:"api_key_name"`
	APIKeyID     string         `json:"api_key_id"`
	EventType    string         `json:"event_type"`
	Endpoint     string         `json:"endpoint"`
	Method       string         `json:"method"`
	ClientIP     string         `json:"client_ip"`
	Country      string         `json:"country,omitempty"`
	QueryParams  map[string]any `json:"query_params,omitempty"`
	StatusCode   int            `json:"status_code,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	DurationMs   float64        `json:"duration_ms,omitempty"`
}

// AuditService appends structured events to a JSON-lines file through
// a buffered channel and a single writer goroutine. Emission is
// fire-and-forget: a full buffer drops the event with a warning and
// never blocks or fails the request being audited.
type AuditService struct {
	logger providers.Logger
	file   *os.File
	events chan auditEvent
	done   chan struct{}
}

func NewAuditService(conf *structures.Config, logger providers.Logger) (AuditServiceInterface, error) {
	if !conf.Audit.Enabled {
		logger.Infof(providers.TypeApp, "Audit logging disabled")
		return &noopAudit{}, nil
	}

	file, err := os.OpenFile(conf.Audit.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	bufferSize := conf.Audit.BufferSize
	if bufferSize <= 0 {
		bufferSize = 256
	}

	s := &AuditService{
		logger: logger,
		file:   file,
		events: make(chan auditEvent, bufferSize),
		done:   make(chan struct{}),
	}
	go s.run()

	logger.Infof(providers.TypeApp, "Audit logging initialized: %s", conf.Audit.FilePath)
	return s, nil
}

func (s *AuditService) run() {
	defer close(s.done)
	for ev := range s.events {
		line, err := json.Marshal(ev)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Failed to encode audit event: %v", err)
			continue
		}
		if _, err := s.file.Write(append(line, '\n')); err != nil {
			s.logger.Errorf(providers.TypeApp, "Failed to write audit event: %v", err)
		}
	}
}

func (s *AuditService) emit(ev auditEvent) {
	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now().UTC()
	select {
	case s.events <- ev:
	default:
		s.logger.Warnf(providers.TypeApp, "Audit buffer full, dropping %s event", ev.EventType)
	}
}

func (s *AuditService) AuthSuccess(keyName, keyID, endpoint, clientIP string) {
	s.emit(auditEvent{
		APIKeyName: keyName,
		APIKeyID:   keyID,
		EventType:  "auth_success",
		Endpoint:   endpoint,
		Method:     "GET",
		ClientIP:   clientIP,
	})
}

func (s *AuditService) AuthFailure(clientIP, endpoint, errorMessage string) {
	s.emit(auditEvent{
		APIKeyName:   "Unknown",
		APIKeyID:     "N/A",
		EventType:    "auth_failure",
		Endpoint:     endpoint,
		Method:       "GET",
		ClientIP:     clientIP,
		ErrorMessage: errorMessage,
	})
}

func (s *AuditService) PermissionCheck(keyName, keyID, endpoint, clientIP string, queryParams map[string]any, allowed bool, errorMessage string) {
	eventType := "permission_check"
	if !allowed {
		eventType = "permission_denied"
	}
	s.emit(auditEvent{
		APIKeyName:   keyName,
		APIKeyID:     keyID,
		EventType:    eventType,
		Endpoint:     endpoint,
		Method:       "GET",
		ClientIP:     clientIP,
		Country:      stringParam(queryParams, "country"),
		QueryParams:  queryParams,
		ErrorMessage: errorMessage,
	})
}

func (s *AuditService) DataAccess(keyName, keyID, endpoint, method, clientIP string, queryParams map[string]any, statusCode int, durationMs float64) {
	s.emit(auditEvent{
		APIKeyName:  keyName,
		APIKeyID:    keyID,
		EventType:   "data_access",
		Endpoint:    endpoint,
		Method:      method,
		ClientIP:    clientIP,
		Country:     stringParam(queryParams, "country"),
		QueryParams: queryParams,
		StatusCode:  statusCode,
		DurationMs:  durationMs,
	})
}

func (s *AuditService) Close() {
	close(s.events)
	<-s.done
	_ = s.file.Close()
}

func stringParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

type noopAudit struct{}

func (n *noopAudit) AuthSuccess(_, _, _, _ string) {}
func (n *noopAudit) AuthFailure(_, _, _ string)    {}
func (n *noopAudit) PermissionCheck(_, _, _, _ string, _ map[string]any, _ bool, _ string) {
}
func (n *noopAudit) DataAccess(_, _, _, _, _ string, _ map[string]any, _ int, _ float64) {}
func (n *noopAudit) Close()                                                             {}
