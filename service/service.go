package service

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calehh/evote/view"
)

const (
	RequestIDHeader = "X-Request-Id"
	shutdownTimeout = 10 * time.Second
)

//go:embed index.tmpl
var indexTemplate string

type Service struct {
	logger     log.Logger
	engine     *gin.Engine
	store      *view.Store
	listenAddr string
}

func NewService(listenAddr string, store *view.Store, logger log.Logger) *Service {
	r := gin.New()
	s := &Service{
		logger:     logger.With("module", "service"),
		engine:     r,
		store:      store,
		listenAddr: listenAddr,
	}
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(template.Must(template.New("page").Parse(indexTemplate)))

	r.GET("/", s.handleIndex)
	r.POST("/add", s.handleFormAdd)
	r.POST("/show", s.handleFormShow)

	api := r.Group("/api")
	api.GET("/state", s.handleGetState)
	api.PUT("/draft", s.handleEditDraft)
	api.POST("/candidates", s.handleAddCandidate)
	api.POST("/candidates/show", s.handleShowCandidates)
	api.DELETE("/notice", s.handleDismissNotice)
	return s
}

func (s *Service) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Service) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.listenAddr,
		Handler: s.engine,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web front end listening", "addr", s.listenAddr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("web front end stopped")
	return nil
}

func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		start := time.Now()
		c.Next()
		s.logger.Debug("request", "id", id, "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "elapsed", time.Since(start))
	}
}

func (s *Service) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", s.store.State())
}

type candidateForm struct {
	Name string `form:"name"`
}

func (s *Service) handleFormAdd(c *gin.Context) {
	var form candidateForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	s.store.EditDraft(form.Name)
	s.store.AddCandidate(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Service) handleFormShow(c *gin.Context) {
	s.store.ShowCandidates(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

type StateResponse struct {
	view.State
	AccountLabel string `json:"accountLabel"`
}

func newStateResponse(st view.State) StateResponse {
	return StateResponse{State: st, AccountLabel: st.AccountLabel()}
}

func (s *Service) handleGetState(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(s.store.State()))
}

type DraftReq struct {
	Name string `json:"name"`
}

func (s *Service) handleEditDraft(c *gin.Context) {
	var req DraftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newStateResponse(s.store.EditDraft(req.Name)))
}

type AddCandidateReq struct {
	Name *string `json:"name"`
}

// handleAddCandidate submits the draft, or the name in the body when present.
// Outcome is reported through the notice of the returned state.
func (s *Service) handleAddCandidate(c *gin.Context) {
	var req AddCandidateReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		s.store.EditDraft(*req.Name)
	}
	c.JSON(http.StatusOK, newStateResponse(s.store.AddCandidate(c.Request.Context())))
}

func (s *Service) handleShowCandidates(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(s.store.ShowCandidates(c.Request.Context())))
}

func (s *Service) handleDismissNotice(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(s.store.DismissNotice()))
}
