package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"WebWordCount/internal/dictionary"
	"WebWordCount/internal/dispatch"
	"WebWordCount/internal/logger"
)

type ServerOpts struct {
	Port     int
	LogLevel string
}

// Server exposes the counting pipeline over a small JSON API.
type Server struct {
	opts       ServerOpts
	dispatcher *dispatch.Dispatcher
	dict       *dictionary.Dictionary
	logger     *logger.Logger
	engine     *gin.Engine
}

func NewServer(opts ServerOpts, d *dispatch.Dispatcher, dict *dictionary.Dictionary) *Server {
	s := &Server{
		opts:       opts,
		dispatcher: d,
		dict:       dict,
		logger:     logger.New(opts.LogLevel),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/dictionary", s.handleDictionary)
	engine.POST("/count", s.handleCount)

	s.engine = engine
	return s
}

// Handler returns the underlying HTTP handler, mainly for serving through
// a custom listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving the API on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	s.logger.Info("HTTP API listening on %s", addr)
	return s.engine.Run(addr)
}

type countRequest struct {
	Files []string `json:"files" binding:"required,min=1"`
}

type countEntry struct {
	File         string `json:"file"`
	Words        int    `json:"words"`
	EnglishWords int    `json:"english_words"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// handleCount runs the same fetch-and-count pipeline as the CLI and
// returns one entry per requested file, in request order.
func (s *Server) handleCount(c *gin.Context) {
	var req countRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	s.logger.Info("Count request: files=%d", len(req.Files))
	results := s.dispatcher.Run(req.Files)

	entries := make([]countEntry, len(results))
	for i, res := range results {
		entries[i] = countEntry{
			File:         res.File,
			Words:        res.Words,
			EnglishWords: res.EnglishWords,
			Status:       string(res.Status),
		}
		if res.Err != nil {
			entries[i].Error = res.Err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleDictionary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"words": s.dict.Len()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
