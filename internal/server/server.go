// Package server exposes diecut generation over HTTP.
package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/BagCut/internal/descriptor"
	"github.com/piwi3910/BagCut/internal/engine"
	"github.com/piwi3910/BagCut/internal/export"
	"github.com/piwi3910/BagCut/internal/gcode"
	"github.com/piwi3910/BagCut/internal/model"
)

// DiecutRequest is the body of POST /api/diecut.
type DiecutRequest struct {
	Descriptor string              `json:"descriptor" binding:"required"`
	Label      string              `json:"label"`
	Machine    *model.MachineLimit `json:"machine,omitempty"` // Overrides the configured bed
}

// DiecutResponse is the JSON answer of POST /api/diecut.
type DiecutResponse struct {
	Job     model.Job     `json:"job"`
	Result  engine.Result `json:"result"`
	Drawing model.Drawing `json:"drawing"`
	Ticket  export.Ticket `json:"ticket"`
}

// Server serves diecuts computed with a fixed configuration.
type Server struct {
	cfg     model.AppConfig
	profile model.GCodeProfile
	router  *gin.Engine
}

// New builds a server and registers its routes. The configuration is
// read-only for the lifetime of the server.
func New(cfg model.AppConfig, profile model.GCodeProfile) *Server {
	s := &Server{cfg: cfg, profile: profile}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	api.POST("/diecut", s.handleDiecut)
	api.GET("/diecut.svg", s.handleSVG)
	api.GET("/diecut.pdf", s.handlePDF)
	api.GET("/diecut.png", s.handlePNG)
	api.GET("/diecut.gcode", s.handleGCode)
	api.GET("/machine", s.handleMachine)
	api.GET("/usage", s.handleUsage)

	s.router = r
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr until the server fails.
func (s *Server) Run(addr string) error { return s.router.Run(addr) }

func (s *Server) generate(desc, label string, limit model.MachineLimit) (export.Diecut, error) {
	opts := engine.OptionsFromConfig(s.cfg)
	opts.Limit = limit
	res, err := engine.Generate(desc, opts)
	if err != nil {
		return export.Diecut{}, err
	}
	return export.NewDiecut(model.NewJob(label, desc), res, s.cfg.Style.LabelFontSize), nil
}

// fromQuery generates the diecut named by the descriptor and label query
// parameters, answering the request itself on failure.
func (s *Server) fromQuery(c *gin.Context) (export.Diecut, bool) {
	d, err := s.generate(c.Query("descriptor"), c.Query("label"), s.cfg.Machine)
	if err != nil {
		abortWithError(c, err)
		return export.Diecut{}, false
	}
	return d, true
}

func abortWithError(c *gin.Context, err error) {
	if errors.Is(err, descriptor.ErrMissingDimensions) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "notation": descriptor.Notation})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) handleDiecut(c *gin.Context) {
	var req DiecutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "notation": descriptor.Notation})
		return
	}

	limit := s.cfg.Machine
	if req.Machine != nil {
		if !req.Machine.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "machine width and height must be positive"})
			return
		}
		limit = *req.Machine
	}

	d, err := s.generate(req.Descriptor, req.Label, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DiecutResponse{
		Job:     d.Job,
		Result:  d.Result,
		Drawing: d.Drawing,
		Ticket:  export.NewTicket(d),
	})
}

func (s *Server) handleSVG(c *gin.Context) {
	d, ok := s.fromQuery(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, d, s.cfg.Style); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) handlePDF(c *gin.Context) {
	d, ok := s.fromQuery(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, d, s.cfg.Style); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (s *Server) handlePNG(c *gin.Context) {
	d, ok := s.fromQuery(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, d, export.DefaultPreviewScale); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleGCode(c *gin.Context) {
	d, ok := s.fromQuery(c)
	if !ok {
		return
	}
	gen := gcode.NewWithProfile(s.cfg.Cutter, s.profile)
	c.String(http.StatusOK, gen.GenerateDrawing(d.Title(), d.Drawing))
}

func (s *Server) handleMachine(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg.Machine)
}

func (s *Server) handleUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notation": descriptor.Notation, "usage": descriptor.Usage})
}
