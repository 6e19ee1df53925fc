// Package api serves save sessions over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/samcharles93/gbsav/internal/logger"
	"github.com/samcharles93/gbsav/pkg/sav"
)

// DefaultMaxUpload caps request bodies. A full save is 128 KiB.
const DefaultMaxUpload = 256 << 10

type Config struct {
	// MaxUploadBytes caps every request body.
	MaxUploadBytes int64
	// RatePerSecond limits mutating requests per client. Zero disables it.
	RatePerSecond float64
	RateBurst     int
	Logger        logger.Logger
}

type Server struct {
	store     *SessionStore
	maxUpload int64
	limiter   *rateLimiter
	log       logger.Logger
}

func NewServer(store *SessionStore, cfg Config) *Server {
	if store == nil {
		store = NewSessionStore(SessionLimits{})
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUpload
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	s := &Server{
		store:     store,
		maxUpload: cfg.MaxUploadBytes,
		log:       cfg.Logger.With("component", "api"),
	}
	if cfg.RatePerSecond > 0 {
		s.limiter = newRateLimiter(cfg.RatePerSecond, cfg.RateBurst)
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	var mutating []echo.MiddlewareFunc
	if s.limiter != nil {
		mutating = append(mutating, s.limiter.middleware)
	}

	// Saves
	e.POST("/v1/saves", s.handleCreateSave, mutating...)
	e.GET("/v1/saves/:id", s.handleGetSave)
	e.GET("/v1/saves/:id/raw", s.handleRawSave)
	e.DELETE("/v1/saves/:id", s.handleDeleteSave, mutating...)

	// Songs
	e.GET("/v1/saves/:id/songs", s.handleListSongs)
	e.POST("/v1/saves/:id/songs", s.handleImportSong, mutating...)
	e.GET("/v1/saves/:id/songs/:song", s.handleExportSong)
	e.DELETE("/v1/saves/:id/songs/:song", s.handleDeleteSong, mutating...)
	e.POST("/v1/saves/:id/songs/:song/activate", s.handleActivateSong, mutating...)
}

func (s *Server) session(c *echo.Context) (*Session, error) {
	return s.store.Get(c.Param("id"))
}

func (s *Server) handleCreateSave(c *echo.Context) error {
	body, err := readBody(c, s.maxUpload)
	if err != nil {
		return writeEngineError(c, err)
	}
	if len(body) == 0 {
		return writeBadRequest(c, "request body is empty; upload the raw save", "body")
	}
	name := c.QueryParam("name")
	sess, err := s.store.Create(body, name)
	if err != nil {
		if errors.Is(err, sav.ErrInvalidContainerSize) {
			return writeJSON(c, http.StatusUnprocessableEntity, CreateSaveError{
				Error: ErrorBody{
					Message: "not a valid save file",
					Type:    "invalid_save_error",
					Code:    "invalid_container_size",
				},
				Summary: sav.Parse(body),
			})
		}
		return writeEngineError(c, err)
	}

	var summary sav.Summary
	err = sess.Do(func(ct *sav.Container) error {
		summary, err = ct.Summary()
		return err
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	s.log.Info("save uploaded", "session", sess.ID, "size", len(body), "variant", summary.Variant, "songs", len(summary.Songs))
	return writeJSON(c, http.StatusCreated, SaveResponse{
		ID:        sess.ID,
		Name:      sess.Name,
		CreatedAt: sess.CreatedAt.Unix(),
		Summary:   summary,
	})
}

func (s *Server) handleGetSave(c *echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return writeEngineError(c, err)
	}
	var summary sav.Summary
	err = sess.Do(func(ct *sav.Container) error {
		summary, err = ct.Summary()
		return err
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	return writeJSON(c, http.StatusOK, SaveResponse{
		ID:        sess.ID,
		Name:      sess.Name,
		CreatedAt: sess.CreatedAt.Unix(),
		Summary:   summary,
	})
}

func (s *Server) handleRawSave(c *echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return writeEngineError(c, err)
	}
	var raw []byte
	_ = sess.Do(func(ct *sav.Container) error {
		raw = append([]byte(nil), ct.Bytes()...)
		return nil
	})
	filename := sess.Name
	if filename == "" {
		filename = "save.sav"
	}
	return writeBinary(c, filename, raw)
}

func (s *Server) handleDeleteSave(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "save session not found")
	}
	s.log.Info("save session closed", "session", id)
	return writeJSON(c, http.StatusOK, DeletedResponse{ID: id, Deleted: true})
}

func (s *Server) handleListSongs(c *echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return writeEngineError(c, err)
	}
	var songs []sav.SongInfo
	err = sess.Do(func(ct *sav.Container) error {
		songs, err = ct.Songs()
		return err
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	return writeJSON(c, http.StatusOK, SongList{Object: "list", Data: songs})
}

func (s *Server) handleImportSong(c *echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return writeEngineError(c, err)
	}
	body, err := readBody(c, s.maxUpload)
	if err != nil {
		return writeEngineError(c, err)
	}
	p, err := sav.ParseProject(body)
	if err != nil {
		return writeEngineError(c, err)
	}

	var (
		song    int
		summary sav.Summary
	)
	err = sess.Do(func(ct *sav.Container) error {
		var importErr error
		song, importErr = ct.Import(p)
		if importErr != nil {
			return importErr
		}
		summary, importErr = ct.Summary()
		return importErr
	})
	if err != nil {
		s.log.Warn("song import failed", "session", sess.ID, "name", p.Name, "error", err)
		return writeEngineError(c, err)
	}
	s.log.Info("song imported", "session", sess.ID, "song", song, "name", p.Name, "bytes", len(p.Body))
	return writeJSON(c, http.StatusCreated, ImportResponse{SongID: song, Summary: summary})
}

// occupiedSong resolves the :song parameter to an occupied slot.
func (s *Server) occupiedSong(c *echo.Context, sess *Session) (int, bool, error) {
	song, err := songParam(c)
	if err != nil {
		return 0, false, err
	}
	var ok bool
	err = sess.Do(func(ct *sav.Container) error {
		ok, err = ct.Occupied(song)
		return err
	})
	return song, ok, err
}

func (s *Server) handleExportSong(c *echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return writeEngineError(c, err)
	}
	song, ok, err := s.occupiedSong(c, sess)
	if err != nil {
		return writeEngineError(c, err)
	}
	if !ok {
		return writeNotFound(c, "song slot is empty")
	}

	var p sav.Project
	err = sess.Do(func(ct *sav.Container) error {
		p, err = ct.Export(song)
		return err
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	data, err := p.MarshalBinary()
	if err != nil {
		return writeEngineError(c, err)
	}
	return writeBinary(c, p.FileName(".gbsong"), data)
}

func (s *Server) handleDeleteSong(c *echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return writeEngineError(c, err)
	}
	song, ok, err := s.occupiedSong(c, sess)
	if err != nil {
		return writeEngineError(c, err)
	}
	if !ok {
		return writeNotFound(c, "song slot is empty")
	}
	err = sess.Do(func(ct *sav.Container) error {
		return ct.Delete(song)
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	s.log.Info("song deleted", "session", sess.ID, "song", song)
	return writeJSON(c, http.StatusOK, SongDeletedResponse{SongID: song, Deleted: true})
}

func (s *Server) handleActivateSong(c *echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return writeEngineError(c, err)
	}
	song, ok, err := s.occupiedSong(c, sess)
	if err != nil {
		return writeEngineError(c, err)
	}
	if !ok {
		return writeNotFound(c, "song slot is empty")
	}
	var summary sav.Summary
	err = sess.Do(func(ct *sav.Container) error {
		if err := ct.Activate(song); err != nil {
			return err
		}
		summary, err = ct.Summary()
		return err
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	s.log.Info("song activated", "session", sess.ID, "song", song)
	return writeJSON(c, http.StatusOK, ImportResponse{SongID: song, Summary: summary})
}
