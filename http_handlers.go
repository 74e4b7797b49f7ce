package main

// this file contains implementation of HTTP handlers - REST API

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/labstack/gommon/log"

	"github.com/himanshub16/upnext/session"
)

type httpHandler struct {
	service   Service
	searcher  TrackSearcher
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewHTTPRouter(service Service, searcher TrackSearcher, cfg Config, logger *log.Logger) *echo.Echo {
	h := &httpHandler{
		service:   service,
		searcher:  searcher,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
		now:       time.Now,
	}

	r := echo.New()
	r.HideBanner = true
	r.Logger = logger
	r.Use(middleware.Recover())
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
		Output: logger.Output(),
	}))

	router := r.Group("/api")
	router.GET("/health", h.healthCheckHandler)
	router.POST("/join", h.joinHandler)
	router.GET("/search", h.searchHandler)

	sessionGroup := router.Group("/sessions")
	sessionGroup.Use(middleware.JWT(h.jwtSecret))
	{
		sessionGroup.POST("", h.createSessionHandler)
		sessionGroup.GET("", h.listSessionsHandler)
		sessionGroup.GET("/:id", h.getSessionHandler)
		sessionGroup.POST("/:id/songs", h.addSongHandler)
		sessionGroup.DELETE("/:id/songs", h.removeSongHandler)
		sessionGroup.POST("/:id/vote", h.voteHandler)
		sessionGroup.GET("/:id/activity", h.activityHandler)
	}

	return r
}

func (h *httpHandler) healthCheckHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "I am up and running!",
		"sessions": h.service.SessionCount(),
	})
}

// joinHandler hands out an anonymous participant id wrapped in a token.
// Nothing about the caller is verified.
func (h *httpHandler) joinHandler(c echo.Context) error {
	userID := uuid.New().String()

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["exp"] = h.now().Add(h.tokenTTL).Unix()
	t, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, joinResponse{Token: t, UserID: userID})
}

func (h *httpHandler) searchHandler(c echo.Context) error {
	tracks, err := h.searcher.Search(c.Request().Context(), c.QueryParam("q"))
	if errors.Is(err, errEmptyQuery) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	if err != nil {
		c.Logger().Errorf("track search: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "track search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tracks": tracks})
}

func (h *httpHandler) createSessionHandler(c echo.Context) error {
	form := createSessionForm{}
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing form data"})
	}
	view, err := h.service.CreateSession(c.Request().Context(), form.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *httpHandler) listSessionsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ListSessions(c.Request().Context()))
}

func (h *httpHandler) getSessionHandler(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("id")

	view, err := h.service.GetSession(ctx, sessionID)
	if err != nil {
		return errorResponse(c, err)
	}

	resp := sessionResponse{
		View:            view,
		VoteCooldownMs:  h.service.Cooldowns().Vote.Milliseconds(),
		ReaddCooldownMs: h.service.Cooldowns().Readd.Milliseconds(),
	}
	if rec, ok := view.UserVotes[getUserIDFromContext(c)]; ok {
		resp.MyVote = &rec
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *httpHandler) addSongHandler(c echo.Context) error {
	form := addSongForm{}
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing form data"})
	}

	song, err := h.service.AddSong(c.Request().Context(), c.Param("id"), session.NewSong{
		ID:         form.SongID,
		Name:       form.Name,
		Artist:     form.Artist,
		AlbumImage: form.AlbumImage,
		SongLink:   form.SongLink,
		AddedBy:    getUserIDFromContext(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, song)
}

func (h *httpHandler) removeSongHandler(c echo.Context) error {
	songID := c.QueryParam("songId")
	if songID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing songId parameter"})
	}
	if err := h.service.RemoveSong(c.Request().Context(), c.Param("id"), songID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Song removed successfully"})
}

func (h *httpHandler) voteHandler(c echo.Context) error {
	form := voteForm{}
	if err := c.Bind(&form); err != nil || form.SongID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing songId"})
	}

	res, err := h.service.CastVote(c.Request().Context(), c.Param("id"), form.SongID, getUserIDFromContext(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *httpHandler) activityHandler(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "limit must be a non-negative integer"})
		}
		limit = n
	}
	events, err := h.service.Activity(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// errorResponse maps engine errors onto status codes. Anything unknown is
// logged and reported as a 500.
func errorResponse(c echo.Context, err error) error {
	var cooldown *session.CooldownError
	switch {
	case errors.As(err, &cooldown):
		secs := int(math.Ceil(cooldown.Remaining.Seconds()))
		c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
		return c.JSON(http.StatusTooManyRequests, cooldownResponse{
			Message:      err.Error(),
			RetryAfterMs: cooldown.Remaining.Milliseconds(),
			RetryAt:      cooldown.RetryAt,
		})
	case errors.Is(err, session.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case errors.Is(err, session.ErrInvalidArgument), errors.Is(err, session.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errors.Is(err, session.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func getUserIDFromContext(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
