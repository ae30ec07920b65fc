// Package api exposes the attendance protocol over HTTP. Handlers are
// stateless; every shared mutable resource lives behind the injected stores.
package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qrattendance/internal/attendance"
	"qrattendance/internal/auth"
	"qrattendance/internal/campus"
	"qrattendance/internal/config"
	"qrattendance/internal/httpmiddleware"
	"qrattendance/internal/store"
	"qrattendance/internal/student"
	"qrattendance/internal/token"
)

// Deps carries everything the router needs.
type Deps struct {
	Issuer   *token.Issuer
	Recorder *attendance.Recorder
	Query    *attendance.Query
	Students student.Directory
	Schedule campus.Schedule

	// Health probes; nil means the dependency is not part of this deployment
	// and is reported healthy.
	DBHealthy    func() bool
	RedisHealthy func() bool
}

// API binds handlers to their dependencies.
type API struct {
	cfg  config.App
	deps Deps
}

// NewRouter builds the gin engine with the full middleware chain and routes.
func NewRouter(cfg config.App, deps Deps) *gin.Engine {
	a := &API{cfg: cfg, deps: deps}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin).Gin())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", a.healthz)

	r.POST("/attendance/generate-qr", a.generateQR)
	r.POST("/attendance/mark", a.mark)
	r.GET("/attendance", a.listAttendance)
	r.GET("/attendance/:studentId", a.studentAttendance)

	r.POST("/auth/login", a.login)
	r.GET("/auth/me", auth.RequireSession(cfg.JWTSigningKey, cfg.JWTIssuer), a.me)

	r.GET("/timetable/:studentId", a.timetable)
	r.GET("/tests/:studentId", a.tests)
	r.GET("/freetime/:studentId", a.freetime)

	return r
}

func (a *API) healthz(c *gin.Context) {
	healthy := func(probe func() bool) bool {
		return probe == nil || probe()
	}
	dbOK := healthy(a.deps.DBHealthy)
	redisOK := healthy(a.deps.RedisHealthy)
	status := http.StatusOK
	if !dbOK || !redisOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbOK, "redis": redisOK})
}

func (a *API) generateQR(c *gin.Context) {
	var info *token.SessionInfo
	if c.Request.ContentLength > 0 {
		var body token.SessionInfo
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		info = &body
	}

	tok, err := a.deps.Issuer.Issue(c.Request.Context(), info)
	if err != nil {
		a.writeError(c, err)
		return
	}
	tokensIssued.Inc()

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     tok.Value,
		"expiresAt": tok.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (a *API) mark(c *gin.Context) {
	var req struct {
		Token     string               `json:"token" binding:"required"`
		StudentID string               `json:"studentId" binding:"required"`
		DeviceID  string               `json:"deviceId" binding:"required"`
		Location  *attendance.Location `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		marksRejected.WithLabelValues("validation").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := a.deps.Recorder.Mark(c.Request.Context(), attendance.MarkInput{
		Token:     req.Token,
		StudentID: req.StudentID,
		DeviceID:  req.DeviceID,
		Location:  req.Location,
	})
	if err != nil {
		a.writeError(c, err)
		return
	}
	marksAccepted.Inc()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Attendance marked successfully",
	})
}

func (a *API) studentAttendance(c *gin.Context) {
	days := 0
	if v := c.Query("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}

	summary, err := a.deps.Query.ForStudent(c.Request.Context(), c.Param("studentId"), days)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"records":     summary.Records,
		"percentage":  summary.Percentage,
		"totalDays":   summary.TotalDays,
		"presentDays": summary.PresentDays,
	})
}

func (a *API) listAttendance(c *gin.Context) {
	filter := attendance.ListFilter{
		StudentID: c.Query("studentId"),
		DateFrom:  c.Query("dateFrom"),
		DateTo:    c.Query("dateTo"),
	}
	// Non-numeric limits fall through as zero and get the default clamp.
	if v := c.Query("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	records, err := a.deps.Query.List(c.Request.Context(), filter)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attendance": records})
}

func (a *API) login(c *gin.Context) {
	var req struct {
		StudentID string `json:"studentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stu, err := a.deps.Students.Get(c.Request.Context(), req.StudentID)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if stu == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	session, err := auth.Issue(stu.StudentID, stu.Name, a.cfg.JWTIssuer, a.cfg.JWTSigningKey, a.cfg.SessionTTL)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"student": gin.H{
			"studentId":  stu.StudentID,
			"name":       stu.Name,
			"email":      stu.Email,
			"department": stu.Department,
			"year":       stu.Year,
		},
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (a *API) me(c *gin.Context) {
	claimsAny, _ := c.Get("claims")
	claims, _ := claimsAny.(auth.Claims)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"studentId": claims.StudentID,
		"name":      claims.Name,
	})
}

func (a *API) timetable(c *gin.Context) {
	timetable, err := a.deps.Schedule.Timetable(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if timetable == nil {
		timetable = []campus.DaySchedule{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "timetable": timetable})
}

func (a *API) tests(c *gin.Context) {
	exams, err := a.deps.Schedule.Exams(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if exams == nil {
		exams = []campus.Exam{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tests": exams})
}

func (a *API) freetime(c *gin.Context) {
	ft, err := campus.FreeTimeAt(c.Request.Context(), a.deps.Schedule, c.Param("studentId"), time.Now())
	if err != nil {
		a.writeError(c, err)
		return
	}
	resp := gin.H{
		"success":             true,
		"isFree":              ft.IsFree,
		"suggestedActivities": ft.SuggestedActivities,
	}
	if ft.Message != "" {
		resp["message"] = ft.Message
	}
	if ft.NextClass != nil {
		resp["nextClass"] = ft.NextClass
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps the protocol error taxonomy to HTTP. Storage internals are
// never surfaced to callers.
func (a *API) writeError(c *gin.Context, err error) {
	var verr *attendance.ValidationError
	switch {
	case errors.As(err, &verr):
		marksRejected.WithLabelValues("validation").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, attendance.ErrTokenInvalidOrExpired):
		marksRejected.WithLabelValues("token_invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired QR token"})
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		marksRejected.WithLabelValues("duplicate").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attendance already marked for this session"})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		log.Printf("unexpected error on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
