package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"orderdesk/internal/auth"
	"orderdesk/internal/domain"
	"orderdesk/internal/logger"
	"orderdesk/internal/service"
)

type Server struct {
	engine    *gin.Engine
	auth      *service.AuthService
	orders    *service.OrderService
	log       *slog.Logger
	publicDir string
}

// Options внешние параметры сервера
type Options struct {
	PublicDir string
	Logger    *slog.Logger
}

func NewServer(authSvc *service.AuthService, orders *service.OrderService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	r := gin.New()
	s := &Server{engine: r, auth: authSvc, orders: orders, log: opts.Logger, publicDir: opts.PublicDir}
	r.Use(requestContext(s.log), gin.Logger(), gin.Recovery(), instrument())
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login.html")
	})

	api := s.engine.Group("/api")
	{
		api.POST("/login", s.login)

		orders := api.Group("/orders", s.requireAuth)
		orders.GET("", s.listOrders)
		orders.POST(":orderId/paid", s.markPaid)
		orders.POST(":orderId/delivered", s.markDelivered)
	}

	s.engine.NoRoute(s.fallback)
}

type loginReq struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type loginResp struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type commandResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// @Summary Operator login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} loginResp
// @Failure 400 {object} map[string]string "malformed JSON"
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	// пустое тело считаем пустыми полями: ответ 401, как на неверный пароль
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, err := s.auth.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResp{Token: sess.Token, UserID: sess.UserID})
}

// @Summary List orders awaiting delivery
// @Description Orders whose effective delivery status is DELIVERED are filtered out, so a page can hold fewer than 250 orders.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Opaque pagination cursor (pageInfo.endCursor)"
// @Success 200 {object} domain.OrderPage
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	page, err := s.orders.ListPendingOrders(c.Request.Context(), c.Query("cursor"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Mark order as paid
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Numeric order ID"
// @Success 200 {object} commandResp
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /orders/{orderId}/paid [post]
func (s *Server) markPaid(c *gin.Context) {
	if err := s.orders.MarkPaid(c.Request.Context(), c.Param("orderId")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, commandResp{Success: true, Message: "Order marked as paid"})
}

// @Summary Mark order as delivered
// @Description Appends a DELIVERED event to the first fulfillment, creating a fulfillment from the open fulfillment order first when none exists.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Numeric order ID"
// @Success 200 {object} commandResp
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /orders/{orderId}/delivered [post]
func (s *Server) markDelivered(c *gin.Context) {
	out, err := s.orders.MarkDelivered(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, commandResp{Success: true, Message: out.Message()})
}

// fallback отдаёт статику; неизвестные /api/ пути требуют токен, затем 404
func (s *Server) fallback(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		if _, err := s.authenticate(c); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if s.publicDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	http.FileServer(http.Dir(s.publicDir)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed",
			"action", c.FullPath(),
			"error", err.Error(),
		)
	}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		c.JSON(status, gin.H{"error": ve.UserErrors})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPreconditionFailed),
		errors.Is(err, service.ErrNoOpenFulfillmentOrder),
		errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
