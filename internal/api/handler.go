package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradedesk/internal/domain/dto"
	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/middleware"
	"github.com/guttosm/tradedesk/internal/schema"
	"github.com/guttosm/tradedesk/internal/service"
)

var userIDParam = schema.Int("user_id")

// Handler provides HTTP handlers for the user, trade and schema endpoints.
//
// Responsibilities:
//   - Validate path, query and body input against the entity schemas
//   - Delegate to the service layer
//   - Pass every result through the response enforcer before writing it
//   - Map validation failures to 422 and shape violations to 500
type Handler struct {
	users     service.UserService
	trades    service.TradeService
	catalog   *models.Catalog
	validator *schema.Validator
	enforcer  *schema.Enforcer
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - users, trades: service dependencies.
//   - catalog: entity schemas used for input validation and output shaping.
//   - validator: configured input validator.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(users service.UserService, trades service.TradeService, catalog *models.Catalog, validator *schema.Validator) *Handler {
	return &Handler{
		users:     users,
		trades:    trades,
		catalog:   catalog,
		validator: validator,
		enforcer:  schema.NewEnforcer(catalog.Enums),
	}
}

// GetUser godoc
// @Summary      Get users by id
// @Description  Returns every user whose id matches (an empty list when none does)
// @Tags         users
// @Produce      json
// @Param        user_id  path      int  true  "User id" example(4)
// @Success      200      {array}   dto.User           "Success"
// @Failure      422      {object}  dto.ErrorResponse  "Invalid user id"
// @Failure      500      {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/users/{user_id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	// ─── Validate "user_id" path param ────────────────────────
	v, err := h.validator.Param(userIDParam, c.Param("user_id"), true)
	if err != nil {
		h.invalid(c, err)
		return
	}

	// ─── Query service ────────────────────────────────────────
	users, err := h.users.GetUser(c.Request.Context(), v.(int64))
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.writeList(c, http.StatusOK, h.catalog.User, users)
}

// ListTrades godoc
// @Summary      List trades
// @Description  Returns trades[offset:][:limit]; negative values count from the end
// @Tags         trades
// @Produce      json
// @Param        offset  query     int  false  "Items to skip"   default(0)
// @Param        limit   query     int  false  "Items to return" default(1)
// @Success      200     {array}   dto.Trade          "Success"
// @Failure      422     {object}  dto.ErrorResponse  "Invalid pagination"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/trades [get]
func (h *Handler) ListTrades(c *gin.Context) {
	// ─── Validate pagination params ───────────────────────────
	params := map[string]int64{}
	var errs schema.FieldErrors
	for _, f := range h.catalog.Page.Fields() {
		raw, present := c.GetQuery(f.Name)
		v, err := h.validator.Param(f, raw, present)
		if err != nil {
			fe, _ := schema.AsFieldErrors(err)
			errs = append(errs, fe...)
			continue
		}
		params[f.Name] = v.(int64)
	}
	if len(errs) > 0 {
		h.invalid(c, errs)
		return
	}

	// ─── Query service ────────────────────────────────────────
	trades, err := h.trades.ListTrades(c.Request.Context(), params["offset"], params["limit"])
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.writeList(c, http.StatusOK, h.catalog.Trade, trades)
}

// AddTrades godoc
// @Summary      Add trades
// @Description  Validates the whole batch; appends only if every trade is valid and returns all trades
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        trades  body      []dto.Trade        true  "Trades to add"
// @Success      200     {object}  dto.DataResponse   "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Malformed JSON"
// @Failure      422     {object}  dto.ErrorResponse  "Validation failed, per item"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/trades [post]
func (h *Handler) AddTrades(c *gin.Context) {
	// ─── Decode body ──────────────────────────────────────────
	raw, err := schema.DecodeJSON(c.Request.Body)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "malformed JSON body", err)
		return
	}

	// ─── Validate and append ──────────────────────────────────
	all, err := h.trades.AddTrades(c.Request.Context(), raw)
	var batchErr *service.BatchError
	switch {
	case errors.As(err, &batchErr):
		resp := dto.NewValidationResponse("validation failed", nil)
		resp.Errors, _ = schema.AsFieldErrors(batchErr)
		resp.Items = dto.NewItemReports(batchErr.Items)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
		return
	case err != nil:
		if _, ok := schema.AsFieldErrors(err); ok {
			h.invalid(c, err)
			return
		}
		_ = c.Error(err)
		return
	}

	// ─── Shape and return ─────────────────────────────────────
	shaped, err := h.enforcer.EnforceList(h.catalog.Trade, all)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Status: http.StatusOK, Data: shaped})
}

// ListSchemas godoc
// @Summary      List entity schemas
// @Description  OpenAPI 3 projection of every entity, keyed by name
// @Tags         schemas
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/schemas [get]
func (h *Handler) ListSchemas(c *gin.Context) {
	out := make(map[string]any, len(h.catalog.Names()))
	for _, name := range h.catalog.Names() {
		e, _ := h.catalog.Entity(name)
		out[name] = schema.OpenAPI(e, h.catalog.Enums)
	}
	c.JSON(http.StatusOK, out)
}

// GetSchema godoc
// @Summary      Get one entity schema
// @Tags         schemas
// @Produce      json
// @Param        name  path      string  true  "Entity name" example(Trade)
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  dto.ErrorResponse  "Unknown entity"
// @Router       /api/v1/schemas/{name} [get]
func (h *Handler) GetSchema(c *gin.Context) {
	e, ok := h.catalog.Entity(c.Param("name"))
	if !ok {
		middleware.AbortWithError(c, http.StatusNotFound, "unknown entity", nil)
		return
	}
	c.JSON(http.StatusOK, schema.OpenAPI(e, h.catalog.Enums))
}

// writeList shapes records as a list of entity before writing them.
func (h *Handler) writeList(c *gin.Context, status int, entity *schema.EntitySchema, recs []schema.Record) {
	shaped, err := h.enforcer.EnforceList(entity, recs)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(status, shaped)
}

func (h *Handler) invalid(c *gin.Context, err error) {
	fe, _ := schema.AsFieldErrors(err)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewValidationResponse("validation failed", fe))
}
