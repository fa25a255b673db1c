// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/internal/middleware"
	"github.com/go-petr/pet-bank/pkg/errorspkg"
	"github.com/go-petr/pet-bank/pkg/tokenpkg"
	"github.com/go-petr/pet-bank/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, kind, number, holder, password string) (domain.AccountView, error)
	Get(ctx context.Context, number string) (domain.AccountView, error)
	List(ctx context.Context, holder string, pageSize, pageID int32) ([]domain.AccountView, error)
	Deposit(ctx context.Context, number string, amount decimal.Decimal) (domain.AccountView, error)
	Withdraw(ctx context.Context, number string, amount decimal.Decimal) (domain.AccountView, error)
	ApplyInterest(ctx context.Context, number string) (domain.AccountView, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.AccountView `json:"account"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// errorStatus maps a service error to the http status code.
func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrInvalidAmount,
		domain.ErrInsufficientBalance,
		domain.ErrOverdraftExceeded,
		domain.ErrUnsupportedOperation,
		domain.ErrInvalidAccountKind:
		return http.StatusBadRequest, err
	case domain.ErrAccountNotFound:
		return http.StatusNotFound, err
	case domain.ErrAccountAlreadyExists:
		return http.StatusConflict, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

type createRequest struct {
	Kind     string `json:"kind" binding:"required,accountkind"`
	Number   string `json:"account_number" binding:"required,numeric,max=34"`
	Holder   string `json:"account_holder" binding:"required,alphanum"`
	Password string `json:"password" binding:"required"`
}

// Create handles http request to open an account with login credentials.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	account, err := h.service.Create(ctx, req.Kind, req.Number, req.Holder, req.Password)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{account}})
}

type numberRequest struct {
	Number string `uri:"number" binding:"required,numeric"`
}

// owned binds the account number from the path and loads the account if it
// is the account the caller logged in to. It writes the error response itself and
// returns false when the request must stop.
func (h *Handler) owned(gctx *gin.Context) (domain.AccountView, bool) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return domain.AccountView{}, false
	}

	account, err := h.service.Get(ctx, req.Number)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return domain.AccountView{}, false
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	if account.Number != authPayload.AccountNumber {
		l.Warn().Str("account_number", req.Number).Str("username", authPayload.Username).
			Err(domain.ErrAccountOwnerMismatch).Send()
		gctx.JSON(http.StatusUnauthorized, web.Error(domain.ErrAccountOwnerMismatch))

		return domain.AccountView{}, false
	}

	return account, true
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	account, ok := h.owned(gctx)
	if !ok {
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataAccounts struct {
	Accounts []domain.AccountView `json:"accounts"`
}

type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list accounts of the logged in user.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	accounts, err := h.service.List(ctx, authPayload.Username, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, responseAccounts{Data: dataAccounts{accounts}})
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

func (h *Handler) changeBalance(gctx *gin.Context, op func(ctx context.Context, number string, amount decimal.Decimal) (domain.AccountView, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	account, ok := h.owned(gctx)
	if !ok {
		return
	}

	account, err = op(ctx, account.Number, amount)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

// Deposit handles http request to deposit money into the account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.changeBalance(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from the account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.changeBalance(gctx, h.service.Withdraw)
}

// ApplyInterest handles http request to credit interest to a savings account.
func (h *Handler) ApplyInterest(gctx *gin.Context) {
	account, ok := h.owned(gctx)
	if !ok {
		return
	}

	account, err := h.service.ApplyInterest(gctx.Request.Context(), account.Number)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}
