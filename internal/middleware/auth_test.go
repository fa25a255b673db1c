package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/go-petr/pet-bank/internal/accountdelivery"
	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/internal/middleware"
	"github.com/go-petr/pet-bank/pkg/randompkg"
	"github.com/go-petr/pet-bank/pkg/tokenpkg"
	"github.com/go-petr/pet-bank/pkg/web"
)

var tokenTypes = []string{tokenpkg.TypePaseto, tokenpkg.TypeJWT}

func newTokenMaker(t *testing.T, tokenType string) tokenpkg.Maker {
	t.Helper()

	key := randompkg.String(32)

	maker, err := tokenpkg.New(tokenType, key)
	if err != nil {
		t.Fatalf("tokenpkg.New(%q, %v) returned error: %v", tokenType, key, err)
	}

	return maker
}

func serve(t *testing.T, server *gin.Engine, method, url string, setupAuth func(r *http.Request) error) (int, web.Response) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("http.NewRequest(%v, %v) returned error: %v", method, url, err)
	}

	if err := setupAuth(req); err != nil {
		t.Fatalf("setupAuth(%v) returned error: %v", url, err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	got := web.Response{}
	if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return recorder.Code, got
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	username := randompkg.Holder()
	accountNumber := randompkg.AccountNumber()

	testCases := []struct {
		name           string
		setupAuth      func(maker, foreign tokenpkg.Maker) func(r *http.Request) error
		wantStatusCode int
		wantError      string
	}{
		{
			name: "NoAuthorization",
			setupAuth: func(_, _ tokenpkg.Maker) func(r *http.Request) error {
				return func(r *http.Request) error { return nil }
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "TokenWithoutType",
			setupAuth: func(maker, _ tokenpkg.Maker) func(r *http.Request) error {
				return func(r *http.Request) error {
					return middleware.AddAuthorization(r, maker, "", username, accountNumber, time.Minute)
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrBadAuthHeaderFormat.Error(),
		},
		{
			name: "BasicAuthorization",
			setupAuth: func(maker, _ tokenpkg.Maker) func(r *http.Request) error {
				return func(r *http.Request) error {
					return middleware.AddAuthorization(r, maker, "basic", username, accountNumber, time.Minute)
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrUnsupportedAuthType.Error(),
		},
		{
			name: "ExpiredToken",
			setupAuth: func(maker, _ tokenpkg.Maker) func(r *http.Request) error {
				return func(r *http.Request) error {
					return middleware.AddAuthorization(r, maker, middleware.AuthTypeBearer, username, accountNumber, -time.Minute)
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name: "TokenFromOtherServer",
			setupAuth: func(_, foreign tokenpkg.Maker) func(r *http.Request) error {
				return func(r *http.Request) error {
					return middleware.AddAuthorization(r, foreign, middleware.AuthTypeBearer, username, accountNumber, time.Minute)
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrInvalidToken.Error(),
		},
		{
			name: "UppercaseBearer",
			setupAuth: func(maker, _ tokenpkg.Maker) func(r *http.Request) error {
				return func(r *http.Request) error {
					return middleware.AddAuthorization(r, maker, "Bearer", username, accountNumber, time.Minute)
				}
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for _, tokenType := range tokenTypes {
		for i := range testCases {
			tc := testCases[i]
			tokenType := tokenType

			t.Run(tokenType+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				maker := newTokenMaker(t, tokenType)
				foreign := newTokenMaker(t, tokenType)

				server := gin.New()
				server.GET("/auth", middleware.AuthMiddleware(maker), func(gctx *gin.Context) {
					payload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
					gctx.JSON(http.StatusOK, gin.H{"data": payload})
				})

				code, got := serve(t, server, http.MethodGet, "/auth", tc.setupAuth(maker, foreign))

				if code != tc.wantStatusCode {
					t.Errorf("Status code: got %v, want %v", code, tc.wantStatusCode)
				}

				if got.Error != tc.wantError {
					t.Errorf("got.Error = %q, want %q", got.Error, tc.wantError)
				}

				if tc.wantStatusCode != http.StatusOK {
					return
				}

				payload, ok := got.Data.(map[string]interface{})
				if !ok {
					t.Fatalf("got.Data = %T, want payload object", got.Data)
				}

				if payload["username"] != username || payload["account_number"] != accountNumber {
					t.Errorf("payload = %v, want username %v on account %v", payload, username, accountNumber)
				}
			})
		}
	}
}

func TestAuthMiddlewareAccountRoute(t *testing.T) {
	t.Parallel()

	holder := randompkg.Holder()
	own := domain.AccountView{Number: randompkg.AccountNumber(), Holder: holder, Kind: domain.KindCurrent}
	sameHolder := domain.AccountView{Number: randompkg.AccountNumber(), Holder: holder, Kind: domain.KindSavings}
	stranger := domain.AccountView{Number: randompkg.AccountNumber(), Holder: randompkg.Holder() + "x", Kind: domain.KindSavings}

	testCases := []struct {
		name           string
		account        domain.AccountView
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "OwnAccount",
			account:        own,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "OtherHoldersAccount",
			account:        stranger,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrAccountOwnerMismatch.Error(),
		},
		{
			name:           "SameHolderOtherAccount",
			account:        sameHolder,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrAccountOwnerMismatch.Error(),
		},
	}

	for _, tokenType := range tokenTypes {
		for i := range testCases {
			tc := testCases[i]
			tokenType := tokenType

			t.Run(tokenType+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				accountService := accountdelivery.NewMockService(ctrl)
				accountService.EXPECT().
					Get(gomock.Any(), tc.account.Number).
					Times(1).
					Return(tc.account, nil)

				maker := newTokenMaker(t, tokenType)

				server := gin.New()
				authRoutes := server.Group("/").Use(middleware.AuthMiddleware(maker))
				authRoutes.GET("/accounts/:number", accountdelivery.NewHandler(accountService).Get)

				code, got := serve(t, server, http.MethodGet, "/accounts/"+tc.account.Number, func(r *http.Request) error {
					return middleware.AddAuthorization(r, maker, middleware.AuthTypeBearer, holder, own.Number, time.Minute)
				})

				if code != tc.wantStatusCode {
					t.Errorf("Status code: got %v, want %v", code, tc.wantStatusCode)
				}

				if got.Error != tc.wantError {
					t.Errorf("got.Error = %q, want %q", got.Error, tc.wantError)
				}
			})
		}
	}
}
