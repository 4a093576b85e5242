package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/favorites"
	appmw "github.com/vkarpenko/storefront/internal/middleware"
	"github.com/vkarpenko/storefront/internal/models"
	"github.com/vkarpenko/storefront/internal/payment"
	"github.com/vkarpenko/storefront/internal/repo"
	"github.com/vkarpenko/storefront/internal/service"
	"github.com/vkarpenko/storefront/internal/storage"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	Cart      *CartHTTP
	Favorites *FavoritesHTTP
	Orders    *OrderHTTP
	CartSvc   *cart.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))

	cartSvc := cart.NewService(storage.NewMemoryCartStore())
	favoritesSvc := favorites.NewService(storage.NewMemoryFavoritesStore())
	orderSvc := &service.OrderService{
		Repo:    &repo.GormRepo{DB: db},
		Gateway: payment.NewProcessor(0),
	}

	return &testEnv{
		T:         t,
		E:         echo.New(),
		Cart:      &CartHTTP{Svc: cartSvc},
		Favorites: &FavoritesHTTP{Svc: favoritesSvc},
		Orders:    &OrderHTTP{Svc: orderSvc, Cart: cartSvc},
		CartSvc:   cartSvc,
	}
}

// doJSONRequest builds an echo context carrying the given session, the way
// the session middleware would have left it.
func (env *testEnv) doJSONRequest(method, path, session string, body any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set(appmw.SessionCookie, session)
	return rec, c
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
