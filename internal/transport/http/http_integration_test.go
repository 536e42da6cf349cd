//go:build integration

package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/wb_shop/internal/cache/memory"
	"github.com/Gunvolt24/wb_shop/internal/domain"
	pgrepo "github.com/Gunvolt24/wb_shop/internal/repo/postgres"
	"github.com/Gunvolt24/wb_shop/internal/session"
	"github.com/Gunvolt24/wb_shop/internal/testutil"
	rest "github.com/Gunvolt24/wb_shop/internal/transport/http"
	"github.com/Gunvolt24/wb_shop/internal/usecase"
	"github.com/Gunvolt24/wb_shop/pkg/logger"
)

// startStack — Postgres в контейнере + реальные сервисы поверх него + httptest.Server.
func startStack(t *testing.T) (*httptest.Server, *testutil.PGContainer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stop(context.Background()) })
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	backend := cachemem.NewBackend()
	products := usecase.NewProductService(pgrepo.NewProductRepository(pg.Pool), backend, logg, time.Minute)
	orders := usecase.NewOrderService(pgrepo.NewOrderRepository(pg.Pool), products, backend, logg, time.Minute)
	users := usecase.NewUserService(pgrepo.NewUserRepository(pg.Pool), session.NewStore(time.Hour), logg)

	h := rest.NewHandler(products, orders, users, logg)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	t.Cleanup(ts.Close)
	return ts, pg
}

func doJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

// registerAndLogin — полный цикл через HTTP, возвращает токен сессии.
func registerAndLogin(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": password}

	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &got)
	require.NotEmpty(t, got.Token)
	return got.Token
}

// 1) Регистрация, логин, CRUD товара — весь путь через реальный стек.
func TestHTTP_AuthAndProductCRUD_TC(t *testing.T) {
	ts, _ := startStack(t)
	token := registerAndLogin(t, ts, "alice-"+testutil.UniqSuffix(), "s3cret")

	// без токена каталог закрыт
	resp := doJSON(t, http.MethodGet, ts.URL+"/products", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// create
	resp = doJSON(t, http.MethodPost, ts.URL+"/products", token, map[string]any{
		"name": "Widget", "description": "test widget", "price": 9.99,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Product
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)

	// read
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/products/%d", ts.URL, created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Product
	decodeBody(t, resp, &got)
	require.Equal(t, "Widget", got.Name)

	// update
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/products/%d", ts.URL, created.ID), token, map[string]any{
		"name": "Widget v2", "description": "updated", "price": 19.99,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// delete, затем 404
	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/products/%d", ts.URL, created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/products/%d", ts.URL, created.ID), token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// 2) Заказ и история: пользователь видит только свои заказы.
func TestHTTP_PlaceOrderAndHistory_TC(t *testing.T) {
	ts, pg := startStack(t)
	ctx := context.Background()

	productID, err := testutil.SeedProduct(ctx, pg.Pool, "Gadget-"+testutil.UniqSuffix(), 5.50)
	require.NoError(t, err)

	tokenA := registerAndLogin(t, ts, "user-a-"+testutil.UniqSuffix(), "pw-a")
	tokenB := registerAndLogin(t, ts, "user-b-"+testutil.UniqSuffix(), "pw-b")

	resp := doJSON(t, http.MethodPost, ts.URL+"/orders", tokenA, map[string]any{
		"items": []map[string]any{{"product_id": productID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// история A содержит заказ
	resp = doJSON(t, http.MethodGet, ts.URL+"/orders/history", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var historyA []domain.OrderHistory
	decodeBody(t, resp, &historyA)
	require.Len(t, historyA, 1)
	require.Equal(t, productID, historyA[0].ProductID)
	require.Equal(t, 3, historyA[0].Quantity)

	// история B пуста
	resp = doJSON(t, http.MethodGet, ts.URL+"/orders/history", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var historyB []domain.OrderHistory
	decodeBody(t, resp, &historyB)
	require.Empty(t, historyB)
}

// 3) CSV-импорт через multipart: валидные строки записаны, отказы в теле ответа.
func TestHTTP_ImportOrders_TC(t *testing.T) {
	ts, pg := startStack(t)
	ctx := context.Background()

	productID, err := testutil.SeedProduct(ctx, pg.Pool, "Imported-"+testutil.UniqSuffix(), 2.00)
	require.NoError(t, err)

	token := registerAndLogin(t, ts, "importer-"+testutil.UniqSuffix(), "pw")

	csv := testutil.MakeOrdersCSV(
		fmt.Sprintf("%d,42,2,2023-01-01", productID),
		"999999,42,1,2023-01-02",
	)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "orders.csv")
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/orders/import", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var outcome domain.ImportOutcome
	decodeBody(t, resp, &outcome)
	require.Equal(t, 1, outcome.SuccessCount)
	require.Equal(t, 1, outcome.FailureCount)
	require.Len(t, outcome.Errors, 1)
	require.Contains(t, outcome.Errors[0].Reason, "Product does not exist")
}
