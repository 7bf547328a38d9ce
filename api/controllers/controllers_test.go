package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cardfinderz/internal/app"
	"github.com/angelmondragon/cardfinderz/internal/cards"
	"github.com/angelmondragon/cardfinderz/internal/cart"
	"github.com/angelmondragon/cardfinderz/internal/catalog"
	"github.com/angelmondragon/cardfinderz/internal/featured"
	"github.com/angelmondragon/cardfinderz/internal/search"
	"github.com/angelmondragon/cardfinderz/internal/settings"
	"github.com/angelmondragon/cardfinderz/pkg/config"
)

type stubLookup struct {
	results []cards.Card
	err     error
}

func (s stubLookup) Lookup(context.Context, catalog.Query) ([]cards.Card, error) {
	return s.results, s.err
}

func newTestState(t *testing.T, lookup catalog.Lookup) *app.State {
	t.Helper()
	ctrl, err := search.NewController(lookup, nil, nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	items, err := featured.Load()
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	state, err := app.NewState(ctrl, cart.NewStore(), settings.NewDefaultStore(), items)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	return state
}

func settingsConfig() config.SettingsConfig {
	return config.SettingsConfig{
		DefaultCurrency: "PEN",
		DefaultRate:     decimal.RequireFromString("3.7"),
		MinRate:         decimal.RequireFromString("1.0"),
		MaxRate:         decimal.RequireFromString("5.0"),
	}
}

func serve(t *testing.T, state *app.State, h http.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = app.WithState(ctx, state)

	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return envelope.Data
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return envelope.Error.Code
}

func TestSearchSubmitDetailOutcome(t *testing.T) {
	total := 102
	state := newTestState(t, stubLookup{results: []cards.Card{
		{
			ID:     "base1-58",
			Name:   "Pikachu",
			Number: "58",
			Set:    cards.SetInfo{Name: "Base", PrintedTotal: &total, ReleaseDate: "1999/01/09"},
			Price:  decimal.NewNullDecimal(decimal.RequireFromString("2.00")),
		},
	}})

	rec := serve(t, state, SearchSubmit(nil), http.MethodPost, "/search", `{"query":"58/102"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	out := decodeData[struct {
		Outcome string `json:"outcome"`
		Detail  *struct {
			ID      string `json:"id"`
			Display struct {
				SetLabel       string `json:"set_label"`
				ReleaseDate    string `json:"release_date"`
				ConvertedPrice string `json:"converted_price"`
			} `json:"display"`
		} `json:"detail"`
		State struct {
			Query     string `json:"query"`
			IsLoading bool   `json:"is_loading"`
		} `json:"state"`
	}](t, rec)

	if out.Outcome != "detail" || out.Detail == nil || out.Detail.ID != "base1-58" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.Detail.Display.SetLabel != "Base · 58" || out.Detail.Display.ReleaseDate != "1999-01-09" {
		t.Fatalf("unexpected display %+v", out.Detail.Display)
	}
	if out.Detail.Display.ConvertedPrice != "7.40" {
		t.Fatalf("expected detail price converted at 3.7, got %q", out.Detail.Display.ConvertedPrice)
	}
	if out.State.Query != "58/102" || out.State.IsLoading {
		t.Fatalf("unexpected state %+v", out.State)
	}
}

func TestSearchSubmitFailureIsEmptyResults(t *testing.T) {
	state := newTestState(t, stubLookup{err: errors.New("timeout")})

	rec := serve(t, state, SearchSubmit(nil), http.MethodPost, "/search", `{"query":"mew"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	out := decodeData[struct {
		Outcome string `json:"outcome"`
		Failed  bool   `json:"failed"`
		State   struct {
			Results []json.RawMessage `json:"results"`
		} `json:"state"`
	}](t, rec)
	if out.Outcome != "results" || !out.Failed || len(out.State.Results) != 0 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestSearchSubmitBlankIsIgnored(t *testing.T) {
	state := newTestState(t, stubLookup{err: errors.New("must not be called")})

	rec := serve(t, state, SearchSubmit(nil), http.MethodPost, "/search", `{"query":"   "}`, nil)
	out := decodeData[struct {
		Outcome string `json:"outcome"`
	}](t, rec)
	if out.Outcome != "ignored" {
		t.Fatalf("expected ignored outcome, got %q", out.Outcome)
	}
}

func TestSearchClear(t *testing.T) {
	state := newTestState(t, stubLookup{results: []cards.Card{{ID: "a"}, {ID: "b"}}})
	serve(t, state, SearchSubmit(nil), http.MethodPost, "/search", `{"query":"eevee"}`, nil)

	rec := serve(t, state, SearchClear(), http.MethodDelete, "/search", "", nil)
	out := decodeData[struct {
		Query       string            `json:"query"`
		Results     []json.RawMessage `json:"results"`
		ShowResults bool              `json:"show_results"`
	}](t, rec)
	if out.Query != "" || len(out.Results) != 0 || out.ShowResults {
		t.Fatalf("expected cleared state, got %+v", out)
	}
}

type cartResponse struct {
	Lines []struct {
		Card struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"card"`
		Quantity           int    `json:"quantity"`
		UnitPrice          string `json:"unit_price"`
		LineTotal          string `json:"line_total"`
		ConvertedLineTotal string `json:"converted_line_total"`
	} `json:"lines"`
	TotalUnits     int    `json:"total_units"`
	SubtotalUSD    string `json:"subtotal_usd"`
	Currency       string `json:"currency"`
	ConvertedTotal string `json:"converted_total"`
	ShowConverted  bool   `json:"show_converted"`
}

func TestCartFlow(t *testing.T) {
	state := newTestState(t, stubLookup{})

	rec := serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"card":{"id":"x1","name":"Ten","price":10}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"card":{"id":"x1","name":"Ten again","price":99}}`, nil)
	serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"card":{"id":"x2","name":"Five","price":"5.00"}}`, nil)

	out := decodeData[cartResponse](t, serve(t, state, CartFetch(), http.MethodGet, "/cart", "", nil))
	if out.TotalUnits != 3 || out.SubtotalUSD != "25.00" || out.ConvertedTotal != "92.50" || !out.ShowConverted {
		t.Fatalf("unexpected totals %+v", out)
	}
	if out.Lines[0].Card.Name != "Ten" || out.Lines[0].Quantity != 2 || out.Lines[0].LineTotal != "20.00" {
		t.Fatalf("unexpected first line %+v", out.Lines[0])
	}

	rec = serve(t, state, CartUpdateItem(nil), http.MethodPut, "/cart/items/x1", `{"quantity":0}`, map[string]string{"cardId": "x1"})
	out = decodeData[cartResponse](t, rec)
	if out.Lines[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", out.Lines[0].Quantity)
	}

	rec = serve(t, state, CartUpdateItem(nil), http.MethodPut, "/cart/items/zz", `{"quantity":4}`, map[string]string{"cardId": "zz"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown line, got %d", rec.Code)
	}

	rec = serve(t, state, CartRemoveItem(), http.MethodDelete, "/cart/items/x2", "", map[string]string{"cardId": "x2"})
	out = decodeData[cartResponse](t, rec)
	if len(out.Lines) != 1 || out.SubtotalUSD != "10.00" {
		t.Fatalf("unexpected cart after remove %+v", out)
	}

	out = decodeData[cartResponse](t, serve(t, state, CartClear(), http.MethodDelete, "/cart", "", nil))
	if len(out.Lines) != 0 || out.TotalUnits != 0 {
		t.Fatalf("expected empty cart, got %+v", out)
	}
}

func TestCartLinesCarryConvertedTotals(t *testing.T) {
	state := newTestState(t, stubLookup{})
	serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"card":{"id":"x1","name":"Ten","price":10}}`, nil)
	serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"card":{"id":"x1","name":"Ten","price":10}}`, nil)

	rec := serve(t, state, CartFetch(), http.MethodGet, "/cart", "", nil)
	out := decodeData[cartResponse](t, rec)
	if len(out.Lines) != 1 || out.Lines[0].ConvertedLineTotal != "74.00" {
		t.Fatalf("expected converted line total 74.00, got %+v", out.Lines)
	}
	lines := decodeData[struct {
		Lines []struct {
			Card struct {
				Display struct {
					ConvertedPrice string `json:"converted_price"`
				} `json:"display"`
			} `json:"card"`
		} `json:"lines"`
	}](t, rec)
	if lines.Lines[0].Card.Display.ConvertedPrice != "37.00" {
		t.Fatalf("expected converted unit price 37.00, got %q", lines.Lines[0].Card.Display.ConvertedPrice)
	}

	if _, err := state.Settings.SetCurrency("USD"); err != nil {
		t.Fatalf("set currency: %v", err)
	}
	out = decodeData[cartResponse](t, serve(t, state, CartFetch(), http.MethodGet, "/cart", "", nil))
	if out.ShowConverted || out.Lines[0].ConvertedLineTotal != "" {
		t.Fatalf("expected no conversion for USD, got %+v", out)
	}
}

func TestCartAddFeaturedAndValidation(t *testing.T) {
	state := newTestState(t, stubLookup{})

	rec := serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"featured_id":"3"}`, nil)
	out := decodeData[cartResponse](t, rec)
	if len(out.Lines) != 1 || out.Lines[0].Card.Name != "Mewtwo V" || out.Lines[0].UnitPrice != "39.99" {
		t.Fatalf("unexpected cart %+v", out)
	}

	rec = serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"featured_id":"999"}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{}`, nil)
	if code := decodeErrorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %s", code)
	}

	rec = serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"card":{"name":"no id"}}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for card without id, got %d", rec.Code)
	}
}

type settingsResponse struct {
	Currency struct {
		Code   string `json:"code"`
		Symbol string `json:"symbol"`
	} `json:"currency"`
	ExchangeRate string `json:"exchange_rate"`
	Currencies   []struct {
		Code string `json:"code"`
	} `json:"currencies"`
}

func TestSettingsFetchAndUpdate(t *testing.T) {
	state := newTestState(t, stubLookup{})
	cfg := settingsConfig()

	out := decodeData[settingsResponse](t, serve(t, state, SettingsFetch(cfg), http.MethodGet, "/settings", "", nil))
	if out.Currency.Code != "PEN" || out.Currency.Symbol != "S/" || out.ExchangeRate != "3.70" || len(out.Currencies) != 5 {
		t.Fatalf("unexpected defaults %+v", out)
	}

	rec := serve(t, state, SettingsUpdate(cfg, nil), http.MethodPut, "/settings", `{"currency":"mxn","exchange_rate":17.5}`, nil)
	out = decodeData[settingsResponse](t, rec)
	if out.Currency.Code != "MXN" || out.ExchangeRate != "5.00" {
		t.Fatalf("expected MXN with clamped rate, got %+v", out)
	}

	rec = serve(t, state, SettingsUpdate(cfg, nil), http.MethodPut, "/settings", `{"exchange_rate":"0.2"}`, nil)
	out = decodeData[settingsResponse](t, rec)
	if out.ExchangeRate != "1.00" {
		t.Fatalf("expected clamp to minimum, got %s", out.ExchangeRate)
	}

	rec = serve(t, state, SettingsUpdate(cfg, nil), http.MethodPut, "/settings", `{"currency":"EUR"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported currency, got %d", rec.Code)
	}

	rec = serve(t, state, SettingsUpdate(cfg, nil), http.MethodPut, "/settings", `{}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %d", rec.Code)
	}
}

func TestFeaturedListAndDetail(t *testing.T) {
	state := newTestState(t, stubLookup{})

	list := decodeData[[]struct {
		ID      string `json:"id"`
		Display struct {
			Price string `json:"price"`
		} `json:"display"`
	}](t, serve(t, state, FeaturedList(nil), http.MethodGet, "/featured?limit=3", "", nil))
	if len(list) != 3 || list[0].ID != "1" || list[0].Display.Price != "49.99" {
		t.Fatalf("unexpected featured list %+v", list)
	}

	rec := serve(t, state, FeaturedDetail(nil), http.MethodGet, "/featured/20", "", map[string]string{"cardId": "20"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	detail := decodeData[struct {
		Display struct {
			Price          string `json:"price"`
			ConvertedPrice string `json:"converted_price"`
		} `json:"display"`
	}](t, rec)
	if detail.Display.Price != "41.99" || detail.Display.ConvertedPrice != "155.36" {
		t.Fatalf("unexpected featured detail display %+v", detail.Display)
	}
	rec = serve(t, state, FeaturedDetail(nil), http.MethodGet, "/featured/nope", "", map[string]string{"cardId": "nope"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthz(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec := httptest.NewRecorder()
	Healthz(cfg, nil, nil)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	out := decodeData[map[string]string](t, rec)
	if out["status"] != "ok" || out["redis"] != "disabled" {
		t.Fatalf("unexpected health %v", out)
	}
	if rec.Header().Get("X-CardFinderz-Env") != "dev" {
		t.Fatalf("missing env header")
	}

	rec = httptest.NewRecorder()
	Healthz(cfg, nil, stubPinger{})(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if out := decodeData[map[string]string](t, rec); out["redis"] != "ok" {
		t.Fatalf("unexpected health %v", out)
	}

	rec = httptest.NewRecorder()
	Healthz(cfg, nil, stubPinger{err: errors.New("down")})(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestCartAddAcceptsRenderedCard(t *testing.T) {
	state := newTestState(t, stubLookup{})

	featuredRec := serve(t, state, FeaturedDetail(nil), http.MethodGet, "/featured/2", "", map[string]string{"cardId": "2"})
	rendered := decodeData[json.RawMessage](t, featuredRec)

	rec := serve(t, state, CartAddItem(nil), http.MethodPost, "/cart/items", `{"card":`+string(rendered)+`}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	out := decodeData[cartResponse](t, rec)
	if len(out.Lines) != 1 || out.Lines[0].Card.ID != "2" || out.SubtotalUSD != "89.99" {
		t.Fatalf("unexpected cart %+v", out)
	}
}
