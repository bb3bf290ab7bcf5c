package http_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	exportsvc "github.com/MrJamesThe3rd/vyaparx/internal/export"
	api "github.com/MrJamesThe3rd/vyaparx/internal/http"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/campaign"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/customer"
	deliveryh "github.com/MrJamesThe3rd/vyaparx/internal/http/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/export"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/importcsv"
	intakeh "github.com/MrJamesThe3rd/vyaparx/internal/http/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/invoice"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/notification"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/payment"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/product"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/ui"
	voiceh "github.com/MrJamesThe3rd/vyaparx/internal/http/voice"
	"github.com/MrJamesThe3rd/vyaparx/internal/importer"
	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/marketing"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

func newRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()

	st := store.New(
		store.WithDemoData(),
		store.WithClock(func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) }),
		store.WithIDGenerator(store.SequentialIDs()),
	)

	billingSvc := billing.NewService(st)
	deliverySvc := delivery.NewService(st)
	matcher := voice.NewMatcher(voice.DefaultTables(), voice.DefaultConfig())
	assistant := voice.NewAssistant(matcher, st, voice.NewSpeaker(nil), voice.NewTypedRecognizer())

	router := api.New(api.Handlers{
		Customers:     customer.NewHandler(st),
		Products:      product.NewHandler(st),
		Invoices:      invoice.NewHandler(st, billingSvc, deliverySvc),
		Payments:      payment.NewHandler(st),
		Deliveries:    deliveryh.NewHandler(st, deliverySvc),
		Intake:        intakeh.NewHandler(st, intake.NewService(st)),
		Campaigns:     campaign.NewHandler(st, marketing.NewService(st)),
		Notifications: notification.NewHandler(st),
		UI:            ui.NewHandler(st),
		Voice:         voiceh.NewHandler(assistant, matcher, st),
		Import:        importcsv.NewHandler(importer.NewService(st)),
		Export:        export.NewHandler(exportsvc.NewService(st), st),
	}, api.Options{AllowedOrigins: []string{"http://localhost:5173"}})

	return router, st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())

	return v
}

func TestRouter_Status(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}

	tests := []testCase{
		{"ListCustomers", http.MethodGet, "/customers", "", http.StatusOK},
		{"GetCustomer", http.MethodGet, "/customers/CUS001", "", http.StatusOK},
		{"MissingCustomer", http.MethodGet, "/customers/CUS404", "", http.StatusNotFound},
		{"CustomerQR", http.MethodGet, "/customers/CUS001/qr", "", http.StatusOK},
		{"CreateCustomer", http.MethodPost, "/customers", `{"name":"Kavita Rao","phone":"+91 90000 11111"}`, http.StatusCreated},
		{"CreateCustomerMissingPhone", http.MethodPost, "/customers", `{"name":"Kavita Rao"}`, http.StatusUnprocessableEntity},
		{"CreateCustomerBadJSON", http.MethodPost, "/customers", `{"name":`, http.StatusBadRequest},
		{"DeleteMissingCustomer", http.MethodDelete, "/customers/CUS404", "", http.StatusNotFound},
		{"PatchMissingProduct", http.MethodPatch, "/products/PRD404", `{"stock":3}`, http.StatusNotFound},
		{"NegativeStock", http.MethodPatch, "/products/PRD001", `{"stock":-3}`, http.StatusUnprocessableEntity},
		{"InvoiceUnknownCustomer", http.MethodPost, "/invoices", `{"customer_id":"CUS404","items":[{"product_id":"PRD001","quantity":1}]}`, http.StatusNotFound},
		{"InvoiceNoItems", http.MethodPost, "/invoices", `{"customer_id":"CUS001","items":[]}`, http.StatusUnprocessableEntity},
		{"PayPaidInvoice", http.MethodPost, "/invoices/INV001/payments", `{"method":"UPI"}`, http.StatusConflict},
		{"PayBadMethod", http.MethodPost, "/invoices/INV002/payments", `{"method":"Barter"}`, http.StatusUnprocessableEntity},
		{"DeliveredInvoice", http.MethodPost, "/invoices/INV001/deliveries", `{"delivery_partner":"Swiggy"}`, http.StatusConflict},
		{"PendingDeliveries", http.MethodGet, "/deliveries/pending", "", http.StatusOK},
		{"MissingDelivery", http.MethodPatch, "/deliveries/DEL404/status", `{"status":"Picked"}`, http.StatusNotFound},
		{"LeadStatus", http.MethodPatch, "/leads/LEAD001/status", `{"status":"Responded"}`, http.StatusNoContent},
		{"LeadBadStatus", http.MethodPatch, "/leads/LEAD001/status", `{"status":"Lost"}`, http.StatusUnprocessableEntity},
		{"RequirementStatus", http.MethodPatch, "/requirements/REQ001/status", `{"status":"Quoted"}`, http.StatusNoContent},
		{"MissingRequirement", http.MethodPatch, "/requirements/REQ404/status", `{"status":"Quoted"}`, http.StatusNotFound},
		{"CampaignAudience", http.MethodGet, "/campaigns/CMP001/audience", "", http.StatusOK},
		{"MarkMissingNotification", http.MethodPost, "/notifications/NTF404/read", "", http.StatusNotFound},
		{"UnknownView", http.MethodPut, "/ui/view", `{"view":"kitchen"}`, http.StatusUnprocessableEntity},
		{"UnknownLanguage", http.MethodPut, "/ui/language", `{"language":"xx-invalid-tag"}`, http.StatusUnprocessableEntity},
		{"Stats", http.MethodGet, "/ui/stats", "", http.StatusOK},
		{"Phrases", http.MethodGet, "/voice/phrases?lang=hi", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)

			rec := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodGet, "/customers", "")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestCustomers_SearchAndValidation(t *testing.T) {
	router, _ := newRouter(t)

	found := decode[[]merchant.Customer](t, do(t, router, http.MethodGet, "/customers?q=priya", ""))
	require.Len(t, found, 1)
	assert.Equal(t, "CUS002", found[0].ID)

	rec := do(t, router, http.MethodPost, "/customers", `{"name":"Kavita Rao","phone":"1","email":"nope"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	p := decode[respond.ProblemDetail](t, rec)
	assert.Equal(t, []respond.FieldError{{Field: "Email", Rule: "email"}}, p.Errors)
}

func TestCustomers_CreateUpdateDelete(t *testing.T) {
	router, st := newRouter(t)

	created := decode[merchant.Customer](t, do(t, router, http.MethodPost, "/customers", `{"name":" Kavita Rao ","phone":"+91 90000 11111"}`))
	assert.Equal(t, "Kavita Rao", created.Name)
	assert.Equal(t, merchant.CustomerActive, created.Status)
	assert.NotEmpty(t, created.ID)

	updated := decode[merchant.Customer](t, do(t, router, http.MethodPatch, "/customers/"+created.ID, `{"business_type":"Tailor"}`))
	assert.Equal(t, "Tailor", updated.BusinessType)
	assert.Equal(t, "Kavita Rao", updated.Name)

	rec := do(t, router, http.MethodDelete, "/customers/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := st.Customer(created.ID)
	assert.False(t, ok)
}

func TestProducts_LowStockFilter(t *testing.T) {
	router, _ := newRouter(t)

	low := decode[[]merchant.Product](t, do(t, router, http.MethodGet, "/products?low_stock=true", ""))
	assert.Empty(t, low)

	rec := do(t, router, http.MethodPatch, "/products/PRD003", `{"stock":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	low = decode[[]merchant.Product](t, do(t, router, http.MethodGet, "/products?low_stock=true", ""))
	require.Len(t, low, 1)
	assert.Equal(t, "PRD003", low[0].ID)
}

func TestProducts_PatchRejectsNegativePrice(t *testing.T) {
	router, st := newRouter(t)

	rec := do(t, router, http.MethodPatch, "/products/PRD001", `{"price":"-100"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	p, ok := st.Product("PRD001")
	require.True(t, ok)
	assert.Equal(t, "250", p.Price.String())
}

func TestInvoices_BillingFlow(t *testing.T) {
	router, st := newRouter(t)

	rec := do(t, router, http.MethodPost, "/invoices",
		`{"customer_id":"CUS003","items":[{"product_id":"PRD001","quantity":2},{"product_id":"PRD003","quantity":3}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	inv := decode[merchant.Invoice](t, rec)
	assert.Equal(t, "680", inv.Total.String())
	assert.Equal(t, "Mohammed Iqbal", inv.CustomerName)

	rec = do(t, router, http.MethodPost, "/invoices/"+inv.ID+"/payments", `{"method":"Cash"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	pay := decode[merchant.Payment](t, rec)
	assert.Equal(t, inv.ID, pay.InvoiceID)
	assert.Equal(t, merchant.PaymentSuccess, pay.Status)

	got, ok := st.Invoice(inv.ID)
	require.True(t, ok)
	assert.Equal(t, merchant.InvoicePaid, got.Status)

	rec = do(t, router, http.MethodPost, "/invoices/"+inv.ID+"/payments", `{"method":"Cash"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInvoices_PatchItemsRecomputesTotal(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodPatch, "/invoices/INV002",
		`{"items":[{"product_id":"PRD002","product_name":"India Gate Basmati Rice","quantity":0,"price":"180"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	inv := decode[merchant.Invoice](t, rec)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.Equal(t, "180", inv.Total.String())
}

func TestInvoices_RejectNegativePrices(t *testing.T) {
	router, st := newRouter(t)
	before := len(st.Snapshot().Invoices)

	rec := do(t, router, http.MethodPost, "/invoices",
		`{"customer_id":"CUS003","items":[{"product_id":"PRD001","quantity":2,"price":"-50"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Len(t, st.Snapshot().Invoices, before)

	rec = do(t, router, http.MethodPatch, "/invoices/INV002",
		`{"items":[{"product_id":"PRD002","product_name":"India Gate Basmati Rice","quantity":1,"price":"-180"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	inv, ok := st.Invoice("INV002")
	require.True(t, ok)
	assert.False(t, inv.Total.IsNegative())
}

func TestDeliveries_AssignAndAdvance(t *testing.T) {
	router, st := newRouter(t)

	rec := do(t, router, http.MethodPost, "/invoices/INV002/deliveries", `{"delivery_partner":"Swiggy"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	order := decode[merchant.DeliveryOrder](t, rec)
	assert.Equal(t, merchant.DeliveryAssigned, order.Status)
	assert.True(t, strings.HasPrefix(order.TrackingID, "SWIGGY"))

	rec = do(t, router, http.MethodPatch, "/deliveries/"+order.ID+"/status", `{"status":"Delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	order = decode[merchant.DeliveryOrder](t, rec)
	assert.Equal(t, merchant.DeliveryDelivered, order.Status)
	assert.NotNil(t, order.ActualDelivery)

	inv, _ := st.Invoice("INV002")
	assert.Equal(t, merchant.DeliveryStateDelivered, inv.DeliveryStatus)
}

func TestLeads_CreateWithPriority(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodPost, "/leads", `{"customer_phone":"+91 90000 22222","message":"Need 10kg atta"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	lead := decode[map[string]any](t, rec)
	assert.Equal(t, "New", lead["status"])
	assert.Contains(t, []any{"high", "medium", "low"}, lead["priority"])

	leads := decode[[]map[string]any](t, do(t, router, http.MethodGet, "/leads", ""))
	assert.Len(t, leads, 2)
}

func TestRequirements_Create(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodPost, "/requirements",
		`{"customer_id":"CUS004","source":"Call","items":[{"product_name":"Sugar","quantity":5,"unit":"kg"},{"product_name":" "}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req := decode[merchant.DailyRequirement](t, rec)
	assert.Len(t, req.Items, 1)
	assert.Equal(t, "Sunita Devi", req.CustomerName)
}

func TestCampaigns_CreateAndPatch(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodPost, "/campaigns",
		`{"name":"Holi Sale","type":"SMS","message":"10% off","target_customers":["CUS001","CUS001","CUS002"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	c := decode[merchant.Campaign](t, rec)
	assert.Equal(t, merchant.CampaignDraft, c.Status)
	assert.Equal(t, []string{"CUS001", "CUS002"}, c.TargetCustomers)

	c = decode[merchant.Campaign](t, do(t, router, http.MethodPatch, "/campaigns/"+c.ID, `{"status":"Active"}`))
	assert.Equal(t, merchant.CampaignActive, c.Status)
}

func TestNotifications_ReadAndClear(t *testing.T) {
	router, _ := newRouter(t)

	for range 2 {
		rec := do(t, router, http.MethodPost, "/notifications/NTF001/read", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	type listResponse struct {
		Unread        int                     `json:"unread"`
		Notifications []merchant.Notification `json:"notifications"`
	}

	list := decode[listResponse](t, do(t, router, http.MethodGet, "/notifications", ""))
	require.Len(t, list.Notifications, 1)
	assert.True(t, list.Notifications[0].Read)
	assert.Zero(t, list.Unread)

	assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, "/notifications", "").Code)

	list = decode[listResponse](t, do(t, router, http.MethodGet, "/notifications", ""))
	assert.Empty(t, list.Notifications)
}

func TestUI_LanguageAndMenu(t *testing.T) {
	router, st := newRouter(t)

	rec := do(t, router, http.MethodPut, "/ui/language", `{"language":"hi-IN"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	type menuItem struct {
		View   nav.View `json:"view"`
		Label  string   `json:"label"`
		Active bool     `json:"active"`
	}

	menu := decode[[]menuItem](t, do(t, router, http.MethodGet, "/ui/nav", ""))
	require.Len(t, menu, len(nav.Menu()))
	assert.Equal(t, nav.Dashboard, menu[0].View)
	assert.Equal(t, "डैशबोर्ड", menu[0].Label)
	assert.True(t, menu[0].Active)

	require.Equal(t, http.StatusNoContent, do(t, router, http.MethodPut, "/ui/view", `{"view":"billing"}`).Code)
	require.Equal(t, http.StatusNoContent, do(t, router, http.MethodPut, "/ui/sidebar", `{"open":true}`).Code)

	snap := st.Snapshot()
	assert.Equal(t, nav.Billing, snap.ActiveView)
	assert.True(t, snap.SidebarOpen)
}

func TestVoice_Command(t *testing.T) {
	router, st := newRouter(t)

	rec := do(t, router, http.MethodPost, "/voice/commands", `{"transcript":"Show Customers"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[voice.Outcome](t, rec)
	assert.True(t, out.Matched)
	assert.Equal(t, voice.MatchExact, out.Kind)
	assert.Equal(t, nav.Customers, out.Target)
	assert.Equal(t, nav.Customers, st.ActiveView())

	rec = do(t, router, http.MethodPost, "/voice/commands", `{"transcript":"xyz abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out = decode[voice.Outcome](t, rec)
	assert.False(t, out.Matched)
	assert.Len(t, out.Suggestions, 2)
	assert.Equal(t, nav.Customers, st.ActiveView())
}

func multipartBody(t *testing.T, kind, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	require.NoError(t, mw.WriteField("kind", kind))

	fw, err := mw.CreateFormFile("file", "sheet.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestImport(t *testing.T) {
	type testCase struct {
		name       string
		path       string
		kind       string
		content    string
		wantStatus int
		wantAdded  int
	}

	tests := []testCase{
		{"Products", "/import", "products", "Name,Price,Stock\nSugar,45,100\nSalt,20,50\n", http.StatusCreated, 2},
		{"Preview", "/import/preview", "products", "Name,Price\nSugar,45\n", http.StatusOK, 0},
		{"Customers", "/import", "customers", "Name,Phone\nKavita Rao,9000011111\n", http.StatusCreated, 1},
		{"UnknownKind", "/import", "invoices", "Name,Price\nSugar,45\n", http.StatusBadRequest, 0},
		{"NoHeader", "/import", "products", "Sugar,45\n", http.StatusUnprocessableEntity, 0},
		{"BadRow", "/import", "products", "Name,Price\nSugar,free\n", http.StatusUnprocessableEntity, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, st := newRouter(t)
			before := len(st.Snapshot().Products) + len(st.Snapshot().Customers)

			body, contentType := multipartBody(t, tt.kind, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/api/v1"+tt.path, body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			after := len(st.Snapshot().Products) + len(st.Snapshot().Customers)
			assert.Equal(t, tt.wantAdded, after-before)
		})
	}
}

func TestExport(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodPost, "/export", `{"start_date":"2024-01-21T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var meta struct {
		Items   []exportsvc.Item `json:"items"`
		Summary string           `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&meta))
	require.Len(t, meta.Items, 1)
	assert.Equal(t, "INV002", meta.Items[0].Invoice.ID)
	assert.Contains(t, meta.Summary, "Outstanding")

	rec = do(t, router, http.MethodPost, "/export/download", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}
