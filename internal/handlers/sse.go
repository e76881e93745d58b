package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"salesdash/internal/analytics"
	"salesdash/internal/models"
	"salesdash/internal/services"
)

const sseTableRows = 10

var kpiCardsTemplate = template.Must(template.New("kpiCards").Parse(`
<section id="kpi-cards" class="cards">
<div class="card"><h3>Total Sales</h3><strong>${{printf "%.2f" .TotalSales}}</strong><span>{{printf "%+.1f" .Changes.Sales}}%</span></div>
<div class="card"><h3>Total Profit</h3><strong>${{printf "%.2f" .TotalProfit}}</strong><span>{{printf "%+.1f" .Changes.Profit}}%</span></div>
<div class="card"><h3>Total Orders</h3><strong>{{.TotalOrders}}</strong><span>{{printf "%+.1f" .Changes.Orders}}%</span></div>
<div class="card"><h3>Unique Customers</h3><strong>{{.UniqueCustomers}}</strong><span>{{printf "%+.1f" .Changes.Customers}}%</span></div>
</section>`))

var tableTemplate = template.Must(template.New("transactionsTable").Parse(`
<section id="transactions-table">
<table class="modern-table">
<thead><tr><th>Date</th><th>Customer</th><th>Country</th><th>Category</th><th>Product</th><th>Amount</th><th>Status</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{if .OrderDate}}{{.OrderDate.Format "2006-01-02"}}{{end}}</td>
<td>{{.CustomerName}}</td>
<td>{{.CountryName}}</td>
<td><span class="category-badge">{{.CategoryName}}</span></td>
<td>{{.ProductName}}</td>
<td><strong>${{printf "%.2f" .TotalAmount}}</strong></td>
<td>{{.Status}}</td>
</tr>{{end}}
</tbody>
</table>
<footer>Page {{.Page}} of {{.TotalPages}} ({{.TotalRows}} rows)</footer>
</section>`))

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{dashboard: dashboard, logger: logger}
}

func (h *SSEHandlers) renderKPIs(summary models.KPISummary) (string, error) {
	var buf strings.Builder
	err := kpiCardsTemplate.Execute(&buf, summary)
	return buf.String(), err
}

func (h *SSEHandlers) renderTable(page models.TablePage) (string, error) {
	var buf strings.Builder
	err := tableTemplate.Execute(&buf, page)
	return buf.String(), err
}

func (h *SSEHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderKPIs(h.dashboard.KPIs())
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)
}

func (h *SSEHandlers) HandleTable(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderTable(h.dashboard.Table(analytics.TableQuery{PerPage: sseTableRows}))
	if err != nil {
		h.logger.Error("render transactions table", "error", err)
		return
	}
	sse.PatchElements(html)
}

// HandleRefreshAll patches every SSE-driven region in one stream, used on
// page load and after filter changes.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	if html, err := h.renderKPIs(h.dashboard.KPIs()); err == nil {
		sse.PatchElements(html)
	} else {
		h.logger.Error("render kpi cards", "error", err)
	}

	if html, err := h.renderTable(h.dashboard.Table(analytics.TableQuery{PerPage: sseTableRows})); err == nil {
		sse.PatchElements(html)
	} else {
		h.logger.Error("render transactions table", "error", err)
	}
}
