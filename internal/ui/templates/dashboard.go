// Package templates holds the dashboard shell. The page is a static frame
// with datastar hooks; every data region is patched over SSE from the
// current filtered set.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the page shell. theme is "light" or "dark" and only
// sets the initial body class; toggling happens client-side via /api/theme.
func Dashboard(theme string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sales Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body{font-family:system-ui,sans-serif;margin:0}
body.theme-dark{background:#111;color:#eee}
.topbar{display:flex;justify-content:space-between;align-items:center;padding:0.5rem 1rem}
.grid{display:grid;gap:1rem;padding:1rem}
.cards{display:flex;gap:1rem}
.card{flex:1;padding:1rem;border:1px solid #8884;border-radius:6px}
.modern-table{width:100%%;border-collapse:collapse}
.modern-table th,.modern-table td{padding:0.4rem;border-bottom:1px solid #8884;text-align:left}
</style>
</head>
<body class="theme-%s">
<header class="topbar">
<h1>Sales Dashboard</h1>
<button data-on-click="@put('/api/theme')">Toggle theme</button>
</header>
<main class="grid" data-on-load="@get('/sse/refresh-all')">
<section id="kpi-cards" class="cards">Loading KPIs…</section>
<section id="filters-panel">Loading filters…</section>
<section id="transactions-table">Loading table…</section>
</main>
</body>
</html>`, templ.EscapeString(theme))
		return err
	})
}
