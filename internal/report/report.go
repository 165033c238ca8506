// Package report renders the canonical trade sequence as the daily HTML
// email and delivers it over SMTP.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"insider-flow/internal/types"
)

// maxRowsPerSection bounds each table so the email stays readable.
const maxRowsPerSection = 15

type reportData struct {
	GeneratedAt string
	Total       int
	BuyCount    int
	SellCount   int
	Buys        []types.CanonicalTradeRecord
	Sells       []types.CanonicalTradeRecord
	Sparse      bool
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
	"price": func(p *float64) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *p)
	},
	// template.HTML keeps html/template from escaping the sign to &#43;;
	// the value is formatted entirely from a float, never user input.
	"pct": func(p *float64) template.HTML {
		if p == nil {
			return "-"
		}
		return template.HTML(fmt.Sprintf("%+.2f%%", *p))
	},
}).Parse(`<html>
<head>
<style>
  body { font-family: Arial, sans-serif; background: #f5f5f5; }
  .container { max-width: 900px; margin: 0 auto; background: white; padding: 20px; border-radius: 8px; }
  h1 { color: #1e40af; border-bottom: 3px solid #1e40af; padding-bottom: 10px; }
  h2 { color: #22c55e; margin-top: 20px; }
  h2.sell { color: #ef4444; }
  .stats { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; margin: 20px 0; }
  .stat-box { background: #f0f9ff; padding: 15px; border-radius: 6px; border-left: 4px solid #1e40af; }
  .stat-box.buy { border-left-color: #22c55e; }
  .stat-box.sell { border-left-color: #ef4444; }
  table { width: 100%; border-collapse: collapse; margin: 15px 0; }
  th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; font-size: 13px; }
  th { background: #f3f4f6; font-weight: bold; }
  .ticker { font-weight: bold; color: #1e40af; font-size: 14px; }
  .source { color: #666; font-size: 11px; }
  .warning { background: #fef3c7; padding: 12px; border-radius: 6px; margin: 20px 0; border-left: 4px solid #f59e0b; }
  .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; color: #666; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <h1>Insider Trading Report</h1>
  <p><strong>Report Date:</strong> {{.GeneratedAt}}</p>

  <div class="stats">
    <div class="stat-box buy"><strong>Buy Orders:</strong> {{.BuyCount}}</div>
    <div class="stat-box sell"><strong>Sell Orders:</strong> {{.SellCount}}</div>
    <div class="stat-box"><strong>Total Trades:</strong> {{.Total}}</div>
  </div>

  <div class="warning">
    <strong>Disclaimer:</strong> Educational information only, not investment
    advice. All data comes from public disclosures.
  </div>

{{if .Buys}}
  <h2>BUY TRADES</h2>
  <table>
    <tr><th>Ticker</th><th>Company</th><th>Trader</th><th>Role</th><th>Shares</th><th>Value</th><th>Filed</th><th>Px@Trade</th><th>Px Now</th><th>Change</th></tr>
{{range .Buys}}    <tr>
      <td><span class="ticker">{{.Ticker}}</span><br><span class="source">{{.Source}}</span></td>
      <td>{{.CompanyName}}</td>
      <td>{{.Trader}}</td>
      <td>{{.Role}}</td>
      <td>{{orDash .Shares}}</td>
      <td>{{orDash .Value}}</td>
      <td>{{.FiledDate}}</td>
      <td>{{price .PriceAtTrade}}</td>
      <td>{{price .CurrentPrice}}</td>
      <td>{{pct .PctChangeSinceTrade}}</td>
    </tr>
{{end}}  </table>
{{end}}
{{if .Sells}}
  <h2 class="sell">SELL TRADES</h2>
  <table>
    <tr><th>Ticker</th><th>Company</th><th>Trader</th><th>Role</th><th>Shares</th><th>Value</th><th>Filed</th><th>Px@Trade</th><th>Px Now</th><th>Change</th></tr>
{{range .Sells}}    <tr>
      <td><span class="ticker">{{.Ticker}}</span><br><span class="source">{{.Source}}</span></td>
      <td>{{.CompanyName}}</td>
      <td>{{.Trader}}</td>
      <td>{{.Role}}</td>
      <td>{{orDash .Shares}}</td>
      <td>{{orDash .Value}}</td>
      <td>{{.FiledDate}}</td>
      <td>{{price .PriceAtTrade}}</td>
      <td>{{price .CurrentPrice}}</td>
      <td>{{pct .PctChangeSinceTrade}}</td>
    </tr>
{{end}}  </table>
{{end}}
{{if .Sparse}}
  <div class="warning">
    <strong>Limited data collection.</strong> Free public sources are rate
    limited; reports fill in as providers become available again.
  </div>
{{end}}
  <div class="footer">
    <p>Generated automatically by insider-flow.</p>
    <p>Raw data available at data/insider_trades_data.json</p>
  </div>
</div>
</body>
</html>
`))

// Render builds the HTML report body for one run.
func Render(trades []types.CanonicalTradeRecord, generatedAt time.Time) (string, error) {
	data := reportData{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05 MST"),
		Total:       len(trades),
		Sparse:      len(trades) < 3,
	}

	for _, tr := range trades {
		switch tr.TradeType {
		case types.TradeTypeBuy:
			data.BuyCount++
			if len(data.Buys) < maxRowsPerSection {
				data.Buys = append(data.Buys, tr)
			}
		case types.TradeTypeSell:
			data.SellCount++
			if len(data.Sells) < maxRowsPerSection {
				data.Sells = append(data.Sells, tr)
			}
		}
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
