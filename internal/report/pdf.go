package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"isp-ledger/internal/domain/account"
	"isp-ledger/internal/domain/ledger"
	"isp-ledger/internal/infrastructure/monitoring"
)

const (
	KindPendingBalances = "pending_balances"
	KindPaymentHistory  = "payment_history"
	KindRenewals        = "renewals"
)

const reportDateLayout = "02-01-2006"

// Generator renders billing reports as PDF documents.
type Generator struct {
	logger *slog.Logger
}

func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &Generator{logger: logger.With("component", "ReportGenerator")}
}

// Filename builds the canonical download name for a report. The id segment
// is omitted when zero (fleet-wide reports carry no account id).
func Filename(kind string, accountID int64, date time.Time) string {
	if accountID == 0 {
		return fmt.Sprintf("%s_%s.pdf", kind, date.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s_%d_%s.pdf", kind, accountID, date.Format("2006-01-02"))
}

// sanitize replaces characters outside the cp1252 range so gofpdf's core
// fonts never render garbage bytes.
func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			out = append(out, ' ')
			continue
		}
		if r < 0x20 || r > 0xFF {
			out = append(out, '?')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func newDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, sanitize(title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("02-01-2006 15:04"), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	return pdf
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, label := range labels {
		pdf.CellFormat(widths[i], 8, label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

// PendingBalances lists every account with a positive pending balance and
// closes with a total row.
func (g *Generator) PendingBalances(accounts []*account.Account) ([]byte, error) {
	pdf := newDoc("Pending Balance Summary")

	widths := []float64{15, 55, 35, 45, 40}
	tableHeader(pdf, widths, []string{"ID", "Name", "Mobile", "Plan", "Pending (Rs)"})

	total := decimal.Zero
	rows := 0
	for _, acct := range accounts {
		if acct.PendingBalance <= 0 {
			continue
		}
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", acct.AccountID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, sanitize(acct.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, sanitize(acct.Mobile), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, sanitize(acct.PlanDetails), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(acct.PendingBalance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		total = total.Add(decimal.NewFromFloat(acct.PendingBalance))
		rows++
	}

	if rows == 0 {
		pdf.CellFormat(0, 8, "No accounts with pending balance.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, total.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	return g.output(pdf, KindPendingBalances)
}

// PaymentHistory renders one account's payments, most recent first, with a
// total row.
func (g *Generator) PaymentHistory(acct *account.Account, payments []*ledger.Payment) ([]byte, error) {
	pdf := newDoc("Payment History")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, sanitize(fmt.Sprintf("Account #%d  %s", acct.AccountID, acct.Name)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, sanitize("Plan: "+acct.PlanDetails), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Pending balance: Rs "+money(acct.PendingBalance), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	widths := []float64{25, 55, 55}
	tableHeader(pdf, widths, []string{"#", "Payment Date", "Amount (Rs)"})

	total := decimal.Zero
	for _, p := range payments {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", p.PaymentID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, p.PaymentDate.Format(reportDateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, money(p.AmountPaid), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		total = total.Add(decimal.NewFromFloat(p.AmountPaid))
	}

	if len(payments) == 0 {
		pdf.CellFormat(0, 8, "No payments recorded.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(widths[0]+widths[1], 8, "Total paid", "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, total.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	return g.output(pdf, KindPaymentHistory)
}

// Renewals renders the upcoming and past-due renewal buckets.
func (g *Generator) Renewals(schedule *account.RenewalSchedule) ([]byte, error) {
	pdf := newDoc("Renewal Schedule")

	widths := []float64{15, 55, 45, 35, 40}
	labels := []string{"ID", "Name", "Plan", "Renewal", "Pending (Rs)"}

	section := func(heading string, accounts []*account.Account) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 9, heading, "", 1, "L", false, 0, "")
		if len(accounts) == 0 {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 7, "None.", "", 1, "L", false, 0, "")
			pdf.Ln(2)
			return
		}
		tableHeader(pdf, widths, labels)
		for _, acct := range accounts {
			renewal := ""
			if acct.RenewalDate != nil {
				renewal = acct.RenewalDate.Format(reportDateLayout)
			}
			pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", acct.AccountID), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 7, sanitize(acct.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 7, sanitize(acct.PlanDetails), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[3], 7, renewal, "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[4], 7, money(acct.PendingBalance), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	section("Past Due", schedule.PastDue)
	section("Upcoming", schedule.Upcoming)

	return g.output(pdf, KindRenewals)
}

func (g *Generator) output(pdf *gofpdf.Fpdf, kind string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("Failed to render PDF report", slog.String("kind", kind), slog.Any("error", err))
		return nil, fmt.Errorf("failed to render %s report: %w", kind, err)
	}
	monitoring.RecordReportGenerated(kind)
	g.logger.Info("Report generated", slog.String("kind", kind), slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
