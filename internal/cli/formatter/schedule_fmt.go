package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadtime/internal/contract"
	"github.com/alexanderramin/leadtime/internal/domain"
)

// FormatSchedule renders the order schedule of a program: one row per part
// phase in canonical order, followed by the status counts.
func FormatSchedule(resp *contract.ScheduleResponse) string {
	var b strings.Builder

	s := resp.Summary
	b.WriteString(Header(fmt.Sprintf("%s schedule", s.ProgramName)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("as of %s", s.GeneratedAt.Format(domain.DateLayout))))
	if s.LastReachedGate != nil {
		b.WriteString(Dim(" · last gate reached: ") + StylePurple.Render(s.LastReachedGate.Label()))
	}
	b.WriteString("\n\n")

	if len(resp.Rows) == 0 {
		b.WriteString(Dim("No parts match."))
		b.WriteString("\n")
	} else {
		headers := []string{"PART", "PHASE", "STATUS", "TARGET", "ORDER BY", "LEAD", "FREIGHT", "PO", "RECEIVED", "FLAGS"}
		rows := make([][]string, 0, len(resp.Rows))
		for _, r := range resp.Rows {
			rows = append(rows, []string{
				Bold(r.PartCode),
				string(r.Phase),
				StatusPill(r.Status, r.IsLate),
				DatePtr(r.TargetDate),
				OrderByCell(r.OrderByDate, r.DaysUntilOrderBy),
				LeadDays(r.BaseDays, r.TransitDays, r.EffectiveLeadDays),
				string(r.Freight),
				orDash(r.PONumber),
				ReceivedCell(r.ReceivedQty, r.RequestedQty, r.ReceivedPct, r.PartialReceipt),
				rowFlags(r),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	b.WriteString("\n")
	b.WriteString(scheduleCounts(s))
	b.WriteString("\n")

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(MessageLines(resp.Warnings))
	}
	return b.String()
}

func rowFlags(r contract.PhaseScheduleView) string {
	var flags []string
	if r.NeedsEarlyOrder {
		label := "early"
		if r.PrecedesGate != nil {
			label = "early: before " + r.PrecedesGate.Label()
		}
		flags = append(flags, StylePurple.Render(label))
	}
	if r.PlacedLate {
		flags = append(flags, StyleYellow.Render("placed late"))
	}
	if len(r.Warnings) > 0 {
		flags = append(flags, StyleYellow.Render(fmt.Sprintf("%d warn", len(r.Warnings))))
	}
	if len(flags) == 0 {
		return ""
	}
	return strings.Join(flags, Dim(", "))
}

func scheduleCounts(s contract.ScheduleSummary) string {
	parts := []string{
		fmt.Sprintf("%d parts", s.PartCount),
		fmt.Sprintf("%d rows", s.CountsTotal),
		StyleDim.Render(fmt.Sprintf("%d no target", s.CountsNoTarget)),
		StyleYellow.Render(fmt.Sprintf("%d not ordered", s.CountsNotOrdered)),
		StyleBlue.Render(fmt.Sprintf("%d ordered", s.CountsOrdered)),
		StyleGreen.Render(fmt.Sprintf("%d received", s.CountsReceived)),
	}
	if s.CountsLate > 0 {
		parts = append(parts, StyleRed.Render(fmt.Sprintf("%d late", s.CountsLate)))
	}
	if s.CountsEarly > 0 {
		parts = append(parts, StylePurple.Render(fmt.Sprintf("%d early order", s.CountsEarly)))
	}
	if s.CountsWarnings > 0 {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("%d with warnings", s.CountsWarnings)))
	}
	return strings.Join(parts, Dim(" · "))
}

// FormatEarlyOrders renders the parts that must be ordered before their
// authorizing gate.
func FormatEarlyOrders(resp *contract.EarlyOrderResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s early orders", resp.ProgramName)))
	b.WriteString("\n")

	if !resp.Evaluable {
		b.WriteString(StyleYellow.Render("Early-order risk cannot be evaluated."))
		b.WriteString("\n")
		b.WriteString(MessageLines(resp.Warnings))
		return b.String()
	}

	if resp.AuthorizingGate != nil {
		b.WriteString(Dim("authorizing gate: ") + StylePurple.Render(resp.AuthorizingGate.Label()))
	}
	if resp.LastReachedGate != nil {
		b.WriteString(Dim(" · last gate reached: ") + resp.LastReachedGate.Label())
	}
	b.WriteString("\n\n")

	if len(resp.Items) == 0 {
		b.WriteString(StyleGreen.Render("No parts need ordering ahead of the gate."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"PART", "PHASE", "ORDER BY", "BEFORE GATE", "DAYS AHEAD", "LEAD", "SUPPLIER"}
	rows := make([][]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		supplier := ""
		if it.NewSupplier {
			supplier = StyleYellow.Render("new")
		}
		rows = append(rows, []string{
			Bold(it.PartCode),
			string(it.Phase),
			it.OrderByDate,
			it.PrecedesGateLabel,
			StylePurple.Render(fmt.Sprintf("%dd", it.DaysBeforeGate)),
			fmt.Sprintf("%dd", it.EffectiveLeadDays),
			supplier,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d part phases need ordering before %s", len(resp.Items), resp.Items[0].AuthorizingDate)))
	b.WriteString("\n")
	return b.String()
}

// FormatPartSchedule renders both phases of one part with its production
// quantity.
func FormatPartSchedule(resp *contract.PartScheduleResponse) string {
	var b strings.Builder

	b.WriteString(Header(resp.PartCode))
	b.WriteString("\n")

	for _, r := range resp.Rows {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render(strings.ToUpper(string(r.Phase))))
		b.WriteString("  ")
		b.WriteString(StatusPill(r.Status, r.IsLate))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %-12s %s\n", Dim("Target"), DatePtr(r.TargetDate))
		fmt.Fprintf(&b, "  %-12s %s\n", Dim("Order by"), OrderByCell(r.OrderByDate, r.DaysUntilOrderBy))
		fmt.Fprintf(&b, "  %-12s %s %s\n", Dim("Lead time"),
			LeadDays(r.BaseDays, r.TransitDays, r.EffectiveLeadDays),
			Dim(fmt.Sprintf("(%s, %s)", r.BaseSource, r.Freight)))
		if r.PONumber != "" {
			fmt.Fprintf(&b, "  %-12s %s\n", Dim("PO"), r.PONumber)
		}
		fmt.Fprintf(&b, "  %-12s %s\n", Dim("Received"),
			ReceivedCell(r.ReceivedQty, r.RequestedQty, r.ReceivedPct, r.PartialReceipt))
		if r.NeedsEarlyOrder && r.PrecedesGate != nil {
			fmt.Fprintf(&b, "  %-12s %s\n", Dim("Early order"),
				StylePurple.Render("order before "+r.PrecedesGate.Label()))
		}
		b.WriteString(WarningLines(r.Warnings))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s %s\n", Dim("Production qty"), Bold(fmt.Sprintf("%d", resp.TotalProductionQty)),
		Dim(fmt.Sprintf("(%s)", resp.QuantitySource)))
	if resp.AirPremiumTotal != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Air premium   "), resp.AirPremiumTotal)
	}
	if eo := resp.EarlyOrder; eo != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Early order   "),
			StylePurple.Render(fmt.Sprintf("%s %dd before %s", eo.Phase, eo.DaysBeforeGate, eo.PrecedesGateLabel)))
	}
	if len(resp.Warnings) > 0 {
		b.WriteString(WarningLines(resp.Warnings))
	}
	return b.String()
}
