package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadtime/internal/domain"
)

// FormatProgramList renders programs with their next dated gate.
func FormatProgramList(programs []*domain.Program) string {
	headers := []string{"ID", "NAME", "GATES", "UPDATED"}
	rows := make([][]string, 0, len(programs))
	for _, p := range programs {
		dated := 0
		for _, g := range p.Gates {
			if g.Date != nil {
				dated++
			}
		}
		rows = append(rows, []string{
			Bold(p.DisplayID()),
			p.Name,
			fmt.Sprintf("%d/%d", dated, len(domain.ProgramGateKeys)),
			Dim(p.UpdatedAt.Format(domain.DateLayout)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProgramDetail renders a program's gate sequence and part count.
func FormatProgramDetail(p *domain.Program, parts []*domain.Part) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s [%s]", p.Name, p.DisplayID())))
	b.WriteString("\n")
	b.WriteString(Dim("id " + p.ID))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(domain.ProgramGateKeys))
	for _, g := range domain.NewGateSequence(p.Gates...) {
		rows = append(rows, []string{string(g.Key), g.Key.Label(), FormatDate(g.Date)})
	}
	b.WriteString(RenderTable([]string{"GATE", "LABEL", "DATE"}, rows))

	open := 0
	for _, part := range parts {
		if !part.IsClosed() {
			open++
		}
	}
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d parts, %d open", len(parts), open)))
	b.WriteString("\n")
	return b.String()
}

// FormatPartList renders the lead-time inputs of each part.
func FormatPartList(parts []*domain.Part) string {
	headers := []string{"CODE", "DESCRIPTION", "STAGE", "BASE", "WEEKS", "FREIGHT", "SPRINT TARGET", "PROD TARGET"}
	rows := make([][]string, 0, len(parts))
	for _, p := range parts {
		base := Dim("--")
		if p.BaseLeadTimeDays != nil {
			base = fmt.Sprintf("%dd", *p.BaseLeadTimeDays)
		}
		rows = append(rows, []string{
			Bold(p.DisplayCode()),
			orDash(p.Description),
			StagePill(p.Stage),
			base,
			orDash(p.LeadTimeWeeks),
			orDash(string(p.FreightType)),
			FormatDate(p.Sprint.TargetDate),
			FormatDate(p.Production.TargetDate),
		})
	}
	return RenderTable(headers, rows)
}
