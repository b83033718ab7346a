package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func TestValidate_MinimalSchemaIsValid(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validMinimalSchema()))
}

func TestValidate_ProgramFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Program = ProgramImport{ShortID: "a1"}

	msgs := errStrings(ValidateImportSchema(schema))
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "program.name is required")
	assert.Contains(t, msgs[1], "program.short_id")
}

func TestValidate_ShortIDIsUppercased(t *testing.T) {
	schema := validMinimalSchema()
	schema.Program.ShortID = "ax100"
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidate_Gates(t *testing.T) {
	schema := validMinimalSchema()
	schema.Gates = []GateImport{
		{Key: "kickoff"},
		{Key: "sprint", Date: ptrStr("01/02/2025")},
		{Key: "briefed"},
		{Key: "briefed"},
	}

	msgs := errStrings(ValidateImportSchema(schema))
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], `unknown gate "kickoff"`)
	assert.Contains(t, msgs[1], "gates[1].date: invalid date format")
	assert.Contains(t, msgs[2], `duplicate gate "briefed"`)
}

func TestValidate_PartFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Parts = append(schema.Parts,
		PartImport{Code: "brk-100"},
		PartImport{Code: " ", Stage: "shipping", FreightType: "rail"},
		PartImport{Code: "NEG", BaseLeadTimeDays: ptrInt(-1), ScrapRate: ptrFloat(1.2), AirPremium: ptrStr("abc")},
	)

	msgs := errStrings(ValidateImportSchema(schema))
	joined := ""
	for _, m := range msgs {
		joined += m + "\n"
	}
	assert.Contains(t, joined, `parts[1].code: duplicate code "brk-100"`)
	assert.Contains(t, joined, "parts[2].code is required")
	assert.Contains(t, joined, `parts[2].stage: invalid value "shipping"`)
	assert.Contains(t, joined, `parts[2].freight_type: invalid value "rail"`)
	assert.Contains(t, joined, "parts[3].base_lead_time_days: -1 must not be negative")
	assert.Contains(t, joined, "parts[3].scrap_rate")
	assert.Contains(t, joined, `parts[3].air_premium: invalid amount "abc"`)
}

func TestValidate_PhaseFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Parts[0].Production = &PhaseImport{
		TargetDate:  ptrStr("2025-13-01"),
		PODate:      ptrStr("2025-02-01"),
		ReceivedQty: ptrInt(-5),
	}

	msgs := errStrings(ValidateImportSchema(schema))
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "parts[0].production.target_date")
	assert.Contains(t, msgs[1], "received_qty")
	assert.Contains(t, msgs[2], "po_date: set without po_number")
}

func TestLoadImportSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.json")
	body := `{
		"program": {"short_id": "HUB2026", "name": "Hub"},
		"gates": [{"key": "design-transfer", "date": "2025-04-01"}],
		"parts": [{"code": "HUB-1", "lead_time_weeks": "8 weeks", "freight_type": "air",
		           "production": {"target_date": "2025-09-01", "po_number": "PO-1"}}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	assert.Equal(t, "HUB2026", schema.Program.ShortID)
	require.Len(t, schema.Parts, 1)
	assert.Equal(t, "8 weeks", schema.Parts[0].LeadTimeWeeks)
	require.NotNil(t, schema.Parts[0].Production)
	assert.Equal(t, "PO-1", schema.Parts[0].Production.PONumber)
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestLoadImportSchema_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"program":`), 0o644))

	_, err := LoadImportSchema(path)
	assert.ErrorContains(t, err, "parsing import file")
}
