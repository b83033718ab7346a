package importer

func ptrStr(s string) *string { return &s }

func ptrInt(n int) *int { return &n }

func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Program: ProgramImport{ShortID: "AX100", Name: "Axle Refresh"},
		Gates: []GateImport{
			{Key: "briefed", Date: ptrStr("2025-01-06")},
			{Key: "design-transfer", Date: ptrStr("2025-04-01")},
		},
		Parts: []PartImport{
			{
				Code:             "BRK-100",
				BaseLeadTimeDays: ptrInt(45),
				Sprint:           &PhaseImport{TargetDate: ptrStr("2025-05-01")},
			},
		},
	}
}
