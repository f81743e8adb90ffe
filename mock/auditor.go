package mock

import "github.com/fwojciec/capdata"

var _ capdata.ColumnAuditor = (*ColumnAuditor)(nil)

// ColumnAuditor is a mock implementation of capdata.ColumnAuditor.
type ColumnAuditor struct {
	AuditFn func(columns []string) []capdata.ColumnDrift
}

func (a *ColumnAuditor) Audit(columns []string) []capdata.ColumnDrift {
	return a.AuditFn(columns)
}
