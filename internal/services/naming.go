package services

import (
	"fmt"
	"strings"
	"time"
)

// projectNameToken replaces whitespace runs with underscores so the project
// name is safe inside a filename.
func projectNameToken(name string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(name)), "_")
}

// ReportFilename builds the deterministic base-report filename:
// <OrgPrefix>_InspectionReport_<ProjectName>_<YYYYMMDD>.pdf
func ReportFilename(orgPrefix, projectName string, date time.Time) string {
	return fmt.Sprintf("%s_InspectionReport_%s_%s.pdf", orgPrefix, projectNameToken(projectName), date.Format("20060102"))
}

// PackFilename builds the deterministic audit-pack filename:
// <OrgPrefix>_AuditPack_<ProjectName>_<YYYYMMDD>.pdf
func PackFilename(orgPrefix, projectName string, date time.Time) string {
	return fmt.Sprintf("%s_AuditPack_%s_%s.pdf", orgPrefix, projectNameToken(projectName), date.Format("20060102"))
}
