package models

import "time"

// ReportItem is the normalized shape of one upstream report, regardless of
// which bean array variant the SOAP response populated.
type ReportItem struct {
	ReportID         int64      `json:"reportId"`
	TcIdentityNumber string     `json:"tcIdentityNumber"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	ReportTrackingNo string     `json:"reportTrackingNo"`
	ReportSequenceNo string     `json:"reportSequenceNo"`
	ClinicDate       *time.Time `json:"clinicDate"`
	InpatientStart   *time.Time `json:"inpatientStart"`
	InpatientEnd     *time.Time `json:"inpatientEnd"`
	OutpatientStart  *time.Time `json:"outpatientStart"`
	OutpatientEnd    *time.Time `json:"outpatientEnd"`
	WorkControlDate  *time.Time `json:"workControlDate"`
	CaseType         string     `json:"caseType"`
	CaseName         string     `json:"caseName"`
	ReportStatus     string     `json:"reportStatus"`
	FacilityCode     string     `json:"facilityCode"`
	FacilityName     string     `json:"facilityName"`
}

// ApprovedReportItem comes from the approved-reports range search.
type ApprovedReportItem struct {
	ReportID         int64      `json:"reportId"`
	TcIdentityNumber string     `json:"tcIdentityNumber"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	ReportTrackingNo string     `json:"reportTrackingNo"`
	ReportSequenceNo string     `json:"reportSequenceNo"`
	ClinicDate       *time.Time `json:"clinicDate"`
	WorkControlDate  *time.Time `json:"workControlDate"`
	WorkAccidentDate *time.Time `json:"workAccidentDate"`
	CaseType         string     `json:"caseType"`
	CaseName         string     `json:"caseName"`
}
