package models

import "time"

// ApprovalSuccess records one report that the upstream accepted for
// approval during a bulk run.
type ApprovalSuccess struct {
	ReportID         int64     `json:"reportId"`
	TcIdentityNumber string    `json:"tcIdentityNumber"`
	EmployeeName     string    `json:"employeeName"`
	CaseType         string    `json:"caseType"`
	WorkedFlag       string    `json:"workedFlag"`
	ProcessedAt      time.Time `json:"processedAt"`
}

// OperationSuccess records one report id accepted by cancel or close.
type OperationSuccess struct {
	ReportID    int64     `json:"reportId"`
	ProcessedAt time.Time `json:"processedAt"`
}

// OperationError classifies one failed item in a bulk run. ErrorCode is the
// upstream result code, or -1 for local/transport failures.
type OperationError struct {
	ReportID         int64  `json:"reportId"`
	TcIdentityNumber string `json:"tcIdentityNumber,omitempty"`
	ErrorCode        int    `json:"errorCode"`
	ErrorMessage     string `json:"errorMessage"`
}
