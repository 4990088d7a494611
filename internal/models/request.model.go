package models

// SgkCredentials identifies one employer against the Vizite service. The
// gateway never stores these, they ride along on every request.
type SgkCredentials struct {
	Username    string `json:"username"`
	CompanyCode string `json:"companyCode"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	SgkCredentials
}

type SearchByDateRequest struct {
	SgkCredentials
	Date string `json:"date"` // dd.MM.yyyy
}

type SearchApprovedRequest struct {
	SgkCredentials
	StartDate string `json:"startDate"` // dd.MM.yyyy
	EndDate   string `json:"endDate"`   // dd.MM.yyyy
}

type ReportIDRequest struct {
	SgkCredentials
	ReportID int64 `json:"reportId"`
}

type ApproveReportRequest struct {
	SgkCredentials
	TcIdentityNumber string `json:"tcIdentityNumber"`
	CaseType         string `json:"caseType"`   // 1-4
	ReportID         int64  `json:"reportId"`
	WorkedFlag       string `json:"workedFlag"` // nitelik durumu, 0 or 1
	Date             string `json:"date"`       // dd.MM.yyyy
}

type BulkApproveItem struct {
	TcIdentityNumber string `json:"tcIdentityNumber"`
	CaseType         string `json:"caseType"`
	ReportID         int64  `json:"reportId"`
	WorkedFlag       string `json:"workedFlag"`
	Date             string `json:"date"`
	EmployeeName     string `json:"employeeName"`
}

type BulkApproveRequest struct {
	SgkCredentials
	Reports []BulkApproveItem `json:"reports"`
}

type BulkReportIDsRequest struct {
	SgkCredentials
	ReportIDs []int64 `json:"reportIds"`
}
