package reportController

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	. "github.com/ardacaliskaan/RaporServisi/internal/models"
	"github.com/ardacaliskaan/RaporServisi/internal/services"
	"github.com/ardacaliskaan/RaporServisi/internal/sgk"
)

// RateLimitError is returned before any upstream call when the local
// quota check denies the request.
type RateLimitError struct {
	Decision services.RateLimitDecision
}

func (e *RateLimitError) Error() string {
	return e.Decision.Message
}

type ReportController struct {
	client     sgk.Client
	sessions   *sgk.SessionManager
	rateLimits *services.RateLimitService
	bulk       *services.BulkRunner
	closeBulk  *services.BulkRunner
	log        logger.Logger
}

func New(
	client sgk.Client,
	sessions *sgk.SessionManager,
	rateLimits *services.RateLimitService,
	pace time.Duration,
) *ReportController {
	return &ReportController{
		client:     client,
		sessions:   sessions,
		rateLimits: rateLimits,
		bulk:       services.NewBulkRunner(pace),
		closeBulk:  services.NewBulkRunner(pace / 2),
		log:        logger.New("ReportController"),
	}
}

func toCredentials(c SgkCredentials) sgk.Credentials {
	return sgk.Credentials{
		Username:    c.Username,
		CompanyCode: c.CompanyCode,
		Password:    c.Password,
	}
}

// Login performs a fresh upstream login and returns the token. Intended
// as a credentials check; the cached session path is AcquireToken.
func (c *ReportController) Login(ctx context.Context, req LoginRequest) (sgk.LoginResult, error) {
	log := c.log.Function("Login")

	result, err := c.client.Login(ctx, toCredentials(req.SgkCredentials))
	if err != nil {
		return sgk.LoginResult{}, log.Err("login transport failure", err, "companyCode", req.CompanyCode)
	}

	if !sgk.IsSuccess(result.Code) || result.Token == "" {
		authErr := &sgk.AuthError{Code: result.Code, Message: result.Message}
		log.Er("login rejected", authErr, "companyCode", req.CompanyCode)
		return result, authErr
	}

	log.Info("login successful", "companyCode", req.CompanyCode)
	return result, nil
}

func (c *ReportController) SearchByDate(ctx context.Context, req SearchByDateRequest) (sgk.SearchResult, error) {
	log := c.log.Function("SearchByDate")

	decision, err := c.rateLimits.CheckAndRecord(ctx, req.CompanyCode, services.OpSearchByDate)
	if err != nil {
		return sgk.SearchResult{}, err
	}
	if !decision.Allowed {
		return sgk.SearchResult{}, &RateLimitError{Decision: decision}
	}

	creds := toCredentials(req.SgkCredentials)
	token, err := c.sessions.AcquireToken(ctx, creds)
	if err != nil {
		return sgk.SearchResult{}, err
	}

	result, err := c.client.SearchReportsByDate(ctx, creds, token, req.Date)
	if err != nil {
		return sgk.SearchResult{}, log.Err("report search transport failure", err, "date", req.Date)
	}

	if !sgk.IsSuccess(result.Code) {
		bizErr := &sgk.BusinessError{Operation: "raporAramaTarihile", Code: result.Code, Message: result.Message}
		log.Er("report search rejected", bizErr, "companyCode", req.CompanyCode, "date", req.Date)
		return result, bizErr
	}

	log.Info("report search completed", "date", req.Date, "found", len(result.Items))
	return result, nil
}

func (c *ReportController) SearchApproved(ctx context.Context, req SearchApprovedRequest) (sgk.ApprovedSearchResult, error) {
	log := c.log.Function("SearchApproved")

	creds := toCredentials(req.SgkCredentials)
	token, err := c.sessions.AcquireToken(ctx, creds)
	if err != nil {
		return sgk.ApprovedSearchResult{}, err
	}

	result, err := c.client.SearchApprovedReports(ctx, creds, token, req.StartDate, req.EndDate)
	if err != nil {
		return sgk.ApprovedSearchResult{}, log.Err("approved search transport failure", err)
	}

	if !sgk.IsSuccess(result.Code) {
		bizErr := &sgk.BusinessError{Operation: "onayliRaporlarTarihile", Code: result.Code, Message: result.Message}
		log.Er("approved search rejected", bizErr, "companyCode", req.CompanyCode)
		return result, bizErr
	}

	return result, nil
}

// CloseReport marks one report as read/closed upstream. Unclosed reports
// block access to newer ones, so this is exposed standalone as well as
// through the sync loop's auto-acknowledge.
func (c *ReportController) CloseReport(ctx context.Context, req ReportIDRequest) (sgk.OperationResult, error) {
	return c.singleOperation(ctx, "raporOkunduKapat", req.SgkCredentials,
		func(ctx context.Context, creds sgk.Credentials, token string) (sgk.OperationResult, error) {
			return c.client.MarkReportAsRead(ctx, creds, token, req.ReportID)
		})
}

func (c *ReportController) Approve(ctx context.Context, req ApproveReportRequest) (sgk.OperationResult, error) {
	return c.singleOperation(ctx, "raporOnay", req.SgkCredentials,
		func(ctx context.Context, creds sgk.Credentials, token string) (sgk.OperationResult, error) {
			return c.client.ApproveReport(ctx, creds, token, req)
		})
}

func (c *ReportController) CancelApproval(ctx context.Context, req ReportIDRequest) (sgk.OperationResult, error) {
	return c.singleOperation(ctx, "raporOnayIptal", req.SgkCredentials,
		func(ctx context.Context, creds sgk.Credentials, token string) (sgk.OperationResult, error) {
			return c.client.CancelApproval(ctx, creds, token, req.ReportID)
		})
}

func (c *ReportController) singleOperation(
	ctx context.Context,
	operation string,
	reqCreds SgkCredentials,
	call func(ctx context.Context, creds sgk.Credentials, token string) (sgk.OperationResult, error),
) (sgk.OperationResult, error) {
	log := c.log.Function(operation)

	creds := toCredentials(reqCreds)
	token, err := c.sessions.AcquireToken(ctx, creds)
	if err != nil {
		return sgk.OperationResult{}, err
	}

	result, err := call(ctx, creds, token)
	if err != nil {
		return sgk.OperationResult{}, log.Err("operation transport failure", err)
	}

	if !result.Success() {
		bizErr := &sgk.BusinessError{Operation: operation, Code: result.Code, Message: result.Message}
		log.Er("operation rejected", bizErr, "companyCode", reqCreds.CompanyCode)
		return result, bizErr
	}

	return result, nil
}

// BulkApprove applies raporOnay across a batch, classifying every item
// into the success or error list.
func (c *ReportController) BulkApprove(
	ctx context.Context,
	req BulkApproveRequest,
) services.BulkOutcome[ApprovalSuccess, OperationError] {
	return services.RunBatch(ctx, c.bulk, req.Reports,
		func(ctx context.Context, item BulkApproveItem) (ApprovalSuccess, error) {
			_, err := c.Approve(ctx, ApproveReportRequest{
				SgkCredentials:   req.SgkCredentials,
				TcIdentityNumber: item.TcIdentityNumber,
				CaseType:         item.CaseType,
				ReportID:         item.ReportID,
				WorkedFlag:       item.WorkedFlag,
				Date:             item.Date,
			})
			if err != nil {
				return ApprovalSuccess{}, err
			}
			return ApprovalSuccess{
				ReportID:         item.ReportID,
				TcIdentityNumber: item.TcIdentityNumber,
				EmployeeName:     item.EmployeeName,
				CaseType:         item.CaseType,
				WorkedFlag:       item.WorkedFlag,
				ProcessedAt:      time.Now().UTC(),
			}, nil
		},
		func(item BulkApproveItem, err error) OperationError {
			opErr := classifyItemError(err)
			opErr.ReportID = item.ReportID
			opErr.TcIdentityNumber = item.TcIdentityNumber
			return opErr
		})
}

func (c *ReportController) BulkCancel(
	ctx context.Context,
	req BulkReportIDsRequest,
) services.BulkOutcome[OperationSuccess, OperationError] {
	return c.runIDBatch(ctx, c.bulk, req, c.CancelApproval)
}

func (c *ReportController) BulkClose(
	ctx context.Context,
	req BulkReportIDsRequest,
) services.BulkOutcome[OperationSuccess, OperationError] {
	return c.runIDBatch(ctx, c.closeBulk, req, c.CloseReport)
}

func (c *ReportController) runIDBatch(
	ctx context.Context,
	runner *services.BulkRunner,
	req BulkReportIDsRequest,
	op func(ctx context.Context, req ReportIDRequest) (sgk.OperationResult, error),
) services.BulkOutcome[OperationSuccess, OperationError] {
	return services.RunBatch(ctx, runner, req.ReportIDs,
		func(ctx context.Context, reportID int64) (OperationSuccess, error) {
			_, err := op(ctx, ReportIDRequest{SgkCredentials: req.SgkCredentials, ReportID: reportID})
			if err != nil {
				return OperationSuccess{}, err
			}
			return OperationSuccess{ReportID: reportID, ProcessedAt: time.Now().UTC()}, nil
		},
		func(reportID int64, err error) OperationError {
			opErr := classifyItemError(err)
			opErr.ReportID = reportID
			return opErr
		})
}

// classifyItemError keeps the upstream result code when there is one and
// falls back to -1 for local or transport failures.
func classifyItemError(err error) OperationError {
	var bizErr *sgk.BusinessError
	if errors.As(err, &bizErr) {
		return OperationError{ErrorCode: bizErr.Code, ErrorMessage: bizErr.Message}
	}

	var authErr *sgk.AuthError
	if errors.As(err, &authErr) {
		return OperationError{ErrorCode: authErr.Code, ErrorMessage: authErr.Message}
	}

	return OperationError{ErrorCode: -1, ErrorMessage: fmt.Sprintf("İşlem hatası: %v", err)}
}
