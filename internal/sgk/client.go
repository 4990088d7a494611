package sgk

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	. "github.com/ardacaliskaan/RaporServisi/internal/models"
)

// DateLayout is the dd.MM.yyyy form the Vizite service expects on the wire.
const DateLayout = "02.01.2006"

type Credentials struct {
	Username    string
	CompanyCode string
	Password    string
}

// Key identifies a credential set for caching purposes. The password is
// part of the key so a rotated password never reuses a stale session.
func (c Credentials) Key() string {
	return c.Username + "|" + c.CompanyCode + "|" + c.Password
}

type LoginResult struct {
	Code    int
	Message string
	Token   string
}

type OperationResult struct {
	Code    int
	Message string
}

func (r OperationResult) Success() bool {
	return IsSuccess(r.Code)
}

// SearchResult carries the upstream result code plus the normalized items.
// Items that could not be mapped are reported in Skipped, never dropped.
type SearchResult struct {
	Code    int
	Message string
	Items   []ReportItem
	Skipped []OperationError
}

type ApprovedSearchResult struct {
	Code    int
	Message string
	Items   []ApprovedReportItem
}

// Client is the boundary to the ViziteGonder SOAP service. All methods
// return a nil error with the upstream result code on a decoded response;
// a non-nil error is always a *TransportError.
type Client interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	SearchReportsByDate(ctx context.Context, creds Credentials, token, date string) (SearchResult, error)
	SearchApprovedReports(ctx context.Context, creds Credentials, token, startDate, endDate string) (ApprovedSearchResult, error)
	MarkReportAsRead(ctx context.Context, creds Credentials, token string, reportID int64) (OperationResult, error)
	ApproveReport(ctx context.Context, creds Credentials, token string, req ApproveReportRequest) (OperationResult, error)
	CancelApproval(ctx context.Context, creds Credentials, token string, reportID int64) (OperationResult, error)
}

type httpClient struct {
	endpoint string
	http     *http.Client
	log      logger.Logger
}

func NewClient(endpoint string) Client {
	return &httpClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
		log:      logger.New("sgkClient"),
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func envelope(operation string, fields ...[2]string) string {
	var b strings.Builder
	b.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:viz="http://vizite.ws.sgk">`)
	b.WriteString("<soapenv:Header/><soapenv:Body>")
	fmt.Fprintf(&b, "<viz:%s>", operation)
	for _, f := range fields {
		fmt.Fprintf(&b, "<viz:%s>%s</viz:%s>", f[0], xmlEscaper.Replace(f[1]), f[0])
	}
	fmt.Fprintf(&b, "</viz:%s>", operation)
	b.WriteString("</soapenv:Body></soapenv:Envelope>")
	return b.String()
}

func (c *httpClient) post(ctx context.Context, operation, body string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, &TransportError{Operation: operation, Err: err}
	}
	req.Header.Set("Content-Type", `text/xml; charset=utf-8`)
	req.Header.Set("SOAPAction", "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Operation: operation, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Operation: operation,
			Err:       fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return raw, nil
}

type wsLoginEnvelope struct {
	Body struct {
		Response struct {
			Return struct {
				SonucKod      int    `xml:"sonucKod"`
				SonucAciklama string `xml:"sonucAciklama"`
				WsToken       string `xml:"wsToken"`
			} `xml:"wsLoginReturn"`
		} `xml:"wsLoginResponse"`
	} `xml:"Body"`
}

func (c *httpClient) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	body := envelope("wsLogin",
		[2]string{"kullaniciAdi", creds.Username},
		[2]string{"isyeriKodu", creds.CompanyCode},
		[2]string{"wsSifre", creds.Password},
	)

	raw, err := c.post(ctx, "wsLogin", body)
	if err != nil {
		return LoginResult{}, err
	}

	var env wsLoginEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return LoginResult{}, &TransportError{Operation: "wsLogin", Err: err}
	}

	ret := env.Body.Response.Return
	result := LoginResult{
		Code:    ret.SonucKod,
		Message: messageOr(ret.SonucKod, ret.SonucAciklama),
		Token:   ret.WsToken,
	}

	return result, nil
}

// raporBean covers the report fields of both bean array variants the
// service has been observed to return. All values arrive as strings.
type raporBean struct {
	Tckn           string `xml:"TCKIMLIKNO"`
	Ad             string `xml:"AD"`
	Soyad          string `xml:"SOYAD"`
	MedulaRaporID  string `xml:"MEDULARAPORID"`
	RaporTakipNo   string `xml:"RAPORTAKIPNO"`
	RaporSiraNo    string `xml:"RAPORSIRANO"`
	PoliklinikTar  string `xml:"POLIKLINIKTAR"`
	YatRapBasTar   string `xml:"YATRAPBASTAR"`
	YatRapBitTar   string `xml:"YATRAPBITTAR"`
	ABasTar        string `xml:"ABASTAR"`
	ABitTar        string `xml:"ABITTAR"`
	IsBasKontTar   string `xml:"ISBASKONTTAR"`
	IsKazasiTarihi string `xml:"ISKAZASITARIHI"`
	Vaka           string `xml:"VAKA"`
	VakaAdi        string `xml:"VAKAADI"`
	RaporDurumu    string `xml:"RAPORDURUMU"`
	TesisKodu      string `xml:"TESISKODU"`
	TesisAdi       string `xml:"TESISADI"`
}

type raporAramaReturn struct {
	SonucKod      int         `xml:"sonucKod"`
	SonucAciklama string      `xml:"sonucAciklama"`
	BeanArray     []raporBean `xml:"raporAramaTarihleBeanArray"`
	ItemArray     []raporBean `xml:"item"`
}

// beans returns whichever array variant the response populated.
func (r raporAramaReturn) beans() []raporBean {
	if len(r.BeanArray) > 0 {
		return r.BeanArray
	}
	return r.ItemArray
}

type raporAramaEnvelope struct {
	Body struct {
		Response struct {
			Return raporAramaReturn `xml:"raporAramaTarihileReturn"`
		} `xml:"raporAramaTarihileResponse"`
	} `xml:"Body"`
}

func (c *httpClient) SearchReportsByDate(
	ctx context.Context,
	creds Credentials,
	token, date string,
) (SearchResult, error) {
	body := envelope("raporAramaTarihile",
		[2]string{"kullaniciAdi", creds.Username},
		[2]string{"isyeriKodu", creds.CompanyCode},
		[2]string{"wsToken", token},
		[2]string{"tarih", date},
	)

	raw, err := c.post(ctx, "raporAramaTarihile", body)
	if err != nil {
		return SearchResult{}, err
	}

	var env raporAramaEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return SearchResult{}, &TransportError{Operation: "raporAramaTarihile", Err: err}
	}

	ret := env.Body.Response.Return
	result := SearchResult{
		Code:    ret.SonucKod,
		Message: messageOr(ret.SonucKod, ret.SonucAciklama),
	}

	for _, bean := range ret.beans() {
		item, err := bean.toReportItem()
		if err != nil {
			c.log.Function("SearchReportsByDate").
				Er("skipping unmappable report item", err, "tckn", bean.Tckn)
			result.Skipped = append(result.Skipped, OperationError{
				TcIdentityNumber: bean.Tckn,
				ErrorCode:        -1,
				ErrorMessage:     fmt.Sprintf("Veri dönüştürme hatası: %v", err),
			})
			continue
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

type onayliRaporlarReturn struct {
	SonucKod      int         `xml:"sonucKod"`
	SonucAciklama string      `xml:"sonucAciklama"`
	BeanArray     []raporBean `xml:"onayliRaporlarTarihleBeanArray"`
	ItemArray     []raporBean `xml:"item"`
}

func (r onayliRaporlarReturn) beans() []raporBean {
	if len(r.BeanArray) > 0 {
		return r.BeanArray
	}
	return r.ItemArray
}

type onayliRaporlarEnvelope struct {
	Body struct {
		Response struct {
			Return onayliRaporlarReturn `xml:"onayliRaporlarTarihileReturn"`
		} `xml:"onayliRaporlarTarihileResponse"`
	} `xml:"Body"`
}

func (c *httpClient) SearchApprovedReports(
	ctx context.Context,
	creds Credentials,
	token, startDate, endDate string,
) (ApprovedSearchResult, error) {
	body := envelope("onayliRaporlarTarihile",
		[2]string{"kullaniciAdi", creds.Username},
		[2]string{"isyeriKodu", creds.CompanyCode},
		[2]string{"wsToken", token},
		[2]string{"tarih", startDate},
		[2]string{"tarih2", endDate},
	)

	raw, err := c.post(ctx, "onayliRaporlarTarihile", body)
	if err != nil {
		return ApprovedSearchResult{}, err
	}

	var env onayliRaporlarEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return ApprovedSearchResult{}, &TransportError{Operation: "onayliRaporlarTarihile", Err: err}
	}

	ret := env.Body.Response.Return
	result := ApprovedSearchResult{
		Code:    ret.SonucKod,
		Message: messageOr(ret.SonucKod, ret.SonucAciklama),
	}

	for _, bean := range ret.beans() {
		id, err := strconv.ParseInt(strings.TrimSpace(bean.MedulaRaporID), 10, 64)
		if err != nil {
			c.log.Function("SearchApprovedReports").
				Er("skipping approved report with bad id", err, "raw", bean.MedulaRaporID)
			continue
		}
		result.Items = append(result.Items, ApprovedReportItem{
			ReportID:         id,
			TcIdentityNumber: bean.Tckn,
			FirstName:        bean.Ad,
			LastName:         bean.Soyad,
			ReportTrackingNo: bean.RaporTakipNo,
			ReportSequenceNo: bean.RaporSiraNo,
			ClinicDate:       parseUpstreamDate(bean.PoliklinikTar),
			WorkControlDate:  parseUpstreamDate(bean.IsBasKontTar),
			WorkAccidentDate: parseUpstreamDate(bean.IsKazasiTarihi),
			CaseType:         bean.Vaka,
			CaseName:         bean.VakaAdi,
		})
	}

	return result, nil
}

type operationEnvelope struct {
	Body struct {
		OkunduKapat struct {
			Return operationReturn `xml:"raporOkunduKapatReturn"`
		} `xml:"raporOkunduKapatResponse"`
		Onay struct {
			Return operationReturn `xml:"raporOnayReturn"`
		} `xml:"raporOnayResponse"`
		OnayIptal struct {
			Return operationReturn `xml:"raporOnayIptalReturn"`
		} `xml:"raporOnayIptalResponse"`
	} `xml:"Body"`
}

type operationReturn struct {
	SonucKod      int    `xml:"sonucKod"`
	SonucAciklama string `xml:"sonucAciklama"`
}

func (c *httpClient) MarkReportAsRead(
	ctx context.Context,
	creds Credentials,
	token string,
	reportID int64,
) (OperationResult, error) {
	body := envelope("raporOkunduKapat",
		[2]string{"kullaniciAdi", creds.Username},
		[2]string{"isyeriKodu", creds.CompanyCode},
		[2]string{"wsToken", token},
		[2]string{"medulaRaporId", strconv.FormatInt(reportID, 10)},
	)

	raw, err := c.post(ctx, "raporOkunduKapat", body)
	if err != nil {
		return OperationResult{}, err
	}

	var env operationEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return OperationResult{}, &TransportError{Operation: "raporOkunduKapat", Err: err}
	}

	ret := env.Body.OkunduKapat.Return
	return OperationResult{Code: ret.SonucKod, Message: messageOr(ret.SonucKod, ret.SonucAciklama)}, nil
}

func (c *httpClient) ApproveReport(
	ctx context.Context,
	creds Credentials,
	token string,
	req ApproveReportRequest,
) (OperationResult, error) {
	body := envelope("raporOnay",
		[2]string{"kullaniciAdi", creds.Username},
		[2]string{"isyeriKodu", creds.CompanyCode},
		[2]string{"wsToken", token},
		[2]string{"tcKimlikNo", req.TcIdentityNumber},
		[2]string{"vaka", req.CaseType},
		[2]string{"medulaRaporId", strconv.FormatInt(req.ReportID, 10)},
		[2]string{"nitelikDurumu", req.WorkedFlag},
		[2]string{"tarih", req.Date},
	)

	raw, err := c.post(ctx, "raporOnay", body)
	if err != nil {
		return OperationResult{}, err
	}

	var env operationEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return OperationResult{}, &TransportError{Operation: "raporOnay", Err: err}
	}

	ret := env.Body.Onay.Return
	return OperationResult{Code: ret.SonucKod, Message: messageOr(ret.SonucKod, ret.SonucAciklama)}, nil
}

func (c *httpClient) CancelApproval(
	ctx context.Context,
	creds Credentials,
	token string,
	reportID int64,
) (OperationResult, error) {
	body := envelope("raporOnayIptal",
		[2]string{"kullaniciAdi", creds.Username},
		[2]string{"isyeriKodu", creds.CompanyCode},
		[2]string{"wsToken", token},
		[2]string{"medulaRaporId", strconv.FormatInt(reportID, 10)},
	)

	raw, err := c.post(ctx, "raporOnayIptal", body)
	if err != nil {
		return OperationResult{}, err
	}

	var env operationEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return OperationResult{}, &TransportError{Operation: "raporOnayIptal", Err: err}
	}

	ret := env.Body.OnayIptal.Return
	return OperationResult{Code: ret.SonucKod, Message: messageOr(ret.SonucKod, ret.SonucAciklama)}, nil
}

func (b raporBean) toReportItem() (ReportItem, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(b.MedulaRaporID), 10, 64)
	if err != nil {
		return ReportItem{}, fmt.Errorf("invalid medula rapor id %q: %w", b.MedulaRaporID, err)
	}

	return ReportItem{
		ReportID:         id,
		TcIdentityNumber: b.Tckn,
		FirstName:        b.Ad,
		LastName:         b.Soyad,
		ReportTrackingNo: b.RaporTakipNo,
		ReportSequenceNo: b.RaporSiraNo,
		ClinicDate:       parseUpstreamDate(b.PoliklinikTar),
		InpatientStart:   parseUpstreamDate(b.YatRapBasTar),
		InpatientEnd:     parseUpstreamDate(b.YatRapBitTar),
		OutpatientStart:  parseUpstreamDate(b.ABasTar),
		OutpatientEnd:    parseUpstreamDate(b.ABitTar),
		WorkControlDate:  parseUpstreamDate(b.IsBasKontTar),
		CaseType:         b.Vaka,
		CaseName:         b.VakaAdi,
		ReportStatus:     b.RaporDurumu,
		FacilityCode:     b.TesisKodu,
		FacilityName:     b.TesisAdi,
	}, nil
}

// parseUpstreamDate tolerates the date spellings seen from the service.
func parseUpstreamDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{DateLayout, "2006-01-02", "02.01.2006 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// messageOr prefers the upstream explanation text, falling back to the
// documented message for the code.
func messageOr(code int, upstream string) string {
	if strings.TrimSpace(upstream) != "" {
		return upstream
	}
	return Message(code)
}
