package sgk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/ardacaliskaan/RaporServisi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soapServer(t *testing.T, handler func(body string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "text/xml")

		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		fmt.Fprint(w, handler(string(raw)))
	}))
}

func soapBody(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` +
		`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soapenv:Body>` + inner + `</soapenv:Body></soapenv:Envelope>`
}

func TestClient_Login(t *testing.T) {
	server := soapServer(t, func(body string) string {
		assert.Contains(t, body, "<viz:wsLogin>")
		assert.Contains(t, body, "<viz:kullaniciAdi>testuser</viz:kullaniciAdi>")
		assert.Contains(t, body, "<viz:isyeriKodu>12345678</viz:isyeriKodu>")
		return soapBody(`<ns1:wsLoginResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<wsLoginReturn><sonucKod>0</sonucKod><sonucAciklama>İşlem başarılı</sonucAciklama>` +
			`<wsToken>abc123</wsToken></wsLoginReturn></ns1:wsLoginResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Login(context.Background(), testCredentials())
	require.NoError(t, err)

	assert.Equal(t, CodeSuccess, result.Code)
	assert.Equal(t, "abc123", result.Token)
	assert.Equal(t, "İşlem başarılı", result.Message)
}

func TestClient_Login_EscapesCredentials(t *testing.T) {
	server := soapServer(t, func(body string) string {
		assert.Contains(t, body, "p&amp;ss&lt;word")
		assert.NotContains(t, body, "p&ss<word")
		return soapBody(`<ns1:wsLoginResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<wsLoginReturn><sonucKod>0</sonucKod><wsToken>tok</wsToken></wsLoginReturn></ns1:wsLoginResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	creds := Credentials{Username: "u", CompanyCode: "1", Password: "p&ss<word"}
	_, err := client.Login(context.Background(), creds)
	require.NoError(t, err)
}

func TestClient_Login_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), testCredentials())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "wsLogin", transportErr.Operation)
}

func reportBeanXML(id, tckn string) string {
	return `<TCKIMLIKNO>` + tckn + `</TCKIMLIKNO>` +
		`<AD>AHMET</AD><SOYAD>YILMAZ</SOYAD>` +
		`<MEDULARAPORID>` + id + `</MEDULARAPORID>` +
		`<RAPORTAKIPNO>TR100</RAPORTAKIPNO><RAPORSIRANO>1</RAPORSIRANO>` +
		`<POLIKLINIKTAR>06.01.2025</POLIKLINIKTAR>` +
		`<VAKA>3</VAKA><VAKAADI>Hastalık</VAKAADI>` +
		`<RAPORDURUMU>1</RAPORDURUMU>` +
		`<TESISKODU>11068607</TESISKODU><TESISADI>Test Hastanesi</TESISADI>`
}

func TestClient_SearchReportsByDate_BeanArrayVariant(t *testing.T) {
	server := soapServer(t, func(body string) string {
		assert.Contains(t, body, "<viz:raporAramaTarihile>")
		assert.Contains(t, body, "<viz:tarih>06.01.2025</viz:tarih>")
		return soapBody(`<ns1:raporAramaTarihileResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporAramaTarihileReturn><sonucKod>0</sonucKod>` +
			`<raporAramaTarihleBeanArray>` + reportBeanXML("123456", "12345678901") + `</raporAramaTarihleBeanArray>` +
			`<raporAramaTarihleBeanArray>` + reportBeanXML("123457", "98765432109") + `</raporAramaTarihleBeanArray>` +
			`</raporAramaTarihileReturn></ns1:raporAramaTarihileResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.SearchReportsByDate(context.Background(), testCredentials(), "tok", "06.01.2025")
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(123456), result.Items[0].ReportID)
	assert.Equal(t, "12345678901", result.Items[0].TcIdentityNumber)
	assert.Equal(t, "AHMET", result.Items[0].FirstName)
	require.NotNil(t, result.Items[0].ClinicDate)
	assert.Equal(t, "06.01.2025", result.Items[0].ClinicDate.Format(DateLayout))
	assert.Empty(t, result.Skipped)
}

func TestClient_SearchReportsByDate_ItemArrayVariant(t *testing.T) {
	server := soapServer(t, func(body string) string {
		return soapBody(`<ns1:raporAramaTarihileResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporAramaTarihileReturn><sonucKod>0</sonucKod>` +
			`<item>` + reportBeanXML("123458", "12345678901") + `</item>` +
			`</raporAramaTarihileReturn></ns1:raporAramaTarihileResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.SearchReportsByDate(context.Background(), testCredentials(), "tok", "06.01.2025")
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(123458), result.Items[0].ReportID)
}

func TestClient_SearchReportsByDate_SkipsUnmappableItems(t *testing.T) {
	server := soapServer(t, func(body string) string {
		return soapBody(`<ns1:raporAramaTarihileResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporAramaTarihileReturn><sonucKod>0</sonucKod>` +
			`<item>` + reportBeanXML("not-a-number", "12345678901") + `</item>` +
			`<item>` + reportBeanXML("123459", "98765432109") + `</item>` +
			`</raporAramaTarihileReturn></ns1:raporAramaTarihileResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.SearchReportsByDate(context.Background(), testCredentials(), "tok", "06.01.2025")
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(123459), result.Items[0].ReportID)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "12345678901", result.Skipped[0].TcIdentityNumber)
	assert.Equal(t, -1, result.Skipped[0].ErrorCode)
}

func TestClient_SearchReportsByDate_EmptyDay(t *testing.T) {
	server := soapServer(t, func(body string) string {
		return soapBody(`<ns1:raporAramaTarihileResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporAramaTarihileReturn><sonucKod>501</sonucKod>` +
			`</raporAramaTarihileReturn></ns1:raporAramaTarihileResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.SearchReportsByDate(context.Background(), testCredentials(), "tok", "06.01.2025")
	require.NoError(t, err)

	assert.Equal(t, CodeRecordNotFound, result.Code)
	assert.Equal(t, "Kayıt Bulunamadı", result.Message)
	assert.Empty(t, result.Items)
}

func TestClient_SearchApprovedReports(t *testing.T) {
	server := soapServer(t, func(body string) string {
		assert.Contains(t, body, "<viz:onayliRaporlarTarihile>")
		assert.Contains(t, body, "<viz:tarih>01.01.2025</viz:tarih>")
		assert.Contains(t, body, "<viz:tarih2>31.01.2025</viz:tarih2>")
		return soapBody(`<ns1:onayliRaporlarTarihileResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<onayliRaporlarTarihileReturn><sonucKod>0</sonucKod>` +
			`<item>` + reportBeanXML("123460", "12345678901") + `</item>` +
			`</onayliRaporlarTarihileReturn></ns1:onayliRaporlarTarihileResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.SearchApprovedReports(context.Background(), testCredentials(), "tok", "01.01.2025", "31.01.2025")
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(123460), result.Items[0].ReportID)
}

func TestClient_MarkReportAsRead(t *testing.T) {
	server := soapServer(t, func(body string) string {
		assert.Contains(t, body, "<viz:raporOkunduKapat>")
		assert.Contains(t, body, "<viz:medulaRaporId>123456</viz:medulaRaporId>")
		return soapBody(`<ns1:raporOkunduKapatResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporOkunduKapatReturn><sonucKod>0</sonucKod></raporOkunduKapatReturn>` +
			`</ns1:raporOkunduKapatResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.MarkReportAsRead(context.Background(), testCredentials(), "tok", 123456)
	require.NoError(t, err)
	assert.True(t, result.Success())
}

func TestClient_MarkReportAsRead_CannotBeClosed(t *testing.T) {
	server := soapServer(t, func(body string) string {
		return soapBody(`<ns1:raporOkunduKapatResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporOkunduKapatReturn><sonucKod>911</sonucKod></raporOkunduKapatReturn>` +
			`</ns1:raporOkunduKapatResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.MarkReportAsRead(context.Background(), testCredentials(), "tok", 123456)
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Equal(t, CodeReportCannotBeClosed, result.Code)
	assert.Equal(t, "Rapor Kapatılamamıştır", result.Message)
}

func TestClient_ApproveReport(t *testing.T) {
	var captured string
	server := soapServer(t, func(body string) string {
		captured = body
		return soapBody(`<ns1:raporOnayResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporOnayReturn><sonucKod>0</sonucKod></raporOnayReturn></ns1:raporOnayResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.ApproveReport(context.Background(), testCredentials(), "tok", ApproveReportRequest{
		TcIdentityNumber: "12345678901",
		CaseType:         "3",
		ReportID:         123456,
		WorkedFlag:       "0",
		Date:             "08.01.2025",
	})
	require.NoError(t, err)
	assert.True(t, result.Success())

	for _, fragment := range []string{
		"<viz:tcKimlikNo>12345678901</viz:tcKimlikNo>",
		"<viz:vaka>3</viz:vaka>",
		"<viz:medulaRaporId>123456</viz:medulaRaporId>",
		"<viz:nitelikDurumu>0</viz:nitelikDurumu>",
		"<viz:tarih>08.01.2025</viz:tarih>",
	} {
		assert.True(t, strings.Contains(captured, fragment), "request should contain %s", fragment)
	}
}

func TestClient_CancelApproval(t *testing.T) {
	server := soapServer(t, func(body string) string {
		assert.Contains(t, body, "<viz:raporOnayIptal>")
		return soapBody(`<ns1:raporOnayIptalResponse xmlns:ns1="http://vizite.ws.sgk">` +
			`<raporOnayIptalReturn><sonucKod>905</sonucKod></raporOnayIptalReturn>` +
			`</ns1:raporOnayIptalResponse>`)
	})
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.CancelApproval(context.Background(), testCredentials(), "tok", 123456)
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Equal(t, CodeReportPaymentMade, result.Code)
	assert.Equal(t, "Raporun Ödemesi Yapılmış, Onay İptal Edilemez", result.Message)
}

func TestParseUpstreamDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		isNil    bool
	}{
		{name: "dotted layout", raw: "06.01.2025", expected: "2025-01-06"},
		{name: "iso layout", raw: "2025-01-06", expected: "2025-01-06"},
		{name: "dotted with time", raw: "06.01.2025 14:30:00", expected: "2025-01-06"},
		{name: "empty", raw: "", isNil: true},
		{name: "whitespace", raw: "   ", isNil: true},
		{name: "garbage", raw: "not-a-date", isNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := parseUpstreamDate(tt.raw)
			if tt.isNil {
				assert.Nil(t, parsed)
				return
			}
			require.NotNil(t, parsed)
			assert.Equal(t, tt.expected, parsed.Format("2006-01-02"))
		})
	}
}
