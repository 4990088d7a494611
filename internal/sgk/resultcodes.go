package sgk

import "fmt"

// SGK Vizite result codes as documented for the ViziteGonder web service.
// 0, 600 and 601 count as success, everything else is a business failure.
const (
	CodeSuccess = 0

	// Login (101-106)
	CodeUserNameEmpty      = 101
	CodeUserCodeEmpty      = 102
	CodePasswordEmpty      = 103
	CodeTokenEmpty         = 104
	CodeInvalidCredentials = 105
	CodeTokenExpired       = 106

	// Parameters (201-212)
	CodePhoneNumberEmpty       = 201
	CodeEmailEmpty             = 202
	CodeIDEmpty                = 203
	CodeStartDateEmpty         = 204
	CodeReportIDEmpty          = 205
	CodeStatusEmpty            = 206
	CodeReportStartDateEmpty   = 207
	CodeDateEmpty              = 208
	CodeDate2Empty             = 209
	CodeTcIdentityNumberEmpty  = 210
	CodeCaseTypeEmpty          = 211
	CodeNotificationIDEmpty    = 212

	// Format (301-308)
	CodeStartDateFormatInvalid       = 301
	CodeReportStartDateFormatInvalid = 302
	CodeDateFormatInvalid            = 303
	CodeDate2FormatInvalid           = 304
	CodeDateRangeExceeded            = 305
	CodePaymentStartDateInvalid      = 306
	CodePaymentEndDateInvalid        = 307
	CodePaymentAmountEmpty           = 308

	// Validation (401-403)
	CodeStatusMustBe0Or1       = 401
	CodeTcIdentityNumberLength = 402
	CodeCaseTypeMustBe1234     = 403

	// Not found (501-505)
	CodeRecordNotFound         = 501
	CodeReportNotFound         = 502
	CodeNoRecordsInDateRange   = 503
	CodeNoRecordsForDateRange  = 504
	CodeNoRecordsForTcIdentity = 505

	// Transfer (600-602)
	CodeTransferredSuccessfully   = 600
	CodeTransferSuccessful        = 601
	CodeTransferFailedEmployee    = 602

	// Business rules (801-825)
	CodeDateGreaterThanToday       = 801
	CodeDateGreaterThanReportEnd   = 802
	CodeDateLessThanClinicDate     = 803
	CodeShortTermReportsApprovable = 804
	CodeDateRangeAtLeast10Days     = 805
	CodeRemainingAtLeast10Days     = 806
	CodeReportEndDateEmpty         = 809
	CodeNoWorkDaysAvailable        = 810
	CodePregnancyReportError       = 825

	// Operation state (901-911)
	CodeEmployeeNotFoundInCompany   = 901
	CodeReportNotBelongToCompany    = 902
	CodeReportAlreadyApproved       = 904
	CodeReportPaymentMade           = 905
	CodeReportExistsInDateRange     = 906
	CodeOperationFailed             = 907
	CodeOperationNotCompleted       = 908
	CodeCannotDeleteRecord          = 909
	CodeEmployeeNotWorkingInCompany = 910
	CodeReportCannotBeClosed        = 911

	// Work accident (921-922)
	CodeProvisionCannotBeClosed   = 921
	CodeProvisionNotBelongCompany = 922

	// Offset agreement (1000-1008)
	CodeNoOffsetAgreement        = 1000
	CodeTcIdentityMismatch       = 1001
	CodeCaseTypeMismatch         = 1002
	CodeStartDateMismatch        = 1003
	CodeEndDateMismatch          = 1004
	CodeAmountMismatch           = 1005
	CodeRecordNotFoundForOffset  = 1006
	CodeNoPaymentRecordInMosip   = 1007
	CodeAgreementNotFoundInMosip = 1008

	// Rate limiting (1010-1011)
	CodeMaximumQueryLimitReached = 1010
	CodeWaitBetweenQueries       = 1011
)

var resultMessages = map[int]string{
	CodeSuccess:                 "İşlem başarılı",
	CodeTransferredSuccessfully: "Başarıyla aktarılmıştır",
	CodeTransferSuccessful:      "Başarılı ile aktarılmıştır",

	CodeUserNameEmpty:      "Kullanıcı Adı Boş Olamaz",
	CodeUserCodeEmpty:      "Kullanıcı Kodu Boş Olamaz",
	CodePasswordEmpty:      "Şifre Boş Olamaz",
	CodeTokenEmpty:         "Token Boş Olamaz",
	CodeInvalidCredentials: "Kullanıcı Adı, Kullanıcı Kodu veya Şifre hatalı. Tekrar deneyin",
	CodeTokenExpired:       "Kullanıcı Adı, Kullanıcı Kodu, Token hatalı veya Token süresi dolmuştur. Tekrar token alınız",

	CodePhoneNumberEmpty:      "Cep Telefonu Boş Olamaz",
	CodeEmailEmpty:            "Eposta Boş Olamaz",
	CodeIDEmpty:               "ID Boş Olamaz",
	CodeStartDateEmpty:        "İşe Başlama Tarihi Boş Olamaz",
	CodeReportIDEmpty:         "Medula Rapor Id Boş Olamaz",
	CodeStatusEmpty:           "Nitelik Durumu Boş Olamaz",
	CodeReportStartDateEmpty:  "Rapor Başlangıç Tarihi Boş Olamaz",
	CodeDateEmpty:             "Tarih Boş Olamaz",
	CodeDate2Empty:            "Tarih2 Boş Olamaz",
	CodeTcIdentityNumberEmpty: "TC Kimlik Numarası Boş Olamaz",
	CodeCaseTypeEmpty:         "Vaka Boş Olamaz",
	CodeNotificationIDEmpty:   "Bildirim Id Boş Olamaz",

	CodeStartDateFormatInvalid:       "İşe Başlama Tarihi formatınız doğru değil. Format (dd.mm.yyyy) olmalı",
	CodeReportStartDateFormatInvalid: "Rapor Başlangıç Tarihi formatınız doğru değil. Format (dd.mm.yyyy) olmalı",
	CodeDateFormatInvalid:            "Tarih formatınız doğru değil. Format (dd.mm.yyyy) olmalı",
	CodeDate2FormatInvalid:           "Tarih2 formatınız doğru değil. Format (dd.mm.yyyy) olmalı",
	CodeDateRangeExceeded:            "Gün Farkı 1 aydan büyük olamaz!",
	CodePaymentStartDateInvalid:      "Ödeme Başlangıç Tarihi formatınız doğru değil. Format (dd.mm.yyyy) olmalı",
	CodePaymentEndDateInvalid:        "Ödeme Bitiş Tarihi formatınız doğru değil. Format (dd.mm.yyyy) olmalı",
	CodePaymentAmountEmpty:           "Ödenen Tutar String Boş Olamaz",

	CodeStatusMustBe0Or1:       "Nitelik Durumu 0 veya 1 olmalıdır",
	CodeTcIdentityNumberLength: "TC Kimlik Numarası Uzunluk Hatası",
	CodeCaseTypeMustBe1234:     "Vaka türü 1,2,3,4 olabilir",

	CodeRecordNotFound:         "Kayıt Bulunamadı",
	CodeReportNotFound:         "Rapor bulunamadı",
	CodeNoRecordsInDateRange:   "Sorguladığınız Tarih Aralığında Kayıt Bulunamadı",
	CodeNoRecordsForDateRange:  "Sorguladığınız Tarih Aralığında Kayıt Bulunamadı",
	CodeNoRecordsForTcIdentity: "Sorguladığınız TC Kimlik No için Kayıt Bulunamadı",

	CodeTransferFailedEmployee: "Aktarım başarısız, sigortalı kaydı mevcut",

	CodeDateGreaterThanToday:       "Girdiğiniz Tarih Günün Tarihinden Büyük Olamaz",
	CodeDateGreaterThanReportEnd:   "Girdiğiniz Tarih, Rapor Bitiş Tarihinden Büyük Olamaz",
	CodeDateLessThanClinicDate:     "Girdiğiniz Tarih, Poliklinik Tarihinden Küçük olamaz",
	CodeShortTermReportsApprovable: "10 gün ve daha kısa süreli raporları tek seferde onaylanabilir",
	CodeDateRangeAtLeast10Days:     "Tarih Aralığı En az 10 Gün Olmalıdır",
	CodeRemainingAtLeast10Days:     "Raporun Kalan Süresi En Az 10 Gün Olmalıdır",
	CodeReportEndDateEmpty:         "Rapor bitiş tarihi boş olamaz!",
	CodeNoWorkDaysAvailable:        "Bildirim yapılacak gün bulunmamaktadır",
	CodePregnancyReportError:       "Aktarma süresinde doğum gerçekleştiğinden doğum öncesinde istirahat bulunmamaktadır. Rapor Arşive kaldırılmıştır!",

	CodeEmployeeNotFoundInCompany:   "Girilen sigortalı bilgisi ilgili işyerinde çalışır görünmüyor",
	CodeReportNotBelongToCompany:    "Rapor işyerine ait gözükmüyor",
	CodeReportAlreadyApproved:       "Rapor zaten onaylı değil",
	CodeReportPaymentMade:           "Raporun Ödemesi Yapılmış, Onay İptal Edilemez",
	CodeReportExistsInDateRange:     "Sigortalıya ait girilen tarih aralığında bildirim bulunmaktadır",
	CodeOperationFailed:             "Başarısız",
	CodeOperationNotCompleted:       "İşlem Tamamlanamadı",
	CodeCannotDeleteRecord:          "Silinemememiştir",
	CodeEmployeeNotWorkingInCompany: "TC Kimlik Numaralı sigortalı bu işyerinde çalışmıyor",
	CodeReportCannotBeClosed:        "Rapor Kapatılamamıştır",

	CodeProvisionCannotBeClosed:   "İş Kazası Hastane Provizyonu Kapatılamamıştır",
	CodeProvisionNotBelongCompany: "İş Kazası Hastane Provizyonu İşyerine Ait Gözükmüyor",

	CodeNoOffsetAgreement:        "SGK ile mahsuplaşma anlaşmanız bulunmamaktadır. Anlaşma yapıldığı takdirde bu metodları kullanabilirsiniz!",
	CodeTcIdentityMismatch:       "Girilen TC Kimlik Numarası Uyuşmuyor",
	CodeCaseTypeMismatch:         "Girilen Vaka Uyuşmuyor",
	CodeStartDateMismatch:        "Girilen tarih ile ödeme Başlangıç Tarihi Uyuşmuyor",
	CodeEndDateMismatch:          "Girilen tarih ile ödeme Bitiş Tarihi Uyuşmuyor",
	CodeAmountMismatch:           "Girilen tutar ile ödenek tutarı Uyuşmuyor",
	CodeRecordNotFoundForOffset:  "Böyle bir kayıt bulunamadı",
	CodeNoPaymentRecordInMosip:   "Seçilen Rapor Bilgisi İçin MOSİP Sisteminde Ödeme Kaydı Bulunamadı!! Mahsuplaşma Yapamazsız!",
	CodeAgreementNotFoundInMosip: "İşyeri Bilgilerine Karşılık Gelen Anlaşma Mosip Tarafında Bulunamadı!!",

	CodeMaximumQueryLimitReached: "Maksimum sorgu sayısına ulaştınız. (Aynı İşveren için son 24 saat içinde en fazla 2 sorgu yapılabilir.)",
	CodeWaitBetweenQueries:       "dakika aralıklar ile sorgulama yapabilirsiniz. !!!!",
}

// Message maps any upstream result code to a human-readable message. It is
// total: unknown codes yield a generic message carrying the raw code.
func Message(code int) string {
	if msg, ok := resultMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("Bilinmeyen hata kodu: %d", code)
}

func IsSuccess(code int) bool {
	return code == CodeSuccess ||
		code == CodeTransferredSuccessfully ||
		code == CodeTransferSuccessful
}

// CaseTypeDescription translates a vaka code (1-4) into its Turkish name.
func CaseTypeDescription(caseCode string) string {
	switch caseCode {
	case "1":
		return "İş Kazası"
	case "2":
		return "Meslek Hastalığı"
	case "3":
		return "Hastalık"
	case "4":
		return "Analık"
	default:
		return "Bilinmiyor"
	}
}

// WorkStatusDescription translates a nitelik durumu flag.
func WorkStatusDescription(statusCode string) string {
	switch statusCode {
	case "0":
		return "Çalışmamıştır"
	case "1":
		return "Çalışmıştır"
	default:
		return "Bilinmiyor"
	}
}

var reportStatusDescriptions = map[string]string{
	"1":  "Çalışır",
	"2":  "Kontrol",
	"3":  "Devamı Verildi",
	"4":  "Sevkli",
	"5":  "Hastane Kapattı",
	"6":  "Çalışır Olup Çakışma Var",
	"7":  "Kontrol olup çakışma var",
	"8":  "Maluliyet Azaltılabilir çalışır",
	"9":  "Maluliyet Sevk Çalışır",
	"10": "Analık Doğum Öncesi Çalışır",
	"11": "Analık Doğum Öncesi Çalışamaz",
	"12": "Analık Doğum Sonrası",
	"13": "Maluliyet Azaltılır Kontrol",
	"14": "Maluliyet Sevk Kontrol",
	"15": "Maluliyet Azaltılır Kontrol Devam Verildi",
	"16": "Maluliyet Sevk Kontrol Devam Verildi",
}

func ReportStatusDescription(statusCode string) string {
	if desc, ok := reportStatusDescriptions[statusCode]; ok {
		return desc
	}
	return "Bilinmiyor"
}
