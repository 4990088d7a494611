package models

import "time"

// SickReport is the locally persisted copy of an upstream Vizite report.
// SourceSystemID carries the Medula report id and is unique, one local
// record per upstream report.
type SickReport struct {
	BaseUUIDModel
	Tckn           string    `gorm:"type:varchar(11);not null;index:idx_sick_reports_tckn_range,priority:1" json:"tckn"`
	SicilNo        string    `gorm:"type:varchar(32)"                                                       json:"sicilNo"`
	StartDate      time.Time `gorm:"not null;index:idx_sick_reports_tckn_range,priority:2"                  json:"startDate"`
	EndDate        time.Time `gorm:"not null;index:idx_sick_reports_tckn_range,priority:3"                  json:"endDate"`
	DiagnosisCode  string    `gorm:"type:varchar(16)"                                                       json:"diagnosisCode"`
	SourceSystemID string    `gorm:"type:varchar(32);not null;uniqueIndex"                                  json:"sourceSystemId"`
	Status         string    `gorm:"type:varchar(32);not null"                                              json:"status"`
}
