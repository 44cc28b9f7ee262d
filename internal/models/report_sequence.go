package models

// ReportSequence is the per-report entry-number counter. It is incremented under a
// row lock inside the entry-create transaction so concurrent creates against the same
// report cannot hand out the same sequence number.
type ReportSequence struct {
	ReportID uint `gorm:"primaryKey" json:"report_id"`
	LastSeq  int  `gorm:"not null;default:0" json:"last_seq"`
}

func (ReportSequence) TableName() string { return "report_sequences" }
