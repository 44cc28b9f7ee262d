package models

// User roles
const (
	RoleAgent      = "agent"
	RoleSupervisor = "supervisor"
	RoleManager    = "manager"
)

// Report statuses
const (
	ReportStatusPending    = "pending"
	ReportStatusInProgress = "in_progress"
	ReportStatusCompleted  = "completed"
)

// Entry statuses
const (
	EntryStatusPending    = "pending"
	EntryStatusInProgress = "in_progress"
	EntryStatusCompleted  = "completed"
	EntryStatusCancelled  = "cancelled"
)

// Choice is a value/label pair for dropdown options.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Counties lists Kenya's 47 counties.
var Counties = []Choice{
	{"nairobi", "Nairobi"},
	{"mombasa", "Mombasa"},
	{"kwale", "Kwale"},
	{"kilifi", "Kilifi"},
	{"tana_river", "Tana River"},
	{"lamu", "Lamu"},
	{"taita_taveta", "Taita Taveta"},
	{"garissa", "Garissa"},
	{"wajir", "Wajir"},
	{"mandera", "Mandera"},
	{"marsabit", "Marsabit"},
	{"isiolo", "Isiolo"},
	{"meru", "Meru"},
	{"tharaka_nithi", "Tharaka-Nithi"},
	{"embu", "Embu"},
	{"kitui", "Kitui"},
	{"machakos", "Machakos"},
	{"makueni", "Makueni"},
	{"nyandarua", "Nyandarua"},
	{"nyeri", "Nyeri"},
	{"kirinyaga", "Kirinyaga"},
	{"muranga", "Murang'a"},
	{"kiambu", "Kiambu"},
	{"turkana", "Turkana"},
	{"west_pokot", "West Pokot"},
	{"samburu", "Samburu"},
	{"trans_nzoia", "Trans Nzoia"},
	{"uasin_gishu", "Uasin Gishu"},
	{"elgeyo_marakwet", "Elgeyo-Marakwet"},
	{"nandi", "Nandi"},
	{"baringo", "Baringo"},
	{"laikipia", "Laikipia"},
	{"nakuru", "Nakuru"},
	{"narok", "Narok"},
	{"kajiado", "Kajiado"},
	{"kericho", "Kericho"},
	{"bomet", "Bomet"},
	{"kakamega", "Kakamega"},
	{"vihiga", "Vihiga"},
	{"bungoma", "Bungoma"},
	{"busia", "Busia"},
	{"siaya", "Siaya"},
	{"kisumu", "Kisumu"},
	{"homa_bay", "Homa Bay"},
	{"migori", "Migori"},
	{"kisii", "Kisii"},
	{"nyamira", "Nyamira"},
}

// Sublocations lists the coarse sub-areas within a county.
var Sublocations = []Choice{
	{"central", "Central"},
	{"east", "East"},
	{"west", "West"},
	{"north", "North"},
	{"south", "South"},
	{"urban", "Urban"},
	{"rural", "Rural"},
}

// ServiceTypes lists the entry service categories.
var ServiceTypes = []Choice{
	{"installation", "Installation"},
	{"maintenance", "Maintenance"},
	{"repair", "Repair"},
	{"upgrade", "Upgrade"},
	{"consultation", "Consultation"},
}

// Priorities lists entry priority levels.
var Priorities = []Choice{
	{"low", "Low"},
	{"medium", "Medium"},
	{"high", "High"},
	{"urgent", "Urgent"},
}

func containsValue(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func ValidCounty(v string) bool      { return containsValue(Counties, v) }
func ValidSublocation(v string) bool { return containsValue(Sublocations, v) }
func ValidServiceType(v string) bool { return containsValue(ServiceTypes, v) }
func ValidPriority(v string) bool    { return containsValue(Priorities, v) }

func ValidRole(v string) bool {
	return v == RoleAgent || v == RoleSupervisor || v == RoleManager
}

func ValidReportStatus(v string) bool {
	switch v {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusCompleted:
		return true
	}
	return false
}

func ValidEntryStatus(v string) bool {
	switch v {
	case EntryStatusPending, EntryStatusInProgress, EntryStatusCompleted, EntryStatusCancelled:
		return true
	}
	return false
}

// EntryStatusActive reports whether an entry status counts as active.
func EntryStatusActive(status string) bool {
	return status == EntryStatusInProgress || status == EntryStatusCompleted
}
