package domain

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ApplicantRecord is one pilgrim's application document, field-for-field the
// intake form. Date fields carry the form's wire format (YYYY-MM-DD) so a
// record round-trips through edit without reformatting.
type ApplicantRecord struct {
	ID      int `gorm:"primaryKey;autoIncrement" json:"id"`
	Version int `gorm:"not null;default:1" json:"version"`

	Slh6            string `gorm:"type:varchar(20)" json:"slh6"`
	ApplicationYear string `gorm:"type:varchar(4);index" json:"applicationYear"`

	ResidingInSL     string `gorm:"type:varchar(3);not null" json:"residingInSL" valid:"in(Yes|No)~Invalid residency flag"`
	ResidenceCountry string `gorm:"type:varchar(100)" json:"residenceCountry"`
	ResidenceAgency  string `gorm:"type:varchar(100)" json:"residenceAgency"`
	ResidenceState   string `gorm:"type:varchar(100)" json:"residenceState"`

	FirstName     string `gorm:"type:varchar(100)" json:"firstName" valid:"required~First Name is required"`
	MiddleName    string `gorm:"type:varchar(100)" json:"middleName"`
	LastName      string `gorm:"type:varchar(100)" json:"lastName" valid:"required~Last Name is required"`
	MaritalStatus string `gorm:"type:varchar(10)" json:"maritalStatus" valid:"in(Single|Married)~Invalid marital status"`
	Gender        string `gorm:"type:varchar(10)" json:"gender" valid:"in(Male|Female)~Invalid gender"`
	Dob           string `gorm:"type:varchar(10)" json:"dob"`
	Age           string `gorm:"type:varchar(3)" json:"age"`
	Occupation    string `gorm:"type:varchar(100)" json:"occupation"`
	LocalLanguage string `gorm:"type:varchar(50)" json:"localLanguage"`
	HajjBefore    string `gorm:"type:varchar(3)" json:"hajjBefore" valid:"in(Yes|No)~Invalid prior-Hajj flag"`
	HajjYear      string `gorm:"type:varchar(50)" json:"hajjYear"`

	PassportNumber     string `gorm:"type:varchar(30)" json:"passportNumber"`
	PassportIssuePlace string `gorm:"type:varchar(100)" json:"passportIssuePlace"`
	PassportIssueDate  string `gorm:"type:varchar(10)" json:"passportIssueDate"`
	PassportExpiryDate string `gorm:"type:varchar(10)" json:"passportExpiryDate"`

	// District is the single radio selection from the form. It is never
	// stored directly: Submit merges it into Districts, which keeps the
	// one-element list shape of the documents already on disk.
	District  string         `gorm:"-" json:"district,omitempty"`
	Districts pq.StringArray `gorm:"type:text[]" json:"districts"`

	ResidentialAddress string `gorm:"type:varchar(255)" json:"residentialAddress"`
	OtherAddress       string `gorm:"type:varchar(255)" json:"otherAddress"`
	Email              string `gorm:"type:varchar(150)" json:"email" valid:"email~Invalid email format"`
	Phone              string `gorm:"type:varchar(30)" json:"phone"`

	KinRelationship string `gorm:"type:varchar(50)" json:"kinRelationship"`
	KinFirstName    string `gorm:"type:varchar(100)" json:"kinFirstName"`
	KinAddress      string `gorm:"type:varchar(255)" json:"kinAddress"`
	KinPhone        string `gorm:"type:varchar(30)" json:"kinPhone"`
	KinEmail        string `gorm:"type:varchar(150)" json:"kinEmail" valid:"email~Invalid email format"`

	DietNeeds        string `gorm:"type:varchar(3)" json:"dietNeeds" valid:"in(Yes|No)~Invalid diet flag"`
	DietDetails      string `gorm:"type:varchar(255)" json:"dietDetails"`
	MedicalCondition string `gorm:"type:varchar(3)" json:"medicalCondition" valid:"in(Yes|No)~Invalid medical flag"`
	MedicalDetails   string `gorm:"type:varchar(255)" json:"medicalDetails"`
	CovidVaccine     string `gorm:"type:varchar(3)" json:"covidVaccine" valid:"in(Yes|No)~Invalid vaccine flag"`
	CovidVaccineName string `gorm:"type:varchar(100)" json:"covidVaccineName"`
	VaccineDate      string `gorm:"type:varchar(10)" json:"vaccineDate"`
	Convicted        string `gorm:"type:varchar(3)" json:"convicted" valid:"in(Yes|No)~Invalid conviction flag"`
	Deported         string `gorm:"type:varchar(3)" json:"deported" valid:"in(Yes|No)~Invalid deportation flag"`

	PilgrimPhoto  string `gorm:"type:text" json:"pilgrimPhoto"`
	PassportPhoto string `gorm:"type:text" json:"passportPhoto"`

	SubmittedAt string         `gorm:"type:varchar(40)" json:"submittedAt"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (ApplicantRecord) TableName() string {
	return "applicants"
}

// Districts is the fixed administrative list offered by the form.
var SierraLeoneDistricts = []string{
	"Bo", "Bonthe", "Falaba", "Kailahun", "Kambia", "Kenema", "Kono", "Moyamba",
	"Portloko", "Pujehun", "Tonkolili", "W. Urban", "W. Rural", "Koinadugu",
}

func IsValidDistrict(name string) bool {
	for _, d := range SierraLeoneDistricts {
		if d == name {
			return true
		}
	}
	return false
}

// NewDraft returns a record seeded with the form's defaults: every yes/no
// flag at "No" except the residency question, everything else empty.
func NewDraft() *ApplicantRecord {
	return &ApplicantRecord{
		ResidingInSL:     "Yes",
		HajjBefore:       "No",
		DietNeeds:        "No",
		MedicalCondition: "No",
		CovidVaccine:     "No",
		Convicted:        "No",
		Deported:         "No",
		Districts:        pq.StringArray{},
	}
}

type ApplicantRepo interface {
	CreateApplicant(ctx context.Context, rec *ApplicantRecord) error
	GetAllApplicants(ctx context.Context) (*[]ApplicantRecord, error)
	GetApplicantByID(ctx context.Context, id int) (*ApplicantRecord, error)
	UpdateApplicant(ctx context.Context, id int, rec *ApplicantRecord) error
	DeleteApplicant(ctx context.Context, id int) error
	GetApplicantsByYear(ctx context.Context, year string) (*[]ApplicantRecord, error)
}

type ApplicantUseCase interface {
	SubmitApplicant(ctx context.Context, rec *ApplicantRecord) error
	GetAllApplicants(ctx context.Context) (*[]ApplicantRecord, error)
	GetApplicantDetail(ctx context.Context, id int) (*ApplicantRecord, error)
	DeleteApplicant(ctx context.Context, id int, secret string, confirmed bool) error
}
