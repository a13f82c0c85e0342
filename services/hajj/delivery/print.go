package delivery

import (
	"bytes"
	"encoding/base64"
	"html/template"

	"hajjapply/domain"

	qrcode "github.com/skip2/go-qrcode"
)

// printTemplate is the A4 summary handed to the browser's print dialog.
// Values render through html/template, so record content is escaped; the two
// embedded images are data URLs built server-side.
var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Hajj Application {{.Record.Slh6}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 24px; color: #111; }
  .header { text-align: center; border-bottom: 3px solid #0066cc; padding-bottom: 8px; }
  .header h1 { margin: 0; font-size: 20px; }
  .header p { margin: 2px 0; font-size: 12px; }
  .photo { float: right; width: 120px; height: 140px; object-fit: cover; border: 1px solid #999; }
  .qr { float: left; width: 90px; height: 90px; }
  section { margin-top: 16px; }
  h2 { font-size: 14px; background: #0066cc; color: #fff; padding: 4px 8px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  td { padding: 3px 8px; vertical-align: top; }
  td.label { width: 30%; color: #555; }
  .signatures { margin-top: 40px; display: flex; justify-content: space-between; }
  .signatures div { width: 40%; border-top: 1px solid #111; padding-top: 4px; font-size: 12px; text-align: center; }
  @media print { body { margin: 10mm; } }
</style>
</head>
<body>
<div class="header">
  {{if .QRDataURL}}<img class="qr" src="{{.QRDataURL}}" alt="SLHS code">{{end}}
  {{if .PhotoURL}}<img class="photo" src="{{.PhotoURL}}" alt="pilgrim photo">{{end}}
  <h1>Presidential Hajj Taskforce, Sierra Leone</h1>
  <p>Hajj Application Form {{.Record.ApplicationYear}}</p>
  <p>SLHS Code: {{.Record.Slh6}}</p>
</div>

<section>
<h2>Personal Details</h2>
<table>
  <tr><td class="label">Full Name</td><td>{{.Record.FirstName}} {{.Record.MiddleName}} {{.Record.LastName}}</td></tr>
  <tr><td class="label">Gender</td><td>{{.Record.Gender}}</td></tr>
  <tr><td class="label">Marital Status</td><td>{{.Record.MaritalStatus}}</td></tr>
  <tr><td class="label">Date of Birth</td><td>{{.Record.Dob}} (Age {{.Record.Age}})</td></tr>
  <tr><td class="label">Occupation</td><td>{{.Record.Occupation}}</td></tr>
  <tr><td class="label">Local Language</td><td>{{.Record.LocalLanguage}}</td></tr>
  <tr><td class="label">Performed Hajj Before</td><td>{{.Record.HajjBefore}}{{if .Record.HajjYear}} ({{.Record.HajjYear}}){{end}}</td></tr>
</table>
</section>

<section>
<h2>Residency</h2>
<table>
  <tr><td class="label">Residing in Sierra Leone</td><td>{{.Record.ResidingInSL}}</td></tr>
  {{if eq .Record.ResidingInSL "No"}}
  <tr><td class="label">Country of Residence</td><td>{{.Record.ResidenceCountry}}</td></tr>
  <tr><td class="label">Agency</td><td>{{.Record.ResidenceAgency}}</td></tr>
  <tr><td class="label">State</td><td>{{.Record.ResidenceState}}</td></tr>
  {{end}}
  <tr><td class="label">District</td><td>{{range .Record.Districts}}{{.}} {{end}}</td></tr>
  <tr><td class="label">Residential Address</td><td>{{.Record.ResidentialAddress}}</td></tr>
  <tr><td class="label">Other Address</td><td>{{.Record.OtherAddress}}</td></tr>
  <tr><td class="label">Email</td><td>{{.Record.Email}}</td></tr>
  <tr><td class="label">Phone</td><td>{{.Record.Phone}}</td></tr>
</table>
</section>

<section>
<h2>Passport</h2>
<table>
  <tr><td class="label">Passport Number</td><td>{{.Record.PassportNumber}}</td></tr>
  <tr><td class="label">Place of Issue</td><td>{{.Record.PassportIssuePlace}}</td></tr>
  <tr><td class="label">Date of Issue</td><td>{{.Record.PassportIssueDate}}</td></tr>
  <tr><td class="label">Date of Expiry</td><td>{{.Record.PassportExpiryDate}}</td></tr>
</table>
</section>

<section>
<h2>Next of Kin</h2>
<table>
  <tr><td class="label">Name</td><td>{{.Record.KinFirstName}}</td></tr>
  <tr><td class="label">Relationship</td><td>{{.Record.KinRelationship}}</td></tr>
  <tr><td class="label">Address</td><td>{{.Record.KinAddress}}</td></tr>
  <tr><td class="label">Phone</td><td>{{.Record.KinPhone}}</td></tr>
  <tr><td class="label">Email</td><td>{{.Record.KinEmail}}</td></tr>
</table>
</section>

<section>
<h2>Health and Declarations</h2>
<table>
  <tr><td class="label">Special Dietary Needs</td><td>{{.Record.DietNeeds}}{{if .Record.DietDetails}}: {{.Record.DietDetails}}{{end}}</td></tr>
  <tr><td class="label">Medical Condition</td><td>{{.Record.MedicalCondition}}{{if .Record.MedicalDetails}}: {{.Record.MedicalDetails}}{{end}}</td></tr>
  <tr><td class="label">COVID-19 Vaccinated</td><td>{{.Record.CovidVaccine}}{{if .Record.CovidVaccineName}} ({{.Record.CovidVaccineName}}, {{.Record.VaccineDate}}){{end}}</td></tr>
  <tr><td class="label">Ever Convicted</td><td>{{.Record.Convicted}}</td></tr>
  <tr><td class="label">Ever Deported</td><td>{{.Record.Deported}}</td></tr>
</table>
</section>

<div class="signatures">
  <div>Applicant Signature</div>
  <div>Taskforce Officer</div>
</div>

<p style="font-size:10px;color:#777;margin-top:24px;">Submitted: {{.Record.SubmittedAt}}</p>
</body>
</html>
`))

// Embedded photos are data URLs, which the template engine strips from src
// attributes unless passed as pre-approved URL values.
type printViewData struct {
	Record    *domain.ApplicantRecord
	PhotoURL  template.URL
	QRDataURL template.URL
}

// RenderPrintView builds the read-only summary page for one record. The
// record's SLHS code is also rendered as a QR image so the desk can scan a
// printed form back to its record.
func RenderPrintView(record *domain.ApplicantRecord) (string, error) {
	data := printViewData{
		Record:   record,
		PhotoURL: template.URL(record.PilgrimPhoto),
	}

	if record.Slh6 != "" {
		qrPNG, err := qrcode.Encode(record.Slh6, qrcode.Medium, 180)
		if err != nil {
			return "", err
		}
		data.QRDataURL = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG))
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
