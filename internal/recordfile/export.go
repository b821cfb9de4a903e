// Package recordfile implements the plain-text medical record format used to
// export and import patient histories. The format is line-oriented with fixed
// Spanish section headers and banner separators; it is not a designed grammar.
// A consultation summary containing a line of 50 or more "=" characters, a
// line starting with "CONSULTA #", or a line starting with
// "Plan de seguimiento:" will be read back as structure, truncating or
// splitting the summary. That limitation is inherited from the format and is
// deliberately not worked around here, so previously exported files keep
// parsing the same way.
package recordfile

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Section markers and field prefixes of the record file format.
const (
	doctorSectionMarker       = "INFORMACIÓN DEL MÉDICO"
	patientSectionMarker      = "INFORMACIÓN DEL PACIENTE"
	consultationSectionMarker = "HISTORIAL DE CONSULTAS"
	summarySectionMarker      = "RESUMEN"
	consultationPrefix        = "CONSULTA #"
	namePrefix                = "Nombre:"
	emailPrefix               = "Email:"
	bloodTypePrefix           = "Tipo de sangre:"
	emergencyPhonePrefix      = "Teléfono de emergencia:"
	allergiesMarker           = "Alergias conocidas:"
	medicationsMarker         = "Medicamentos actuales:"
	datePrefix                = "Fecha:"
	summaryPrefix             = "Resumen:"
	doctorPrefix              = "Médico que atendió:"
	planPrefix                = "Plan de seguimiento:"
)

// ExportRecord is the fully loaded snapshot of a patient history handed to
// Render. Consultations must already be ordered ascending by date.
type ExportRecord struct {
	DoctorName    string
	DoctorEmail   string
	Patient       PatientInfo
	Consultations []ConsultationInfo
}

type PatientInfo struct {
	Name           string
	Email          string
	BloodType      string
	Allergies      string
	Medications    string
	EmergencyPhone string
}

type ConsultationInfo struct {
	Date    time.Time
	Summary string
	Plan    *PlanInfo
}

type PlanInfo struct {
	Active   bool
	CheckIns []CheckInInfo
}

type CheckInInfo struct {
	CreatedAt    time.Time
	SymptomScore int
	Notes        string
	Alert        *AlertInfo
}

type AlertInfo struct {
	Resolved bool
}

var filenameSpaces = regexp.MustCompile(`\s+`)

// Filename returns the attachment name for an exported record,
// archivo_medico_<name_with_underscores>_<ISO date>.txt.
func Filename(patientName string, now time.Time) string {
	name := filenameSpaces.ReplaceAllString(patientName, "_")
	return fmt.Sprintf("archivo_medico_%s_%s.txt", name, now.Format("2006-01-02"))
}

// Render produces the record file text for a patient snapshot. Output is
// deterministic for a given record and clock: rendering the same record twice
// differs only in the generation timestamp line.
func Render(rec *ExportRecord, now time.Time) string {
	var b strings.Builder

	b.WriteString("ARCHIVO MÉDICO - " + strings.ToUpper(rec.Patient.Name) + "\n")
	b.WriteString("Generado el: " + formatLongDate(now) + "\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	b.WriteString(doctorSectionMarker + "\n")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	b.WriteString(namePrefix + " " + rec.DoctorName + "\n")
	b.WriteString(emailPrefix + " " + rec.DoctorEmail + "\n\n")

	b.WriteString(patientSectionMarker + "\n")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	b.WriteString(namePrefix + " " + rec.Patient.Name + "\n")
	if rec.Patient.Email != "" {
		b.WriteString(emailPrefix + " " + rec.Patient.Email + "\n")
	}
	if rec.Patient.BloodType != "" {
		b.WriteString(bloodTypePrefix + " " + rec.Patient.BloodType + "\n")
	}
	if rec.Patient.EmergencyPhone != "" {
		b.WriteString(emergencyPhonePrefix + " " + rec.Patient.EmergencyPhone + "\n")
	}
	if rec.Patient.Allergies != "" {
		b.WriteString("\n" + allergiesMarker + "\n" + rec.Patient.Allergies + "\n")
	}
	if rec.Patient.Medications != "" {
		b.WriteString("\n" + medicationsMarker + "\n" + rec.Patient.Medications + "\n")
	}
	b.WriteString("\n")

	b.WriteString(consultationSectionMarker + "\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	if len(rec.Consultations) == 0 {
		b.WriteString("No hay consultas registradas.\n\n")
	} else {
		for i, c := range rec.Consultations {
			renderConsultation(&b, i+1, c)
		}
	}

	b.WriteString(summarySectionMarker + "\n")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	fmt.Fprintf(&b, "Total de consultas: %d\n", len(rec.Consultations))

	activePlans := 0
	for _, c := range rec.Consultations {
		if c.Plan != nil && c.Plan.Active {
			activePlans++
		}
	}
	if activePlans > 0 {
		fmt.Fprintf(&b, "Planes de seguimiento activos: %d\n", activePlans)
	}

	return b.String()
}

func renderConsultation(b *strings.Builder, n int, c ConsultationInfo) {
	fmt.Fprintf(b, "%s%d\n", consultationPrefix, n)
	b.WriteString(strings.Repeat("-", 80) + "\n")
	b.WriteString(datePrefix + " " + formatLongDate(c.Date) + "\n")
	b.WriteString("\n" + summaryPrefix + "\n" + c.Summary + "\n")

	if c.Plan != nil {
		status := "Inactivo"
		if c.Plan.Active {
			status = "Activo"
		}
		b.WriteString("\n" + planPrefix + " " + status + "\n")

		if len(c.Plan.CheckIns) > 0 {
			fmt.Fprintf(b, "\nCheck-ins (%d):\n", len(c.Plan.CheckIns))
			for i, ci := range c.Plan.CheckIns {
				fmt.Fprintf(b, "  %d. %s - Puntuación de síntomas: %d/10\n",
					i+1, formatShortDate(ci.CreatedAt), ci.SymptomScore)
				if ci.Notes != "" {
					b.WriteString("     Notas: " + ci.Notes + "\n")
				}
				if ci.Alert != nil {
					status := "Pendiente"
					if ci.Alert.Resolved {
						status = "Resuelta"
					}
					b.WriteString("     ⚠️ ALERTA: " + status + "\n")
				}
			}
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 80) + "\n\n")
}
