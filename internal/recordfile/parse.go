package recordfile

import (
	"regexp"
	"strings"
	"time"
)

// ParsedFile is the structured result of scanning a record file. The same
// parse feeds both the import preview and the import commit path.
type ParsedFile struct {
	Header        Header
	Consultations []ParsedConsultation
}

// Header holds the patient fields recovered from the
// "INFORMACIÓN DEL PACIENTE" section.
type Header struct {
	Name           string
	Email          string
	BloodType      string
	EmergencyPhone string
	Allergies      string
	Medications    string
}

// ParsedConsultation is one consultation recovered from the consultation
// history section. Only entries with a date and a non-blank summary are ever
// emitted; partial records are dropped silently.
type ParsedConsultation struct {
	Date        time.Time
	Summary     string
	DoctorName  string
	DoctorEmail string
}

// Preview is the advisory summary shown before committing an import.
type Preview struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	BloodType     string `json:"bloodType,omitempty"`
	Consultations int    `json:"consultations"`
}

var (
	longSeparator = regexp.MustCompile(`^={50,}$`)
	dashLine      = regexp.MustCompile(`^-+$`)
	doctorLine    = regexp.MustCompile(`^(.+?)\s*\((.+?)\)$`)
)

// Parse scans a candidate record file. It is best-effort: no format
// validation is performed, unknown lines are ignored, and a consultation
// whose date line cannot be parsed is stamped with now, matching the original
// importer. An absent patient section simply yields an empty header.
func Parse(content string, now time.Time) *ParsedFile {
	lines := strings.Split(content, "\n")
	return &ParsedFile{
		Header:        parseHeader(lines),
		Consultations: parseConsultations(lines, now),
	}
}

// ParsePreview extracts the few header fields and the consultation count used
// for the pre-import preview. The count is the number of "CONSULTA #"
// occurrences in the whole text, not the number of importable consultations,
// and it is only taken when the history section marker is present at all.
func ParsePreview(content string) *Preview {
	h := parseHeader(strings.Split(content, "\n"))
	p := &Preview{
		Name:      h.Name,
		Email:     h.Email,
		BloodType: h.BloodType,
	}
	if strings.Contains(content, consultationSectionMarker) {
		p.Consultations = strings.Count(content, consultationPrefix)
	}
	return p
}

type headerBlock int

const (
	blockNone headerBlock = iota
	blockAllergies
	blockMedications
)

func parseHeader(lines []string) Header {
	var h Header
	var allergies, medications []string

	inSection := false
	block := blockNone

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, patientSectionMarker) {
			inSection = true
			continue
		}
		if strings.Contains(line, consultationSectionMarker) {
			break
		}
		if !inSection {
			continue
		}

		switch {
		case dashLine.MatchString(line):
			// section banner
		case strings.HasPrefix(line, allergiesMarker):
			block = blockAllergies
		case strings.HasPrefix(line, medicationsMarker):
			block = blockMedications
		case strings.HasPrefix(line, namePrefix):
			h.Name = strings.TrimSpace(strings.TrimPrefix(line, namePrefix))
			block = blockNone
		case strings.HasPrefix(line, emailPrefix):
			h.Email = strings.TrimSpace(strings.TrimPrefix(line, emailPrefix))
			block = blockNone
		case strings.HasPrefix(line, bloodTypePrefix):
			h.BloodType = strings.TrimSpace(strings.TrimPrefix(line, bloodTypePrefix))
			block = blockNone
		case strings.HasPrefix(line, emergencyPhonePrefix):
			h.EmergencyPhone = strings.TrimSpace(strings.TrimPrefix(line, emergencyPhonePrefix))
			block = blockNone
		case block == blockAllergies:
			allergies = append(allergies, line)
		case block == blockMedications:
			medications = append(medications, line)
		}
	}

	h.Allergies = strings.TrimSpace(strings.Join(allergies, "\n"))
	h.Medications = strings.TrimSpace(strings.Join(medications, "\n"))
	return h
}

func parseConsultations(lines []string, now time.Time) []ParsedConsultation {
	var out []ParsedConsultation
	var cur *ParsedConsultation

	inSection := false
	inSummary := false

	complete := func() bool {
		return cur != nil && !cur.Date.IsZero() && strings.TrimSpace(cur.Summary) != ""
	}
	flush := func() {
		if complete() {
			out = append(out, *cur)
		}
		cur = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, consultationSectionMarker) {
			inSection = true
			inSummary = false
			continue
		}
		// Top-level RESUMEN section ends the scan. A summary body containing
		// the literal word also triggers this; see the package doc.
		if strings.Contains(line, summarySectionMarker) {
			flush()
			break
		}
		if !inSection {
			continue
		}

		isSeparator := longSeparator.MatchString(line)

		switch {
		case strings.HasPrefix(line, consultationPrefix):
			flush()
			cur = &ParsedConsultation{}
			inSummary = false

		case strings.HasPrefix(line, datePrefix) && cur != nil:
			value := strings.TrimSpace(strings.TrimPrefix(line, datePrefix))
			if t, ok := ParseDate(value); ok {
				cur.Date = t
			} else {
				cur.Date = now
			}
			inSummary = false

		case strings.HasPrefix(line, doctorPrefix) && cur != nil:
			info := strings.TrimSpace(strings.TrimPrefix(line, doctorPrefix))
			if m := doctorLine.FindStringSubmatch(info); m != nil {
				cur.DoctorName = strings.TrimSpace(m[1])
				cur.DoctorEmail = strings.TrimSpace(m[2])
			} else {
				cur.DoctorName = info
			}
			inSummary = false

		case strings.HasPrefix(line, summaryPrefix) && cur != nil:
			inSummary = true

		case strings.HasPrefix(line, planPrefix) && cur != nil:
			inSummary = false

		case isSeparator && cur != nil:
			// A closing banner only finishes a consultation that already has
			// a date and a non-blank summary; an incomplete one stays open.
			if complete() {
				out = append(out, *cur)
				cur = nil
			}
			inSummary = false

		case cur != nil && !dashLine.MatchString(line):
			// Blank lines inside a summary are kept verbatim; clinical notes
			// may contain them.
			if inSummary {
				if cur.Summary == "" {
					cur.Summary = line
				} else {
					cur.Summary += "\n" + line
				}
			}
		}
	}

	flush()
	return out
}
