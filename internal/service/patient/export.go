package patient

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/recordfile"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
)

// ExportResult carries a rendered record file and its attachment name.
type ExportResult struct {
	Content  string
	Filename string
}

// ExportRecord loads the patient's full history and renders it as a record
// file. The snapshot is read-only; nothing is mutated.
func (s *Service) ExportRecord(ctx context.Context, doctorID, id uuid.UUID) (*ExportResult, error) {
	patient, err := s.repo.Get(ctx, doctorID, id)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	consultations, err := s.consultationRepo.ListByPatientAsc(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	rec := &recordfile.ExportRecord{
		DoctorName:  doctor.Name,
		DoctorEmail: doctor.Email,
		Patient: recordfile.PatientInfo{
			Name:           patient.Name,
			Email:          patient.Email,
			BloodType:      patient.BloodType,
			Allergies:      patient.Allergies,
			Medications:    patient.Medications,
			EmergencyPhone: patient.EmergencyPhone,
		},
	}

	for _, c := range consultations {
		info := recordfile.ConsultationInfo{
			Date:    c.Date,
			Summary: c.Summary,
		}

		plan, err := s.loadPlan(ctx, c.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		info.Plan = plan

		rec.Consultations = append(rec.Consultations, info)
	}

	now := time.Now()
	return &ExportResult{
		Content:  recordfile.Render(rec, now),
		Filename: recordfile.Filename(patient.Name, now),
	}, nil
}

// loadPlan assembles a consultation's follow-up plan with its ordered
// check-ins and their alerts. A missing plan is not an error; any other
// lookup failure is, so a record never exports silently incomplete.
func (s *Service) loadPlan(ctx context.Context, consultationID uuid.UUID) (*recordfile.PlanInfo, error) {
	plan, err := s.followUpRepo.GetPlanByConsultation(ctx, consultationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	info := &recordfile.PlanInfo{Active: plan.Active}

	checkIns, err := s.followUpRepo.ListCheckIns(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	for _, ci := range checkIns {
		ciInfo := recordfile.CheckInInfo{
			CreatedAt:    ci.CreatedAt,
			SymptomScore: ci.SymptomScore,
			Notes:        ci.Notes,
		}
		alert, err := s.followUpRepo.GetAlertByCheckIn(ctx, ci.ID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
		} else if alert != nil {
			ciInfo.Alert = &recordfile.AlertInfo{Resolved: alert.Resolved}
		}
		info.CheckIns = append(info.CheckIns, ciInfo)
	}

	return info, nil
}

// PreviewImport reports the header fields and consultation count of a
// candidate file without touching the datastore.
func (s *Service) PreviewImport(fileContent string) *recordfile.Preview {
	return recordfile.ParsePreview(fileContent)
}

// ImportRecord creates a new patient from a record file plus a pre-extracted
// consultation list. The patient header is re-derived from the raw text; the
// consultation list is trusted as given. Consultations are inserted one by
// one without a wrapping transaction: a row that fails to parse or persist is
// logged and skipped, so a partial import is an accepted outcome. The new
// patient's ID is returned even when no consultation could be imported.
func (s *Service) ImportRecord(ctx context.Context, doctorID uuid.UUID, fileContent string, consultations []model.ImportConsultation) (uuid.UUID, error) {
	parsed := recordfile.Parse(fileContent, time.Now())

	if parsed.Header.Name == "" {
		return uuid.Nil, apperrors.BadRequest("could not extract a patient name from the file", nil)
	}

	patient := &model.Patient{
		Base:           model.Base{ID: uuid.New()},
		DoctorID:       doctorID,
		Name:           parsed.Header.Name,
		Email:          parsed.Header.Email,
		BloodType:      parsed.Header.BloodType,
		Allergies:      parsed.Header.Allergies,
		Medications:    parsed.Header.Medications,
		EmergencyPhone: parsed.Header.EmergencyPhone,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return uuid.Nil, apperrors.Internal(err)
	}

	imported := 0
	for i, c := range consultations {
		date, ok := recordfile.ParseDate(c.Date)
		if !ok || strings.TrimSpace(c.Summary) == "" {
			s.logger.Warn("skipping consultation with missing date or summary",
				"index", i, "patient_id", patient.ID.String())
			continue
		}

		authorID := doctorID
		if c.DoctorEmail != "" {
			if author, err := s.doctorRepo.GetByEmail(ctx, c.DoctorEmail); err == nil && author != nil {
				authorID = author.ID
			}
		}

		consultation := &model.Consultation{
			Base:      model.Base{ID: uuid.New()},
			PatientID: patient.ID,
			DoctorID:  authorID,
			Date:      date,
			Summary:   c.Summary,
		}

		if err := s.consultationRepo.Create(ctx, consultation); err != nil {
			s.logger.Error(err, "failed to import consultation",
				"index", i, "patient_id", patient.ID.String())
			continue
		}
		imported++
	}

	s.logger.Info("patient record imported",
		"patient_id", patient.ID.String(),
		"consultations_imported", imported,
		"consultations_submitted", len(consultations))

	return patient.ID, nil
}
