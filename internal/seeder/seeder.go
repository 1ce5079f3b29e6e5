// Package seeder populates the in-memory stores with the fixed startup
// dataset. The service holds no persistent state, so every process starts
// from this collection.
package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"clinica/internal/diagnosis"
	"clinica/internal/patient/models"
	"clinica/pkg/domain"
)

// PatientStore defines the methods needed for seeding patient records.
type PatientStore interface {
	Insert(ctx context.Context, p *models.Patient) error
}

// DiagnosisStore defines the methods needed for seeding the catalog.
type DiagnosisStore interface {
	Save(ctx context.Context, d diagnosis.Diagnosis) error
}

// Seeder loads the startup dataset into the stores.
type Seeder struct {
	patients  PatientStore
	diagnoses DiagnosisStore
	logger    *slog.Logger
}

// New creates a seeder.
func New(patients PatientStore, diagnoses DiagnosisStore, logger *slog.Logger) *Seeder {
	return &Seeder{
		patients:  patients,
		diagnoses: diagnoses,
		logger:    logger,
	}
}

// SeedAll loads patients and the diagnosis catalog.
func (s *Seeder) SeedAll(ctx context.Context) error {
	patients, err := s.seedPatients(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed patients: %w", err)
	}
	diagnoses, err := s.seedDiagnoses(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed diagnoses: %w", err)
	}

	s.logger.Info("startup dataset seeded",
		"patients", patients,
		"diagnoses", diagnoses,
	)
	return nil
}

// Seed records carry opaque UUID-style IDs, so the first store-generated
// patient ID is "1" (the numeric scan ignores non-numeric IDs).
func (s *Seeder) seedPatients(ctx context.Context) (int, error) {
	seed := []*models.Patient{
		{
			ID:          "d2773336-f723-11e9-8f0b-362b9e155667",
			Name:        "John McClane",
			DateOfBirth: "1986-07-09",
			SSN:         "090786-122X",
			Gender:      models.GenderMale,
			Occupation:  "New york city cop",
			Entries: models.Entries{
				&models.HospitalEntry{
					BaseEntry: models.BaseEntry{
						ID:          "d811e46d-70b3-4d90-b090-4535c7cf8fb1",
						Date:        "2015-01-02",
						Description: "Healing time appr. 2 weeks. patient doesn't remember how he got the injury.",
						Specialist:  "MD House",
						DiagnosisCodes: []domain.DiagnosisCode{
							"S62.3",
						},
					},
					Discharge: models.Discharge{
						Date:     "2015-01-16",
						Criteria: "Thumb has healed.",
					},
				},
			},
		},
		{
			ID:          "d2773598-f723-11e9-8f0b-362b9e155667",
			Name:        "Martin Riggs",
			DateOfBirth: "1979-01-30",
			SSN:         "300179-777A",
			Gender:      models.GenderMale,
			Occupation:  "Cop",
			Entries: models.Entries{
				&models.OccupationalHealthcareEntry{
					BaseEntry: models.BaseEntry{
						ID:          "fcd59fa6-c4b4-4fec-ac4d-df4fe1f85f62",
						Date:        "2019-08-05",
						Description: "Patient mistakenly found himself in a nuclear plant waste site without protection gear. Very minor radiation poisoning.",
						Specialist:  "MD House",
						DiagnosisCodes: []domain.DiagnosisCode{
							"Z57.1", "Z74.3", "M51.2",
						},
					},
					EmployerName: "HyPD",
					SickLeave: &models.SickLeave{
						StartDate: "2019-08-05",
						EndDate:   "2019-08-28",
					},
				},
			},
		},
		{
			ID:          "d2773c6e-f723-11e9-8f0b-362b9e155667",
			Name:        "Hans Gruber",
			DateOfBirth: "1970-04-25",
			SSN:         "250470-555L",
			Gender:      models.GenderOther,
			Occupation:  "Technician",
			Entries:     models.Entries{},
		},
		{
			ID:          "d2773e6e-f723-11e9-8f0b-362b9e155667",
			Name:        "Dana Scully",
			DateOfBirth: "1974-01-05",
			SSN:         "050174-432N",
			Gender:      models.GenderFemale,
			Occupation:  "Forensic Pathologist",
			Entries: models.Entries{
				&models.HealthCheckEntry{
					BaseEntry: models.BaseEntry{
						ID:          "b4f4eca1-2aa7-4b13-9a18-4a5535c3c8da",
						Date:        "2019-10-20",
						Description: "Yearly control visit. Cheers!",
						Specialist:  "MD House",
					},
					HealthCheckRating: models.RatingHealthy,
				},
			},
		},
		{
			ID:          "d27736ec-f723-11e9-8f0b-362b9e155667",
			Name:        "Matti Luukkainen",
			DateOfBirth: "1971-04-09",
			SSN:         "090471-8890",
			Gender:      models.GenderMale,
			Occupation:  "Digital evangelist",
			Entries: models.Entries{
				&models.HealthCheckEntry{
					BaseEntry: models.BaseEntry{
						ID:          "54a8746e-34c4-4cf4-bf72-bfecd039be9a",
						Date:        "2019-05-01",
						Description: "Digital overdose, very bytestatic. Otherwise healthy.",
						Specialist:  "MD House",
					},
					HealthCheckRating: models.RatingHealthy,
				},
			},
		},
	}

	for _, p := range seed {
		if err := s.patients.Insert(ctx, p); err != nil {
			return 0, err
		}
	}
	return len(seed), nil
}

func (s *Seeder) seedDiagnoses(ctx context.Context) (int, error) {
	latin := func(v string) *string { return &v }

	seed := []diagnosis.Diagnosis{
		{Code: "M24.2", Name: "Disorder of ligament", Latin: latin("Morbositas ligamenti")},
		{Code: "M51.2", Name: "Other specified intervertebral disc displacement", Latin: latin("Alia dislocatio disci intervertebralis specificata")},
		{Code: "S03.5", Name: "Sprain and strain of joints and ligaments of other and unspecified parts of head", Latin: latin("Distorsio et/sive distensio articulationum et/sive ligamentorum partium aliarum sive non specificatarum capitis")},
		{Code: "J10.1", Name: "Influenza with other respiratory manifestations, other influenza virus identified", Latin: latin("Influenza cum aliis manifestationibus respiratoriis ab agente virali identificato")},
		{Code: "J06.9", Name: "Acute upper respiratory infection, unspecified", Latin: latin("Infectio acuta respiratoria superior non specificata")},
		{Code: "Z57.1", Name: "Occupational exposure to radiation"},
		{Code: "N30.0", Name: "Acute cystitis", Latin: latin("Cystitis acuta")},
		{Code: "H54.7", Name: "Unspecified visual loss", Latin: latin("Amblyopia NAS")},
		{Code: "J03.0", Name: "Streptococcal tonsillitis", Latin: latin("Tonsillitis (palatina) streptococcica")},
		{Code: "L60.1", Name: "Onycholysis", Latin: latin("Onycholysis")},
		{Code: "Z74.3", Name: "Need for continuous supervision"},
		{Code: "L20", Name: "Atopic dermatitis", Latin: latin("Atopia")},
		{Code: "F43.2", Name: "Adjustment disorders", Latin: latin("Perturbationes adaptationis")},
		{Code: "S62.3", Name: "Fracture of other metacarpal bone", Latin: latin("Fractura ossis metacarpalis alterius")},
		{Code: "H35.29", Name: "Other proliferative retinopathy", Latin: latin("Alia retinopathia proliferativa")},
	}

	for _, d := range seed {
		if err := s.diagnoses.Save(ctx, d); err != nil {
			return 0, err
		}
	}
	return len(seed), nil
}
