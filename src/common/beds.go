package common

import (
	"errors"
	"hms/src/db"
	"hms/src/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBedOccupied is returned when the destination bed already holds a
// different patient.
var ErrBedOccupied = errors.New("destination bed is occupied")

// TransferPatient moves a patient onto a bed as one atomic unit: vacate
// the source bed when given, occupy the destination, record the transfer.
// A failure at any step rolls back every write.
func TransferPatient(input *models.BedTransfer) (*models.BedTransfer, error) {
	gdb := db.GetDb()

	var patient models.Patient
	if err := gdb.
		Model(&models.Patient{}).
		Where(&models.Patient{ID: input.PatientID}).
		First(&patient).
		Error; err != nil {
		return nil, &FieldError{Field: "patient_id", Message: "Invalid patient_id"}
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		var toBed models.Bed
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ToBedID).
			First(&toBed).
			Error
		if err != nil {
			return &FieldError{Field: "to_bed_id", Message: "Invalid to_bed_id"}
		}
		if toBed.IsOccupied && (toBed.CurrentPatientID == nil || *toBed.CurrentPatientID != input.PatientID) {
			return ErrBedOccupied
		}

		if input.FromBedID != nil {
			var fromBed models.Bed
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", *input.FromBedID).
				First(&fromBed).
				Error
			if err != nil {
				return &FieldError{Field: "from_bed_id", Message: "Invalid from_bed_id"}
			}
			err = tx.
				Model(&models.Bed{}).
				Where("id = ?", fromBed.ID).
				Updates(map[string]any{"is_occupied": false, "current_patient_id": nil}).
				Error
			if err != nil {
				return err
			}
		}

		err = tx.
			Model(&models.Bed{}).
			Where("id = ?", toBed.ID).
			Updates(map[string]any{"is_occupied": true, "current_patient_id": input.PatientID}).
			Error
		if err != nil {
			return err
		}

		input.TransferredAt = time.Now()
		if err := tx.Create(input).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}
