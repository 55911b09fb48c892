package common

import (
	"fmt"
	"hms/src/lib"
	"hms/src/models"
	"log"
)

// Notification dispatch is fire-and-forget: it runs after the owning
// transaction commits and never propagates failures to the caller.

func NotifyAppointmentBooked(appointment *models.Appointment, patient *models.Patient) {
	if patient.Email != "" {
		err := lib.SendMail(&lib.SendMailInput{
			To:      []string{patient.Email},
			Subject: "Hospital Appointment Booked",
			Body:    fmt.Sprintf("Your token number is %d for %s.", appointment.TokenNumber, appointment.AppointmentDate),
		})
		if err != nil {
			log.Printf("Could not send booking email for appointment [%d]: %s\n", appointment.ID, err.Error())
		}
	}
	if patient.Phone != "" {
		if err := lib.SendSMS(patient.Phone, fmt.Sprintf("Appointment booked. Token: %d", appointment.TokenNumber)); err != nil {
			log.Printf("Could not send booking SMS for appointment [%d]: %s\n", appointment.ID, err.Error())
		}
	}
}

func NotifyAppointmentDecision(appointment *models.Appointment, patient *models.Patient, decision string) {
	if patient.Email != "" {
		err := lib.SendMail(&lib.SendMailInput{
			To:      []string{patient.Email},
			Subject: fmt.Sprintf("Appointment %s", decision),
			Body:    fmt.Sprintf("Your appointment #%d has been %s.", appointment.ID, decision),
		})
		if err != nil {
			log.Printf("Could not send %s email for appointment [%d]: %s\n", decision, appointment.ID, err.Error())
		}
	}
	if patient.Phone != "" {
		if err := lib.SendSMS(patient.Phone, fmt.Sprintf("Appointment #%d %s.", appointment.ID, decision)); err != nil {
			log.Printf("Could not send %s SMS for appointment [%d]: %s\n", decision, appointment.ID, err.Error())
		}
	}
}
