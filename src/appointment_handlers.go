package main

import (
	"errors"
	"hms/src/common"
	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func appointmentStatusAction(target types.AppointmentStatus, notify bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var appointment models.Appointment
		if err := db.
			Model(&models.Appointment{}).
			Where(&models.Appointment{ID: params.ID}).
			Preload("Patient").
			First(&appointment).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		role := types.Role(ctx.GetString("role"))
		if !common.IsAppointmentActor(role, ctx.GetBool("superuser"), ctx.GetUint("id"), appointment.DoctorID) {
			ctx.JSON(http.StatusForbidden, gin.H{"detail": "Insufficient role permissions"})
			return
		}
		if !common.CanTransition(appointment.Status, target) {
			ctx.JSON(http.StatusConflict, gin.H{"detail": "Cannot transition appointment from " + string(appointment.Status) + " to " + string(target)})
			return
		}
		if err := db.
			Model(&models.Appointment{}).
			Where("id = ?", appointment.ID).
			Update("status", target).
			Error; err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		appointment.Status = target
		if notify && appointment.Patient != nil {
			patient := *appointment.Patient
			record := appointment
			go common.NotifyAppointmentDecision(&record, &patient, string(target))
		}
		ctx.JSON(http.StatusOK, gin.H{"data": appointment})
	}
}

func appointmentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateAppointment := func(ctx *gin.Context) {
		if types.Role(ctx.GetString("role")) == types.ROLE_DOCTOR {
			ctx.JSON(http.StatusForbidden, gin.H{"detail": "Doctors cannot edit appointment payload directly"})
			return
		}
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateAppointmentRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var appointment models.Appointment
		if err := db.
			Model(&models.Appointment{}).
			Where(&models.Appointment{ID: params.ID}).
			First(&appointment).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{}
		if body.PatientID != nil {
			var patient models.Patient
			if err := db.
				Model(&models.Patient{}).
				Where(&models.Patient{ID: *body.PatientID}).
				First(&patient).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"patient_id": "Invalid patient_id"})
				return
			}
			updates["patient_id"] = *body.PatientID
		}
		if body.AppointmentDate != nil {
			updates["appointment_date"] = *body.AppointmentDate
			updates["appointment_day"] = common.DayOf(*body.AppointmentDate)
		}
		if body.Reason != nil {
			updates["reason"] = *body.Reason
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.Appointment{}).
				Where("id = ?", appointment.ID).
				Updates(updates).
				Error; err != nil {
				if common.IsUniqueViolation(err) {
					ctx.JSON(http.StatusConflict, gin.H{"detail": "Token number already taken for the doctor on that day"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.Appointment{}).Where("id = ?", appointment.ID).First(&appointment)
		ctx.JSON(http.StatusOK, gin.H{"data": appointment})
	}

	g.
		GET("/appointments", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.Appointment{}).
				Preload("Patient").
				Preload("Doctor").
				Order("appointment_date")
			if types.Role(ctx.GetString("role")) == types.ROLE_DOCTOR {
				query = query.Where("doctor_id = ?", ctx.GetUint("id"))
			}
			var appointments []models.Appointment
			if err := query.Find(&appointments).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": appointments, "count": len(appointments)})
		}).
		GET("/appointments/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			query := db.
				Model(&models.Appointment{}).
				Where(&models.Appointment{ID: params.ID}).
				Preload("Patient").
				Preload("Doctor")
			if types.Role(ctx.GetString("role")) == types.ROLE_DOCTOR {
				query = query.Where("doctor_id = ?", ctx.GetUint("id"))
			}
			var appointment models.Appointment
			if err := query.First(&appointment).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": appointment})
		}).
		POST("/appointments", common.RequireWrite(common.ResourceAppointments), func(ctx *gin.Context) {
			var body types.CreateAppointmentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			appointment, patient, err := common.CreateAppointment(&common.CreateAppointmentInput{
				PatientID:       body.PatientID,
				DoctorUserID:    body.DoctorUserID,
				AppointmentDate: body.AppointmentDate,
				Reason:          body.Reason,
				CallerID:        ctx.GetUint("id"),
				CallerRole:      types.Role(ctx.GetString("role")),
			})
			if err != nil {
				var fieldErr *common.FieldError
				if errors.As(err, &fieldErr) {
					ctx.JSON(http.StatusBadRequest, gin.H{fieldErr.Field: fieldErr.Message})
					return
				}
				if errors.Is(err, common.ErrTokenConflict) {
					ctx.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go common.NotifyAppointmentBooked(appointment, patient)
			ctx.JSON(http.StatusCreated, gin.H{"data": appointment})
		}).
		PUT("/appointments/:id", common.RequireWrite(common.ResourceAppointments), updateAppointment).
		PATCH("/appointments/:id", common.RequireWrite(common.ResourceAppointments), updateAppointment).
		DELETE("/appointments/:id", common.RequireWrite(common.ResourceAppointments), func(ctx *gin.Context) {
			if types.Role(ctx.GetString("role")) == types.ROLE_DOCTOR {
				ctx.JSON(http.StatusForbidden, gin.H{"detail": "Doctors cannot delete appointments"})
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.Appointment{}, params.ID)
			if res.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/appointments/:id/approve", appointmentStatusAction(types.APPOINTMENT_APPROVED, true)).
		POST("/appointments/:id/reject", appointmentStatusAction(types.APPOINTMENT_REJECTED, true)).
		POST("/appointments/:id/cancel", appointmentStatusAction(types.APPOINTMENT_CANCELLED, false)).
		POST("/appointments/:id/complete", appointmentStatusAction(types.APPOINTMENT_COMPLETED, false)).
		GET("/appointments/:id/patient-detail", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var appointment models.Appointment
			if err := db.
				Model(&models.Appointment{}).
				Where(&models.Appointment{ID: params.ID}).
				Preload("Patient").
				First(&appointment).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			role := types.Role(ctx.GetString("role"))
			if !common.IsAppointmentActor(role, ctx.GetBool("superuser"), ctx.GetUint("id"), appointment.DoctorID) {
				ctx.JSON(http.StatusForbidden, gin.H{"detail": "Insufficient role permissions"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": appointment.Patient})
		})
	return g
}
