package main

import (
	"hms/src/common"
	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func patientHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updatePatient := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdatePatientRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var patient models.Patient
		if err := db.
			Model(&models.Patient{}).
			Where(&models.Patient{ID: params.ID}).
			First(&patient).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{}
		if body.FirstName != nil {
			updates["first_name"] = *body.FirstName
		}
		if body.LastName != nil {
			updates["last_name"] = *body.LastName
		}
		if body.Dob != nil {
			dob, err := time.Parse("2006-01-02", *body.Dob)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"dob": "Invalid date"})
				return
			}
			updates["dob"] = dob
		}
		if body.Gender != nil {
			updates["gender"] = *body.Gender
		}
		if body.Phone != nil {
			updates["phone"] = *body.Phone
		}
		if body.Email != nil {
			updates["email"] = *body.Email
		}
		if body.Address != nil {
			updates["address"] = *body.Address
		}
		if body.BloodGroup != nil {
			updates["blood_group"] = *body.BloodGroup
		}
		if body.EmergencyContact != nil {
			updates["emergency_contact"] = *body.EmergencyContact
		}
		if body.MedicalHistory != nil {
			updates["medical_history"] = *body.MedicalHistory
		}
		if body.DischargeSummary != nil {
			updates["discharge_summary"] = *body.DischargeSummary
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.Patient{}).
				Where("id = ?", patient.ID).
				Updates(updates).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.Patient{}).Where("id = ?", patient.ID).First(&patient)
		ctx.JSON(http.StatusOK, gin.H{"data": patient})
	}

	g.
		GET("/patients", func(ctx *gin.Context) {
			db := db.GetDb()
			var patients []models.Patient
			if err := db.
				Model(&models.Patient{}).
				Order("id").
				Find(&patients).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": patients, "count": len(patients)})
		}).
		GET("/patients/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var patient models.Patient
			if err := db.
				Model(&models.Patient{}).
				Where(&models.Patient{ID: params.ID}).
				First(&patient).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": patient})
		}).
		POST("/patients", common.RequireWrite(common.ResourcePatients), func(ctx *gin.Context) {
			var body types.CreatePatientRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dob, err := time.Parse("2006-01-02", body.Dob)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"dob": "Invalid date"})
				return
			}
			createdBy := ctx.GetUint("id")
			patient := models.Patient{
				FirstName:        body.FirstName,
				LastName:         body.LastName,
				Dob:              dob,
				Gender:           body.Gender,
				Phone:            body.Phone,
				Email:            body.Email,
				Address:          body.Address,
				BloodGroup:       body.BloodGroup,
				EmergencyContact: body.EmergencyContact,
				MedicalHistory:   body.MedicalHistory,
				DischargeSummary: body.DischargeSummary,
				CreatedByID:      &createdBy,
			}
			db := db.GetDb()
			if err := db.Create(&patient).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": patient})
		}).
		PUT("/patients/:id", common.RequireWrite(common.ResourcePatients), updatePatient).
		PATCH("/patients/:id", common.RequireWrite(common.ResourcePatients), updatePatient).
		DELETE("/patients/:id", common.RequireWrite(common.ResourcePatients), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.Patient{}, params.ID)
			if res.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
