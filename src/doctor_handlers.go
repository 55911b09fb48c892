package main

import (
	"hms/src/common"
	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func doctorHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateDoctor := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateDoctorRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var doctor models.Doctor
		if err := db.
			Model(&models.Doctor{}).
			Where(&models.Doctor{ID: params.ID}).
			First(&doctor).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{}
		if body.Specialization != nil {
			updates["specialization"] = *body.Specialization
		}
		if body.Qualification != nil {
			updates["qualification"] = *body.Qualification
		}
		if body.Phone != nil {
			updates["phone"] = *body.Phone
		}
		if body.Bio != nil {
			updates["bio"] = *body.Bio
		}
		if body.IsActive != nil {
			updates["is_active"] = *body.IsActive
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.Doctor{}).
				Where("id = ?", doctor.ID).
				Updates(updates).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.Doctor{}).Where("id = ?", doctor.ID).Preload("User").First(&doctor)
		ctx.JSON(http.StatusOK, gin.H{"data": doctor})
	}

	g.
		GET("/doctors", func(ctx *gin.Context) {
			db := db.GetDb()
			var doctors []models.Doctor
			if err := db.
				Model(&models.Doctor{}).
				Preload("User").
				Order("id").
				Find(&doctors).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": doctors, "count": len(doctors)})
		}).
		GET("/doctors/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var doctor models.Doctor
			if err := db.
				Model(&models.Doctor{}).
				Where(&models.Doctor{ID: params.ID}).
				Preload("User").
				First(&doctor).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": doctor})
		}).
		POST("/doctors", common.RequireWrite(common.ResourceDoctors), func(ctx *gin.Context) {
			var body types.CreateDoctorRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var user models.User
			err := db.
				Model(&models.User{}).
				Where(&models.User{ID: body.UserID, Role: types.ROLE_DOCTOR}).
				First(&user).
				Error
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"user_id": "Must reference a doctor-role user"})
				return
			}
			isActive := true
			if body.IsActive != nil {
				isActive = *body.IsActive
			}
			doctor := models.Doctor{
				UserID:         body.UserID,
				Specialization: body.Specialization,
				Qualification:  body.Qualification,
				Phone:          body.Phone,
				Bio:            body.Bio,
				IsActive:       isActive,
			}
			if err := db.Create(&doctor).Error; err != nil {
				if common.IsUniqueViolation(err) {
					ctx.JSON(http.StatusConflict, gin.H{"user_id": "A doctor profile already exists for this user"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": doctor})
		}).
		PUT("/doctors/:id", common.RequireWrite(common.ResourceDoctors), updateDoctor).
		PATCH("/doctors/:id", common.RequireWrite(common.ResourceDoctors), updateDoctor).
		DELETE("/doctors/:id", common.RequireWrite(common.ResourceDoctors), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.Doctor{}, params.ID)
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
