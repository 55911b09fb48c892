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

func scheduleHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateSchedule := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateDoctorScheduleRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var schedule models.DoctorSchedule
		if err := db.
			Model(&models.DoctorSchedule{}).
			Where(&models.DoctorSchedule{ID: params.ID}).
			First(&schedule).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{}
		if body.Day != nil {
			updates["day"] = *body.Day
		}
		if body.StartTime != nil {
			updates["start_time"] = *body.StartTime
		}
		if body.EndTime != nil {
			updates["end_time"] = *body.EndTime
		}
		if body.IsAvailable != nil {
			updates["is_available"] = *body.IsAvailable
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.DoctorSchedule{}).
				Where("id = ?", schedule.ID).
				Updates(updates).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.DoctorSchedule{}).Where("id = ?", schedule.ID).First(&schedule)
		ctx.JSON(http.StatusOK, gin.H{"data": schedule})
	}

	g.
		GET("/doctor-schedules", func(ctx *gin.Context) {
			db := db.GetDb()
			var schedules []models.DoctorSchedule
			if err := db.
				Model(&models.DoctorSchedule{}).
				Preload("Doctor").
				Preload("Doctor.User").
				Order("id").
				Find(&schedules).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": schedules, "count": len(schedules)})
		}).
		GET("/doctor-schedules/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var schedule models.DoctorSchedule
			if err := db.
				Model(&models.DoctorSchedule{}).
				Where(&models.DoctorSchedule{ID: params.ID}).
				Preload("Doctor").
				First(&schedule).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": schedule})
		}).
		POST("/doctor-schedules", common.RequireWrite(common.ResourceDoctorSchedules), func(ctx *gin.Context) {
			var body types.CreateDoctorScheduleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var doctor models.Doctor
			if err := db.
				Model(&models.Doctor{}).
				Where(&models.Doctor{ID: body.DoctorID}).
				First(&doctor).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"doctor_id": "Invalid doctor_id"})
				return
			}
			isAvailable := true
			if body.IsAvailable != nil {
				isAvailable = *body.IsAvailable
			}
			schedule := models.DoctorSchedule{
				DoctorID:    body.DoctorID,
				Day:         body.Day,
				StartTime:   body.StartTime,
				EndTime:     body.EndTime,
				IsAvailable: isAvailable,
			}
			if err := db.Create(&schedule).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": schedule})
		}).
		PUT("/doctor-schedules/:id", common.RequireWrite(common.ResourceDoctorSchedules), updateSchedule).
		PATCH("/doctor-schedules/:id", common.RequireWrite(common.ResourceDoctorSchedules), updateSchedule).
		DELETE("/doctor-schedules/:id", common.RequireWrite(common.ResourceDoctorSchedules), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.DoctorSchedule{}, params.ID)
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

	return leaveHandlers(g)
}

func leaveHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateLeave := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateDoctorLeaveRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var leave models.DoctorLeave
		if err := db.
			Model(&models.DoctorLeave{}).
			Where(&models.DoctorLeave{ID: params.ID}).
			First(&leave).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{}
		if body.StartDate != nil {
			start, _ := time.Parse("2006-01-02", *body.StartDate)
			updates["start_date"] = start
		}
		if body.EndDate != nil {
			end, _ := time.Parse("2006-01-02", *body.EndDate)
			updates["end_date"] = end
		}
		if body.Reason != nil {
			updates["reason"] = *body.Reason
		}
		if body.Status != nil {
			updates["status"] = *body.Status
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.DoctorLeave{}).
				Where("id = ?", leave.ID).
				Updates(updates).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.DoctorLeave{}).Where("id = ?", leave.ID).First(&leave)
		ctx.JSON(http.StatusOK, gin.H{"data": leave})
	}

	g.
		GET("/doctor-leaves", func(ctx *gin.Context) {
			db := db.GetDb()
			var leaves []models.DoctorLeave
			if err := db.
				Model(&models.DoctorLeave{}).
				Preload("Doctor").
				Preload("Doctor.User").
				Order("id").
				Find(&leaves).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": leaves, "count": len(leaves)})
		}).
		GET("/doctor-leaves/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var leave models.DoctorLeave
			if err := db.
				Model(&models.DoctorLeave{}).
				Where(&models.DoctorLeave{ID: params.ID}).
				Preload("Doctor").
				First(&leave).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": leave})
		}).
		POST("/doctor-leaves", common.RequireWrite(common.ResourceDoctorLeaves), func(ctx *gin.Context) {
			var body types.CreateDoctorLeaveRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var doctor models.Doctor
			if err := db.
				Model(&models.Doctor{}).
				Where(&models.Doctor{ID: body.DoctorID}).
				First(&doctor).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"doctor_id": "Invalid doctor_id"})
				return
			}
			start, _ := time.Parse("2006-01-02", body.StartDate)
			end, _ := time.Parse("2006-01-02", body.EndDate)
			if end.Before(start) {
				ctx.JSON(http.StatusBadRequest, gin.H{"end_date": "end_date must not precede start_date"})
				return
			}
			leave := models.DoctorLeave{
				DoctorID:  body.DoctorID,
				StartDate: start,
				EndDate:   end,
				Reason:    body.Reason,
				Status:    types.LEAVE_PENDING,
			}
			if err := db.Create(&leave).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": leave})
		}).
		PUT("/doctor-leaves/:id", common.RequireWrite(common.ResourceDoctorLeaves), updateLeave).
		PATCH("/doctor-leaves/:id", common.RequireWrite(common.ResourceDoctorLeaves), updateLeave).
		DELETE("/doctor-leaves/:id", common.RequireWrite(common.ResourceDoctorLeaves), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.DoctorLeave{}, params.ID)
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
