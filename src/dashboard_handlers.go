package main

import (
	"hms/src/db"
	"hms/src/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

func dashboardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/dashboard/stats", func(ctx *gin.Context) {
			db := db.GetDb()
			var totalPatients, totalDoctors, totalAppointments, bedsAvailable int64
			if err := db.Model(&models.Patient{}).Count(&totalPatients).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := db.Model(&models.Doctor{}).Count(&totalDoctors).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := db.Model(&models.Appointment{}).Count(&totalAppointments).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := db.
				Model(&models.Bed{}).
				Where("is_occupied = ?", false).
				Count(&bedsAvailable).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"total_patients":     totalPatients,
				"total_doctors":      totalDoctors,
				"total_appointments": totalAppointments,
				"beds_available":     bedsAvailable,
			})
		})
	return g
}
