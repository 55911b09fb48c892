package main

import (
	"errors"
	"hms/src/common"
	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// bedStateValid checks the occupancy invariant before a direct bed write.
func bedStateValid(isOccupied bool, currentPatientID *uint) bool {
	if isOccupied {
		return currentPatientID != nil
	}
	return currentPatientID == nil
}

func wardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateWard := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateWardRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var ward models.Ward
		if err := db.
			Model(&models.Ward{}).
			Where(&models.Ward{ID: params.ID}).
			First(&ward).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{}
		if body.Name != nil {
			updates["name"] = *body.Name
		}
		if body.WardType != nil {
			updates["ward_type"] = *body.WardType
		}
		if body.TotalBeds != nil {
			updates["total_beds"] = *body.TotalBeds
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.Ward{}).
				Where("id = ?", ward.ID).
				Updates(updates).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.Ward{}).Where("id = ?", ward.ID).First(&ward)
		ctx.JSON(http.StatusOK, gin.H{"data": ward})
	}

	g.
		GET("/wards", func(ctx *gin.Context) {
			db := db.GetDb()
			var wards []models.Ward
			if err := db.
				Model(&models.Ward{}).
				Order("id").
				Find(&wards).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			for i := range wards {
				db.
					Model(&models.Bed{}).
					Where("ward_id = ? AND is_occupied = ?", wards[i].ID, false).
					Count(&wards[i].AvailableBeds)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": wards, "count": len(wards)})
		}).
		GET("/wards/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var ward models.Ward
			if err := db.
				Model(&models.Ward{}).
				Where(&models.Ward{ID: params.ID}).
				Preload("Beds").
				First(&ward).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			db.
				Model(&models.Bed{}).
				Where("ward_id = ? AND is_occupied = ?", ward.ID, false).
				Count(&ward.AvailableBeds)
			ctx.JSON(http.StatusOK, gin.H{"data": ward})
		}).
		POST("/wards", common.RequireWrite(common.ResourceWards), func(ctx *gin.Context) {
			var body types.CreateWardRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ward := models.Ward{
				Name:      body.Name,
				WardType:  body.WardType,
				TotalBeds: body.TotalBeds,
			}
			db := db.GetDb()
			if err := db.Create(&ward).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": ward})
		}).
		PUT("/wards/:id", common.RequireWrite(common.ResourceWards), updateWard).
		PATCH("/wards/:id", common.RequireWrite(common.ResourceWards), updateWard).
		DELETE("/wards/:id", common.RequireWrite(common.ResourceWards), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.Ward{}, params.ID)
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

	return bedHandlers(g)
}

func bedHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateBed := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateBedRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var bed models.Bed
		if err := db.
			Model(&models.Bed{}).
			Where(&models.Bed{ID: params.ID}).
			First(&bed).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		isOccupied := bed.IsOccupied
		currentPatientID := bed.CurrentPatientID
		if body.IsOccupied != nil {
			isOccupied = *body.IsOccupied
		}
		if body.CurrentPatientID != nil {
			currentPatientID = body.CurrentPatientID
		}
		if !bedStateValid(isOccupied, currentPatientID) {
			ctx.JSON(http.StatusBadRequest, gin.H{"is_occupied": "An occupied bed requires a patient and a vacant bed cannot hold one"})
			return
		}
		updates := map[string]any{}
		if body.BedNumber != nil {
			updates["bed_number"] = *body.BedNumber
		}
		if body.IsICU != nil {
			updates["is_icu"] = *body.IsICU
		}
		if body.IsOccupied != nil || body.CurrentPatientID != nil {
			updates["is_occupied"] = isOccupied
			updates["current_patient_id"] = currentPatientID
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.Bed{}).
				Where("id = ?", bed.ID).
				Updates(updates).
				Error; err != nil {
				if common.IsUniqueViolation(err) {
					ctx.JSON(http.StatusConflict, gin.H{"bed_number": "Bed number already exists in this ward"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.Bed{}).Where("id = ?", bed.ID).First(&bed)
		ctx.JSON(http.StatusOK, gin.H{"data": bed})
	}

	g.
		GET("/beds", func(ctx *gin.Context) {
			db := db.GetDb()
			var beds []models.Bed
			if err := db.
				Model(&models.Bed{}).
				Preload("Ward").
				Preload("CurrentPatient").
				Order("id").
				Find(&beds).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": beds, "count": len(beds)})
		}).
		GET("/beds/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var bed models.Bed
			if err := db.
				Model(&models.Bed{}).
				Where(&models.Bed{ID: params.ID}).
				Preload("Ward").
				Preload("CurrentPatient").
				First(&bed).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bed})
		}).
		POST("/beds", common.RequireWrite(common.ResourceBeds), func(ctx *gin.Context) {
			var body types.CreateBedRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !bedStateValid(body.IsOccupied, body.CurrentPatientID) {
				ctx.JSON(http.StatusBadRequest, gin.H{"is_occupied": "An occupied bed requires a patient and a vacant bed cannot hold one"})
				return
			}
			db := db.GetDb()
			var ward models.Ward
			if err := db.
				Model(&models.Ward{}).
				Where(&models.Ward{ID: body.WardID}).
				First(&ward).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"ward_id": "Invalid ward_id"})
				return
			}
			bed := models.Bed{
				WardID:           body.WardID,
				BedNumber:        body.BedNumber,
				IsICU:            body.IsICU,
				IsOccupied:       body.IsOccupied,
				CurrentPatientID: body.CurrentPatientID,
			}
			if err := db.Create(&bed).Error; err != nil {
				if common.IsUniqueViolation(err) {
					ctx.JSON(http.StatusConflict, gin.H{"bed_number": "Bed number already exists in this ward"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": bed})
		}).
		PUT("/beds/:id", common.RequireWrite(common.ResourceBeds), updateBed).
		PATCH("/beds/:id", common.RequireWrite(common.ResourceBeds), updateBed).
		DELETE("/beds/:id", common.RequireWrite(common.ResourceBeds), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.Bed{}, params.ID)
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

	return bedTransferHandlers(g)
}

func bedTransferHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bed-transfers", func(ctx *gin.Context) {
			db := db.GetDb()
			var transfers []models.BedTransfer
			if err := db.
				Model(&models.BedTransfer{}).
				Preload("Patient").
				Preload("FromBed").
				Preload("ToBed").
				Order("id").
				Find(&transfers).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": transfers, "count": len(transfers)})
		}).
		GET("/bed-transfers/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var transfer models.BedTransfer
			if err := db.
				Model(&models.BedTransfer{}).
				Where(&models.BedTransfer{ID: params.ID}).
				Preload("Patient").
				Preload("FromBed").
				Preload("ToBed").
				First(&transfer).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": transfer})
		}).
		POST("/bed-transfers", common.RequireWrite(common.ResourceBedTransfers), func(ctx *gin.Context) {
			var body types.CreateBedTransferRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			transfer, err := common.TransferPatient(&models.BedTransfer{
				PatientID: body.PatientID,
				FromBedID: body.FromBedID,
				ToBedID:   body.ToBedID,
				Reason:    body.Reason,
			})
			if err != nil {
				var fieldErr *common.FieldError
				if errors.As(err, &fieldErr) {
					ctx.JSON(http.StatusBadRequest, gin.H{fieldErr.Field: fieldErr.Message})
					return
				}
				if errors.Is(err, common.ErrBedOccupied) {
					ctx.JSON(http.StatusConflict, gin.H{"to_bed_id": err.Error()})
					return
				}
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": transfer})
		})

	updateTransfer := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body struct {
			Reason *string `json:"reason"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var transfer models.BedTransfer
		if err := db.
			Model(&models.BedTransfer{}).
			Where(&models.BedTransfer{ID: params.ID}).
			First(&transfer).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if body.Reason != nil {
			if err := db.
				Model(&models.BedTransfer{}).
				Where("id = ?", transfer.ID).
				Update("reason", *body.Reason).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			transfer.Reason = *body.Reason
		}
		ctx.JSON(http.StatusOK, gin.H{"data": transfer})
	}

	g.
		PUT("/bed-transfers/:id", common.RequireWrite(common.ResourceBedTransfers), updateTransfer).
		PATCH("/bed-transfers/:id", common.RequireWrite(common.ResourceBedTransfers), updateTransfer).
		DELETE("/bed-transfers/:id", common.RequireWrite(common.ResourceBedTransfers), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.BedTransfer{}, params.ID)
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
