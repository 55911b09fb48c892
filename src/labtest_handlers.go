package main

import (
	"fmt"
	"hms/src/common"
	"hms/src/config"
	"hms/src/db"
	awslib "hms/src/lib/aws"
	"hms/src/models"
	"hms/src/types"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func storeReportFile(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	key := fmt.Sprintf("lab_reports/%s_%s", uuid.NewString(), path.Base(file.Filename))
	if awslib.MediaBucket() != "" {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		return awslib.S3UploadObject(key, f, file.Header.Get("Content-Type"))
	}
	dst := path.Join(config.MediaDir(), key)
	if err := os.MkdirAll(path.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func parseBookedAt(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", value)
}

func labTestHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateLabTest := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateLabTestRequestBody
		if err := ctx.ShouldBind(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		var labTest models.LabTest
		if err := db.
			Model(&models.LabTest{}).
			Where(&models.LabTest{ID: params.ID}).
			First(&labTest).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{}
		if body.DoctorID != nil {
			updates["doctor_id"] = *body.DoctorID
		}
		if body.TestName != nil {
			updates["test_name"] = *body.TestName
		}
		if body.BookedAt != nil {
			bookedAt, err := parseBookedAt(*body.BookedAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"booked_at": "Invalid datetime"})
				return
			}
			updates["booked_at"] = bookedAt
		}
		if body.ResultSummary != nil {
			updates["result_summary"] = *body.ResultSummary
		}
		if body.Status != nil {
			updates["status"] = *body.Status
		}
		if file, err := ctx.FormFile("report_file"); err == nil && file != nil {
			stored, err := storeReportFile(ctx, file)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"report_file": err.Error()})
				return
			}
			updates["report_file"] = stored
		}
		if len(updates) > 0 {
			if err := db.
				Model(&models.LabTest{}).
				Where("id = ?", labTest.ID).
				Updates(updates).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.LabTest{}).Where("id = ?", labTest.ID).First(&labTest)
		ctx.JSON(http.StatusOK, gin.H{"data": labTest})
	}

	g.
		GET("/lab-tests", func(ctx *gin.Context) {
			db := db.GetDb()
			var labTests []models.LabTest
			if err := db.
				Model(&models.LabTest{}).
				Preload("Patient").
				Preload("Doctor").
				Order("id").
				Find(&labTests).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": labTests, "count": len(labTests)})
		}).
		GET("/lab-tests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var labTest models.LabTest
			if err := db.
				Model(&models.LabTest{}).
				Where(&models.LabTest{ID: params.ID}).
				Preload("Patient").
				Preload("Doctor").
				First(&labTest).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": labTest})
		}).
		POST("/lab-tests", common.RequireWrite(common.ResourceLabTests), func(ctx *gin.Context) {
			var body types.CreateLabTestRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var patient models.Patient
			if err := db.
				Model(&models.Patient{}).
				Where(&models.Patient{ID: body.PatientID}).
				First(&patient).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"patient_id": "Invalid patient_id"})
				return
			}
			bookedAt, err := parseBookedAt(body.BookedAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"booked_at": "Invalid datetime"})
				return
			}
			labTest := models.LabTest{
				PatientID:     body.PatientID,
				DoctorID:      body.DoctorID,
				TestName:      body.TestName,
				BookedAt:      bookedAt,
				ResultSummary: body.ResultSummary,
				Status:        types.LAB_BOOKED,
			}
			if file, err := ctx.FormFile("report_file"); err == nil && file != nil {
				stored, err := storeReportFile(ctx, file)
				if err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"report_file": err.Error()})
					return
				}
				labTest.ReportFile = stored
			}
			if err := db.Create(&labTest).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": labTest})
		}).
		PUT("/lab-tests/:id", common.RequireWrite(common.ResourceLabTests), updateLabTest).
		PATCH("/lab-tests/:id", common.RequireWrite(common.ResourceLabTests), updateLabTest).
		DELETE("/lab-tests/:id", common.RequireWrite(common.ResourceLabTests), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.LabTest{}, params.ID)
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
