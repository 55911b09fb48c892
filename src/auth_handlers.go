package main

import (
	"fmt"
	"hms/src/common"
	"hms/src/db"
	"hms/src/lib"
	"hms/src/models"
	"hms/src/types"
	"hms/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	guest := g.Group(apiPrefix)
	guest.
		POST("/auth/register", func(ctx *gin.Context) {
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			role := body.Role
			if role == "" {
				role = types.ROLE_RECEPTIONIST
			}
			hash, err := utils.HashPassword(body.Password)
			if err != nil {
				log.Printf("Error hashing password: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			user := models.User{
				Username:  body.Username,
				Email:     body.Email,
				FirstName: body.FirstName,
				LastName:  body.LastName,
				Role:      role,
				Password:  hash,
			}
			db := db.GetDb()
			if err := db.Create(&user).Error; err != nil {
				if common.IsUniqueViolation(err) {
					ctx.JSON(http.StatusBadRequest, gin.H{"username": "A user with that username already exists"})
					return
				}
				log.Printf("Error creating user: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"id":         user.ID,
				"username":   user.Username,
				"email":      user.Email,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"role":       user.Role,
			})
		}).
		POST("/auth/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var user models.User
			err := db.
				Model(&models.User{}).
				Where(&models.User{Username: body.Username}).
				First(&user).
				Error
			if err != nil || !utils.CheckPassword(user.Password, body.Password) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
				return
			}
			access, err := utils.GenerateAccessToken(&user)
			if err != nil {
				log.Printf("Error signing access token: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			refresh, err := utils.GenerateRefreshToken(&user)
			if err != nil {
				log.Printf("Error signing refresh token: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
		}).
		POST("/auth/token/refresh", func(ctx *gin.Context) {
			var body types.RefreshRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			claims, err := utils.ParseToken(body.Refresh)
			if err != nil || claims.TokenType != "refresh" {
				ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil && claims.ID != "" {
				n, err := rd.Exists(ctx, blacklistKey(claims.ID)).Result()
				if err == nil && n > 0 {
					ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is blacklisted"})
					return
				}
			}
			db := db.GetDb()
			var user models.User
			err = db.
				Model(&models.User{}).
				Where(&models.User{Username: claims.Username}).
				First(&user).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
				return
			}
			access, err := utils.GenerateAccessToken(&user)
			if err != nil {
				log.Printf("Error signing access token: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"access": access})
		})
	return guest
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

func authAccountRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/auth/me", func(ctx *gin.Context) {
			id := ctx.GetUint("id")
			db := db.GetDb()
			var user models.User
			err := db.
				Model(&models.User{}).
				Where(&models.User{ID: id}).
				First(&user).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"id":         user.ID,
				"username":   user.Username,
				"email":      user.Email,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"role":       user.Role,
			})
		}).
		POST("/auth/logout", func(ctx *gin.Context) {
			var body types.RefreshRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"detail": "refresh token is required"})
				return
			}
			claims, err := utils.ParseToken(body.Refresh)
			if err != nil || claims.TokenType != "refresh" || claims.ID == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Token is invalid or expired"})
				return
			}
			rd := lib.GetRedisClient()
			if rd == nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Token blacklist is unavailable"})
				return
			}
			ttl := time.Until(claims.ExpiresAt.Time)
			if ttl <= 0 {
				ctx.JSON(http.StatusOK, gin.H{"detail": "Logged out successfully"})
				return
			}
			if err := rd.Set(ctx, blacklistKey(claims.ID), "1", ttl).Err(); err != nil {
				log.Printf("[redis] Error blacklisting token: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Token blacklist is unavailable"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"detail": "Logged out successfully"})
		})
	return g
}
