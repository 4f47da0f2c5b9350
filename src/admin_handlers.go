package main

import (
	"log"
	"net/http"

	"fluxtrail/src/common"
	"fluxtrail/src/middlewares"
	"fluxtrail/src/services"
	"fluxtrail/src/types"

	"github.com/gin-gonic/gin"
)

type routeURIParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func adminHandlers(g *gin.RouterGroup, auth *services.AuthService, routes *services.RouteService, tickets *services.TicketService, stats *services.StatsService) *gin.RouterGroup {
	g.POST("/auth/login", func(ctx *gin.Context) {
		var body types.AdminLoginRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		identity, err := auth.VerifyAdminTransaction(body.AuthTxnBase64)
		if err != nil {
			log.Printf("Error verifying auth transaction: %s\n", err.Error())
			common.AbortWithError(ctx, err)
			return
		}
		session, err := auth.IssueSession(identity)
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, session)
	})

	authorized := g.Group("", middlewares.AdminAuth(auth))
	authorized.
		POST("/route", func(ctx *gin.Context) {
			var body types.CreateRouteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			route, err := routes.Create(ctx.Request.Context(), &body)
			if err != nil {
				log.Printf("Error creating Route: %s\n", err.Error())
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, route)
		}).
		GET("/route/:id", func(ctx *gin.Context) {
			var params routeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			route, err := routes.GetByID(ctx.Request.Context(), params.ID)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, route)
		}).
		GET("/routes", func(ctx *gin.Context) {
			var opts types.PageOptions
			if err := ctx.ShouldBindQuery(&opts); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			page, err := routes.List(ctx.Request.Context(), opts)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, page)
		}).
		PATCH("/route/:id", func(ctx *gin.Context) {
			var params routeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateRouteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			route, err := routes.Update(ctx.Request.Context(), params.ID, &body)
			if err != nil {
				log.Printf("Error updating Route [%s]: %s\n", params.ID, err.Error())
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, route)
		}).
		DELETE("/route/:id", func(ctx *gin.Context) {
			var params routeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := routes.Delete(ctx.Request.Context(), params.ID); err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
		}).
		GET("/ticket/:id", func(ctx *gin.Context) {
			var params routeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := tickets.GetByID(ctx.Request.Context(), params.ID)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, ticket)
		}).
		GET("/tickets", func(ctx *gin.Context) {
			var opts types.PageOptions
			if err := ctx.ShouldBindQuery(&opts); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			page, err := tickets.ListAll(ctx.Request.Context(), opts)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, page)
		}).
		GET("/tickets/statistics", func(ctx *gin.Context) {
			statistics, err := stats.Compute(ctx.Request.Context())
			if err != nil {
				log.Printf("Error computing statistics: %s\n", err.Error())
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, statistics)
		})
	return g
}
