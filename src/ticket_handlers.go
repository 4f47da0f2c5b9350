package main

import (
	"log"
	"net/http"

	"fluxtrail/src/common"
	"fluxtrail/src/services"
	"fluxtrail/src/types"

	"github.com/gin-gonic/gin"
)

type assetURIParams struct {
	AssetID uint64 `uri:"assetId" binding:"required"`
}

type addressURIParams struct {
	Address string `uri:"address" binding:"required,algoaddress"`
}

func fluxTrailHandlers(g *gin.RouterGroup, tickets *services.TicketService, routes *services.RouteService) *gin.RouterGroup {
	g.
		POST("/ticket", func(ctx *gin.Context) {
			var body types.CreateTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := tickets.Create(ctx.Request.Context(), &body)
			if err != nil {
				log.Printf("Error creating Ticket for asset [%d]: %s\n", body.AssetID, err.Error())
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, ticket)
		}).
		POST("/ticket/use", func(ctx *gin.Context) {
			var body types.UseTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := tickets.Use(ctx.Request.Context(), &body)
			if err != nil {
				log.Printf("Error using Ticket [%s]: %s\n", body.TicketID, err.Error())
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, ticket)
		}).
		DELETE("/ticket/burn", func(ctx *gin.Context) {
			var body types.BurnTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := tickets.Burn(ctx.Request.Context(), &body); err != nil {
				log.Printf("Error burning Ticket [%s]: %s\n", body.TicketID, err.Error())
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Ticket burned successfully"})
		}).
		GET("/ticket/:assetId", func(ctx *gin.Context) {
			var params assetURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := tickets.GetByAssetID(ctx.Request.Context(), params.AssetID)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, ticket)
		}).
		GET("/tickets/:address", func(ctx *gin.Context) {
			var params addressURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var opts types.PageOptions
			if err := ctx.ShouldBindQuery(&opts); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			page, err := tickets.ListByBuyer(ctx.Request.Context(), params.Address, opts)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, page)
		}).
		GET("/routes", func(ctx *gin.Context) {
			views, err := routes.All(ctx.Request.Context())
			if err != nil {
				log.Printf("Error retrieving Routes: %s\n", err.Error())
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, views)
		})
	return g
}
