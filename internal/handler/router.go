package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/videoclub/rental/internal/app"
)

func NewRouter(app *app.App) *gin.Engine {
	h := NewHandler(app)
	r := gin.Default()

	r.POST("/login", h.HandleLogin)
	r.POST("/logout", h.HandleLogout)

	r.GET("/movies", h.HandleListMovies)
	r.GET("/movies/:id", h.HandleGetMovie)
	r.POST("/movies", h.HandleCreateMovie)
	r.PUT("/movies/:id", h.HandleUpdateMovie)
	r.DELETE("/movies/:id", h.HandleDeleteMovie)
	r.POST("/movies/:id/copies", h.HandleAddCopy)

	r.POST("/rentals", h.HandleRent)
	r.DELETE("/rentals", h.HandleReturn)

	r.GET("/me", h.HandleMe)
	r.GET("/me/history", h.HandleRentalHistory)

	return r
}
