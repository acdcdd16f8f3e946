package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/videoclub/rental/internal/app"
	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/service"
	"github.com/videoclub/rental/internal/session"
)

const sessionHeader = "X-Session-Token"

type Handler struct {
	app *app.App
}

func NewHandler(app *app.App) *Handler {
	return &Handler{
		app: app,
	}
}

func (h *Handler) HandleLogin(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	user, err := h.app.UserService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(401, gin.H{
				"error": "Invalid username or password",
			})
			return
		}
		ctx.JSON(500, gin.H{
			"error": "Internal server error",
		})
		return
	}

	token, _ := h.app.Sessions.Login(user)
	ctx.JSON(200, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"admin":    user.Admin,
		},
	})
}

func (h *Handler) HandleLogout(ctx *gin.Context) {
	token := ctx.GetHeader(sessionHeader)
	h.app.Sessions.Logout(token)
	ctx.JSON(200, gin.H{
		"message": "Logged out",
	})
}

func (h *Handler) HandleListMovies(ctx *gin.Context) {
	movies, err := h.app.CatalogService.ListMovies()
	if err != nil {
		ctx.JSON(500, gin.H{
			"error": "Failed to list movies",
		})
		return
	}
	ctx.JSON(200, gin.H{
		"movies": movies,
	})
}

func (h *Handler) HandleGetMovie(ctx *gin.Context) {
	movieID, ok := pathID(ctx)
	if !ok {
		return
	}

	movie, err := h.app.CatalogService.GetMovieByID(movieID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(404, gin.H{
				"error": "Movie not found",
			})
			return
		}
		ctx.JSON(500, gin.H{
			"error": "Failed to load movie",
		})
		return
	}
	ctx.JSON(200, gin.H{
		"movie": movie,
	})
}

func (h *Handler) HandleCreateMovie(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}

	var req MovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	movie := model.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Director:    req.Director,
		Year:        req.Year,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.app.CatalogService.CreateMovie(&movie); err != nil {
		ctx.JSON(500, gin.H{
			"error": "Failed to create movie",
		})
		return
	}
	ctx.JSON(201, gin.H{
		"movie": movie,
	})
}

func (h *Handler) HandleUpdateMovie(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}
	movieID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req MovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	movie := model.Movie{
		ID:          movieID,
		Title:       req.Title,
		Genre:       req.Genre,
		Director:    req.Director,
		Year:        req.Year,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.app.CatalogService.UpdateMovie(&movie); err != nil {
		ctx.JSON(500, gin.H{
			"error": "Failed to update movie",
		})
		return
	}
	ctx.JSON(200, gin.H{
		"movie": movie,
	})
}

func (h *Handler) HandleDeleteMovie(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}
	movieID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := h.app.CatalogService.RemoveMovie(movieID); err != nil {
		ctx.JSON(500, gin.H{
			"error": "Failed to delete movie",
		})
		return
	}
	ctx.JSON(200, gin.H{
		"message": "Movie deleted",
	})
}

func (h *Handler) HandleAddCopy(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}
	movieID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req AddCopyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	c, err := h.app.CatalogService.AddCopy(movieID, req.Medium)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(404, gin.H{
				"error": "Movie not found",
			})
			return
		}
		ctx.JSON(500, gin.H{
			"error": "Failed to add copy",
		})
		return
	}
	ctx.JSON(201, gin.H{
		"copy": c,
	})
}

func (h *Handler) HandleRent(ctx *gin.Context) {
	sess, ok := h.requireSession(ctx)
	if !ok {
		return
	}

	var req RentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	c, err := h.app.RentalWorkflow.Rent(sess.User().ID, req.MovieID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRented) {
			ctx.JSON(409, gin.H{
				"error":   "Already rented",
				"message": "You already have an assigned copy",
			})
			return
		}
		if errors.Is(err, service.ErrNoAvailableCopy) {
			ctx.JSON(409, gin.H{
				"error":   "No copies available",
				"message": "Sorry, all copies of this movie are rented out",
			})
			return
		}
		ctx.JSON(500, gin.H{
			"error": "Failed to process rental",
		})
		return
	}

	ctx.JSON(200, gin.H{
		"message": "Copy rented successfully",
		"copy":    c,
	})
}

func (h *Handler) HandleReturn(ctx *gin.Context) {
	sess, ok := h.requireSession(ctx)
	if !ok {
		return
	}

	c, err := h.app.RentalWorkflow.Return(sess.User().ID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRental) {
			ctx.JSON(409, gin.H{
				"error":   "Nothing to return",
				"message": "You have no assigned copy",
			})
			return
		}
		ctx.JSON(500, gin.H{
			"error": "Failed to process return",
		})
		return
	}

	ctx.JSON(200, gin.H{
		"message": "Copy returned successfully",
		"copy":    c,
	})
}

func (h *Handler) HandleMe(ctx *gin.Context) {
	sess, ok := h.requireSession(ctx)
	if !ok {
		return
	}

	user, err := h.app.UserService.GetUserWithAssignedCopy(sess.User().ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(404, gin.H{
				"error": "User not found",
			})
			return
		}
		ctx.JSON(500, gin.H{
			"error": "Failed to load user",
		})
		return
	}
	ctx.JSON(200, gin.H{
		"user": user,
	})
}

func (h *Handler) HandleRentalHistory(ctx *gin.Context) {
	sess, ok := h.requireSession(ctx)
	if !ok {
		return
	}

	history, err := h.app.RentalService.GetRentalHistory(sess.User().ID)
	if err != nil {
		ctx.JSON(500, gin.H{
			"error": "Failed to load rental history",
		})
		return
	}
	ctx.JSON(200, gin.H{
		"history": history,
	})
}

func (h *Handler) requireSession(ctx *gin.Context) (*session.Session, bool) {
	token := ctx.GetHeader(sessionHeader)
	sess, ok := h.app.Sessions.Get(token)
	if !ok {
		ctx.JSON(401, gin.H{
			"error": "Not logged in",
		})
		return nil, false
	}
	return sess, true
}

func (h *Handler) requireAdmin(ctx *gin.Context) (*session.Session, bool) {
	sess, ok := h.requireSession(ctx)
	if !ok {
		return nil, false
	}
	if !sess.User().Admin {
		ctx.JSON(403, gin.H{
			"error": "Administrator access required",
		})
		return nil, false
	}
	return sess, true
}

func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(400, gin.H{
			"error": "Invalid id",
		})
		return 0, false
	}
	return uint(id), true
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type MovieRequest struct {
	Title       string `json:"title" binding:"required"`
	Genre       string `json:"genre"`
	Director    string `json:"director"`
	Year        int    `json:"year" binding:"required,gt=0"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type AddCopyRequest struct {
	Medium string `json:"medium" binding:"required"`
}

type RentRequest struct {
	MovieID uint `json:"movie_id" binding:"required"`
}
