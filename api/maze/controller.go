package mazeapi

import (
	"errors"
	"net/http"

	apiidentity "github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultValidateLabel = "request"
	defaultSubmitLabel   = "submission"
)

// MazeController exposes the maze service.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController creates a MazeController.
func NewMazeController(ms i.MazeService) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze controller needs a maze service")
	}
	return &MazeController{
		mazeService: ms,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("", mc.list)
		mazes.GET("/generate", mc.generate)
		mazes.GET("/:ID", mc.get)
		mazes.POST("/validate", mc.validate)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.submit)
	}
}

// generate builds a fresh maze without storing it.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := mc.mazeService.Generate(ctx.Request.Context(), request.Name, request.Width, request.Height, false)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// get returns one playable maze.
func (mc *MazeController) get(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	record, err := mc.mazeService.Get(ctx.Request.Context(), ID)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// list returns stored mazes ordered by name.
func (mc *MazeController) list(ctx *gin.Context) {
	var request ListRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := mc.mazeService.List(ctx.Request.Context(), request.Limit)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &ListResponse{Mazes: records})
}

// validate checks the request body as a maze record without storing it.
func (mc *MazeController) validate(ctx *gin.Context) {
	data, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := mc.mazeService.Validate(data, ctx.DefaultQuery("label", defaultValidateLabel))
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	ctx.JSON(status, result)
}

// submit stores the request body as a maze owned by the caller.
func (mc *MazeController) submit(ctx *gin.Context) {
	claims, ok := apiidentity.Claims(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	data, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, result, err := mc.mazeService.Submit(ctx.Request.Context(), data, ctx.DefaultQuery("label", defaultSubmitLabel), claims.AuthorID)
	switch {
	case errors.Is(err, service.ErrInvalidMaze):
		ctx.JSON(http.StatusUnprocessableEntity, &SubmitResponse{Validation: result})
	case err != nil:
		mc.fail(ctx, err)
	default:
		ctx.JSON(http.StatusCreated, &SubmitResponse{Maze: record, Validation: result})
	}
}

func (mc *MazeController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimensions):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while serving maze"})
	}
}
