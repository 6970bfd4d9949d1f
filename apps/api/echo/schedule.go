package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

type (
	scheduleApi struct {
		svc      schedule.Service
		copier   schedule.Copier
		validate *validator.Validate
	}

	scheduleQuery struct {
		CourseID  int `param:"courseId" validate:"required,gt=0"`
		StudentID int `query:"student_id" validate:"omitempty,gt=0"`
	}

	copyRequest struct {
		CourseID     int `param:"courseId" validate:"required,gt=0"`
		FromCourseID int `json:"fromCourseId" validate:"required,gt=0"`
	}
)

func registerScheduleAPI(g *echo.Group, svc schedule.Service, copier schedule.Copier, validate *validator.Validate) {
	api := scheduleApi{
		svc:      svc,
		copier:   copier,
		validate: validate,
	}

	sg := g.Group("/courses/:courseId/schedule")
	sg.GET("", api.query)
	sg.POST("/copy", api.copy)
}

// Handlers

func (api *scheduleApi) query(ctx echo.Context) error {
	var q scheduleQuery
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to scheduleQuery")
	}
	if err := api.validate.Struct(q); err != nil {
		return err
	}

	items, err := api.svc.ComputeSchedule(ctx.Request().Context(), q.CourseID, q.StudentID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *scheduleApi) copy(ctx echo.Context) error {
	var data copyRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to copyRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	if err := api.copier.CopyFromTo(ctx.Request().Context(), data.FromCourseID, data.CourseID); err != nil {
		return errors.Wrap(err, "copying schedule")
	}
	return ctx.NoContent(http.StatusNoContent)
}
