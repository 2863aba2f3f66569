package apperrors_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/pkg/apperrors"
)

func TestFromError_MapsDomainKindToHTTPStatus(t *testing.T) {
	err := domain.NewError(domain.InfeasibleHard, "no slot for course c1")
	appErr := apperrors.FromError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, string(domain.InfeasibleHard), appErr.Code)
}

func TestFromError_FallsBackToInternalForUnknownError(t *testing.T) {
	appErr := apperrors.FromError(assertAnError())
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func assertAnError() error {
	return &genericErr{}
}

type genericErr struct{}

func (g *genericErr) Error() string { return "boom" }
